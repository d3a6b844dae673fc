package identity

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"clubroster/internal/catalog"
	"clubroster/internal/store"
)

// ErrUsernameTaken rejects a duplicate username on AddUser.
var ErrUsernameTaken = errors.New("username already exists")

// Service implements the identity and access operations over the store.
type Service struct {
	store store.Store
}

// NewService creates the identity service.
func NewService(st store.Store) *Service {
	return &Service{store: st}
}

// Bootstrap seeds the default credential set when the users collection is
// missing or empty. Passwords are hashed on the way in. Safe to call on
// every startup.
func (s *Service) Bootstrap(ctx context.Context) error {
	var existing []User
	found, err := s.store.Read(ctx, store.KeyUsers, &existing)
	if err != nil {
		return err
	}
	if found && len(existing) > 0 {
		return nil
	}
	return s.seed(ctx)
}

// Reseed discards the users collection, restores the defaults, and resets
// the session.
func (s *Service) Reseed(ctx context.Context) error {
	if err := s.store.Write(ctx, store.KeyAuth, Anonymous()); err != nil {
		return err
	}
	return s.seed(ctx)
}

func (s *Service) seed(ctx context.Context) error {
	users := make([]User, 0, len(catalog.DefaultCredentials))
	for _, cred := range catalog.DefaultCredentials {
		hash, err := bcrypt.GenerateFromPassword([]byte(cred.Password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		u := User{Username: cred.Username, PasswordHash: string(hash), Role: cred.Role}
		if cred.Role == RoleCoordinator {
			club := cred.Club
			u.Club = &club
		}
		users = append(users, u)
	}
	if err := s.store.Write(ctx, store.KeyUsers, users); err != nil {
		return err
	}
	logrus.WithField("count", len(users)).Info("seeded default users")
	return nil
}

// Login authenticates exact-match credentials. On success the persisted
// session is replaced with the matched user's identity; on failure it is
// left untouched and ErrInvalidCredentials is returned.
func (s *Service) Login(ctx context.Context, username, password string) (Session, error) {
	users, err := s.users(ctx)
	if err != nil {
		return Session{}, err
	}
	for _, u := range users {
		if u.Username != username {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
			break
		}
		name, role := u.Username, u.Role
		sess := Session{IsAuthenticated: true, Username: &name, Role: &role, Club: u.Club}
		if err := s.store.Write(ctx, store.KeyAuth, sess); err != nil {
			return Session{}, err
		}
		logrus.WithFields(logrus.Fields{"username": username, "role": role}).Info("login succeeded")
		return sess, nil
	}
	logrus.WithField("username", username).Warn("login failed")
	return Session{}, ErrInvalidCredentials
}

// Logout resets the session to the unauthenticated default. Idempotent.
func (s *Service) Logout(ctx context.Context) error {
	return s.store.Write(ctx, store.KeyAuth, Anonymous())
}

// Current returns the persisted session, or the anonymous default when
// none has been written yet.
func (s *Service) Current(ctx context.Context) (Session, error) {
	var sess Session
	found, err := s.store.Read(ctx, store.KeyAuth, &sess)
	if err != nil {
		return Session{}, err
	}
	if !found {
		return Anonymous(), nil
	}
	return sess, nil
}

// UpdatePassword replaces the stored hash for username. Unknown usernames
// return ErrNotFound; the users collection is not rewritten in that case.
func (s *Service) UpdatePassword(ctx context.Context, username, newPassword string) error {
	if strings.TrimSpace(newPassword) == "" {
		return Validation("password must not be empty")
	}
	users, err := s.users(ctx)
	if err != nil {
		return err
	}
	for i := range users {
		if users[i].Username != username {
			continue
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		users[i].PasswordHash = string(hash)
		if err := s.store.Write(ctx, store.KeyUsers, users); err != nil {
			return err
		}
		logrus.WithField("username", username).Info("password updated")
		return nil
	}
	return ErrNotFound
}

// NewUser is the AddUser input.
type NewUser struct {
	Username string
	Password string
	Role     string
	Club     string
}

// AddUser appends a user. Duplicate usernames (case-sensitive) and blank
// credentials are rejected; a coordinator's club must be a catalog club
// and an admin's club is forced to nil regardless of input.
func (s *Service) AddUser(ctx context.Context, input NewUser) (User, error) {
	username := strings.TrimSpace(input.Username)
	if username == "" || strings.TrimSpace(input.Password) == "" {
		return User{}, Validation("username and password are required")
	}
	if input.Role != RoleAdmin && input.Role != RoleCoordinator {
		return User{}, Validation("role must be %q or %q", RoleAdmin, RoleCoordinator)
	}
	users, err := s.users(ctx)
	if err != nil {
		return User{}, err
	}
	for _, u := range users {
		if u.Username == username {
			return User{}, ErrUsernameTaken
		}
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}
	user := User{Username: username, PasswordHash: string(hash), Role: input.Role}
	if input.Role == RoleCoordinator {
		if !catalog.ValidClub(input.Club) {
			return User{}, Validation("unknown club %q", input.Club)
		}
		club := input.Club
		user.Club = &club
	}
	users = append(users, user)
	if err := s.store.Write(ctx, store.KeyUsers, users); err != nil {
		return User{}, err
	}
	logrus.WithFields(logrus.Fields{"username": username, "role": user.Role}).Info("user added")
	return user, nil
}

// Users returns every stored user in insertion order.
func (s *Service) Users(ctx context.Context) ([]User, error) {
	return s.users(ctx)
}

func (s *Service) users(ctx context.Context) ([]User, error) {
	var users []User
	if _, err := s.store.Read(ctx, store.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}
