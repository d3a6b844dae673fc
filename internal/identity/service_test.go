package identity_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"clubroster/internal/catalog"
	"clubroster/internal/identity"
	"clubroster/internal/store"
)

func seededService(t *testing.T) *identity.Service {
	t.Helper()
	svc := identity.NewService(store.NewMemory())
	require.NoError(t, svc.Bootstrap(context.Background()))
	return svc
}

func TestBootstrapSeedsDefaults(t *testing.T) {
	svc := seededService(t)

	users, err := svc.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, len(catalog.DefaultCredentials))

	// Idempotent: a second bootstrap must not duplicate the seed.
	require.NoError(t, svc.Bootstrap(context.Background()))
	users, err = svc.Users(context.Background())
	require.NoError(t, err)
	require.Len(t, users, len(catalog.DefaultCredentials))
}

func TestLoginSetsSessionFromUserRecord(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	sess, err := svc.Login(ctx, "music", "club@2023")
	require.NoError(t, err)
	require.True(t, sess.IsAuthenticated)
	require.Equal(t, "music", *sess.Username)
	require.Equal(t, identity.RoleCoordinator, *sess.Role)
	require.Equal(t, "MUSIC CLUB", *sess.Club)

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, sess, current)
}

func TestLoginFailureLeavesSessionUntouched(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	before, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	for _, creds := range [][2]string{
		{"admin", "wrong"},
		{"Admin", "admin123"}, // username match is case-sensitive
		{"ghost", "admin123"},
	} {
		_, err := svc.Login(ctx, creds[0], creds[1])
		require.ErrorIs(t, err, identity.ErrInvalidCredentials)
	}

	current, err := svc.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, before, current)
}

func TestLogoutIsIdempotent(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, "admin", "admin123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	once, err := svc.Current(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))
	twice, err := svc.Current(ctx)
	require.NoError(t, err)

	require.Equal(t, identity.Anonymous(), once)
	require.Equal(t, once, twice)
}

func TestAddUserRejectsDuplicateUsername(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	_, err := svc.AddUser(ctx, identity.NewUser{
		Username: "admin",
		Password: "x",
		Role:     identity.RoleCoordinator,
		Club:     "DANCE CLUB",
	})
	require.ErrorIs(t, err, identity.ErrUsernameTaken)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, len(catalog.DefaultCredentials))
}

func TestAddUserValidation(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	cases := []identity.NewUser{
		{Username: "   ", Password: "pw", Role: identity.RoleCoordinator, Club: "DANCE CLUB"},
		{Username: "newuser", Password: "  ", Role: identity.RoleCoordinator, Club: "DANCE CLUB"},
		{Username: "newuser", Password: "pw", Role: "owner", Club: "DANCE CLUB"},
		{Username: "newuser", Password: "pw", Role: identity.RoleCoordinator, Club: "CHESS CLUB"},
	}
	for _, input := range cases {
		_, err := svc.AddUser(ctx, input)
		require.True(t, identity.IsValidation(err), "expected validation error for %+v, got %v", input, err)
	}
}

func TestAddUserForcesAdminClubNil(t *testing.T) {
	svc := seededService(t)

	user, err := svc.AddUser(context.Background(), identity.NewUser{
		Username: "secondadmin",
		Password: "pw",
		Role:     identity.RoleAdmin,
		Club:     "DANCE CLUB",
	})
	require.NoError(t, err)
	require.Nil(t, user.Club)
}

func TestUpdatePassword(t *testing.T) {
	svc := seededService(t)
	ctx := context.Background()

	require.ErrorIs(t, svc.UpdatePassword(ctx, "ghost", "newpw"), identity.ErrNotFound)

	require.NoError(t, svc.UpdatePassword(ctx, "dance", "newpw"))
	_, err := svc.Login(ctx, "dance", "club@2023")
	require.ErrorIs(t, err, identity.ErrInvalidCredentials)
	sess, err := svc.Login(ctx, "dance", "newpw")
	require.NoError(t, err)
	require.Equal(t, "DANCE CLUB", *sess.Club)
}

func TestActorScoping(t *testing.T) {
	admin := identity.Actor{Username: "admin", Role: identity.RoleAdmin}
	coord := identity.Actor{Username: "music", Role: identity.RoleCoordinator, Club: "MUSIC CLUB"}

	require.True(t, admin.CanAccessClub("YOGA CLUB"))
	require.True(t, coord.CanAccessClub("MUSIC CLUB"))
	require.False(t, coord.CanAccessClub("YOGA CLUB"))
}
