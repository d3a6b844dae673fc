// Package catalog holds the fixed institutional data: the named clubs,
// academic years, branch codes, section letters, and the seeded default
// credentials. None of this is user-editable at runtime.
package catalog

// Clubs are the twelve student organizations a coordinator can be assigned to.
var Clubs = []string{
	"BHAGAVAD GITA CLUB",
	"CULINARY CLUB",
	"DANCE CLUB",
	"LITERARY APPRECIATION CLUB",
	"MARTIAL ARTS CLUB",
	"MOVIE APPRECIATION CLUB",
	"MUSIC CLUB",
	"PAINTING CLUB",
	"SOCIAL AND POLITICAL AWARENESS CLUB",
	"TELUGU APPRECIATION CLUB",
	"THEATRE CLUB",
	"YOGA CLUB",
}

// Years, Branches and Sections bound the valid student form values.
var (
	Years    = []string{"1st Year", "2nd Year", "3rd Year", "4th Year"}
	Branches = []string{"CSE", "CIC", "B", "Templates", "ECE", "EEE", "AID", "CAI", "MECH", "CSM", "INF", "CSO", "CIV", "AIM"}
	Sections = []string{"A", "B", "C", "D", "E", "F", "G", "H"}
)

// Credential is a seeded default login. Passwords here are the initial
// plaintext values; they are hashed when written to the store.
type Credential struct {
	Username string
	Password string
	Role     string
	Club     string
}

// DefaultCredentials is the bootstrap set: one admin plus one coordinator
// per club, applied only when no users collection exists yet.
var DefaultCredentials = []Credential{
	{Username: "admin", Password: "admin123", Role: "admin"},
	{Username: "bhagavadgita", Password: "club@2023", Role: "coordinator", Club: "BHAGAVAD GITA CLUB"},
	{Username: "culinary", Password: "club@2023", Role: "coordinator", Club: "CULINARY CLUB"},
	{Username: "dance", Password: "club@2023", Role: "coordinator", Club: "DANCE CLUB"},
	{Username: "literary", Password: "club@2023", Role: "coordinator", Club: "LITERARY APPRECIATION CLUB"},
	{Username: "martialarts", Password: "club@2023", Role: "coordinator", Club: "MARTIAL ARTS CLUB"},
	{Username: "movie", Password: "club@2023", Role: "coordinator", Club: "MOVIE APPRECIATION CLUB"},
	{Username: "music", Password: "club@2023", Role: "coordinator", Club: "MUSIC CLUB"},
	{Username: "painting", Password: "club@2023", Role: "coordinator", Club: "PAINTING CLUB"},
	{Username: "social", Password: "club@2023", Role: "coordinator", Club: "SOCIAL AND POLITICAL AWARENESS CLUB"},
	{Username: "telugu", Password: "club@2023", Role: "coordinator", Club: "TELUGU APPRECIATION CLUB"},
	{Username: "theatre", Password: "club@2023", Role: "coordinator", Club: "THEATRE CLUB"},
	{Username: "yoga", Password: "club@2023", Role: "coordinator", Club: "YOGA CLUB"},
}

// ValidClub reports whether name is one of the fixed clubs.
func ValidClub(name string) bool { return contains(Clubs, name) }

// ValidYear reports whether y is a known academic year.
func ValidYear(y string) bool { return contains(Years, y) }

// ValidBranch reports whether b is a known branch code.
func ValidBranch(b string) bool { return contains(Branches, b) }

// ValidSection reports whether s is a known section letter.
func ValidSection(s string) bool { return contains(Sections, s) }

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
