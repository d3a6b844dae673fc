package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"clubroster/internal/catalog"
)

func TestValidators(t *testing.T) {
	require.True(t, catalog.ValidClub("MUSIC CLUB"))
	require.False(t, catalog.ValidClub("music club"))
	require.True(t, catalog.ValidYear("4th Year"))
	require.False(t, catalog.ValidYear("5th Year"))
	require.True(t, catalog.ValidBranch("CSE"))
	require.False(t, catalog.ValidBranch("XYZ"))
	require.True(t, catalog.ValidSection("H"))
	require.False(t, catalog.ValidSection("I"))
}

func TestDefaultCredentialsCoverEveryClub(t *testing.T) {
	require.Len(t, catalog.DefaultCredentials, len(catalog.Clubs)+1)

	seen := map[string]bool{}
	for _, cred := range catalog.DefaultCredentials {
		if cred.Role == "coordinator" {
			require.True(t, catalog.ValidClub(cred.Club), cred.Club)
			require.False(t, seen[cred.Club], "duplicate coordinator for %s", cred.Club)
			seen[cred.Club] = true
		} else {
			require.Empty(t, cred.Club, "admin carries no club")
		}
	}
	require.Len(t, seen, len(catalog.Clubs))
}
