package users_test

import (
	"testing"

	"github.com/jrsteele09/gcn-portal/users"
	"github.com/stretchr/testify/require"
)

func TestNewPreview(t *testing.T) {
	tests := []struct {
		name         string
		profile      users.Profile
		submitter    string
		bibliography string
	}{
		{
			name:         "full profile",
			profile:      users.Profile{GivenName: "Mai", MiddleName: "L.", FamilyName: "Gu", Affiliation: "DESY"},
			submitter:    "Mai L. Gu at DESY <mai@example.com>",
			bibliography: "Gu, Mai L.",
		},
		{
			name:         "no middle name",
			profile:      users.Profile{GivenName: "Jose", FamilyName: "Martinez Gonzalez"},
			submitter:    "Jose Martinez Gonzalez <mai@example.com>",
			bibliography: "Martinez Gonzalez, Jose ",
		},
		{
			name:         "affiliation only omits name",
			profile:      users.Profile{Affiliation: "AAVSO"},
			submitter:    "mai@example.com",
			bibliography: ",  ",
		},
		{
			name:         "family name only",
			profile:      users.Profile{FamilyName: "Smith"},
			submitter:    "Smith <mai@example.com>",
			bibliography: "Smith,  ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			preview := users.NewPreview(tt.profile, "mai@example.com")
			require.Equal(t, tt.submitter, preview.Submitter)
			require.Equal(t, tt.bibliography, preview.Bibliography)
		})
	}
}

func TestUserProfileRoundTrip(t *testing.T) {
	u := &users.User{Email: "darren@example.com", IDP: "Google", GivenName: "Old"}
	u.ApplyProfile(users.Profile{GivenName: "Darren", FamilyName: "Smith", Affiliation: "PSU"})

	require.Equal(t, "Darren Smith", u.Name())
	require.Equal(t, "darren@example.com", u.Email)
	require.Equal(t, "Google", u.IDP)
	require.Equal(t, users.Profile{GivenName: "Darren", FamilyName: "Smith", Affiliation: "PSU"}, u.Profile())
}

func TestHasGroup(t *testing.T) {
	u := &users.User{Groups: []string{"gcn.nasa.gov/circular-submitter"}}
	require.True(t, u.HasGroup("gcn.nasa.gov/circular-submitter"))
	require.False(t, u.HasGroup("gcn.nasa.gov/circular-moderator"))
}
