package users

import (
	"fmt"
	"strings"
)

// User is the authenticated user's identity as mirrored into the session.
// The identity provider holds the canonical copy.
type User struct {
	Sub         string   `json:"sub,omitempty"`         // Identity provider subject
	Email       string   `json:"email,omitempty"`       // Immutable identifier
	IDP         string   `json:"idp,omitempty"`         // Federated identity provider, if any
	GivenName   string   `json:"givenName,omitempty"`   // Editable
	MiddleName  string   `json:"middleName,omitempty"`  // Editable
	FamilyName  string   `json:"familyName,omitempty"`  // Editable
	Affiliation string   `json:"affiliation,omitempty"` // Editable
	Groups      []string `json:"groups,omitempty"`      // Identity provider groups
}

// Profile is the editable subset of a User.
type Profile struct {
	GivenName   string
	MiddleName  string
	FamilyName  string
	Affiliation string
}

// Name joins the present name parts with single spaces.
func (u *User) Name() string {
	return joinName(u.GivenName, u.MiddleName, u.FamilyName)
}

// Profile returns the editable fields of u.
func (u *User) Profile() Profile {
	return Profile{
		GivenName:   u.GivenName,
		MiddleName:  u.MiddleName,
		FamilyName:  u.FamilyName,
		Affiliation: u.Affiliation,
	}
}

// ApplyProfile overwrites the editable fields of u.
func (u *User) ApplyProfile(p Profile) {
	u.GivenName = p.GivenName
	u.MiddleName = p.MiddleName
	u.FamilyName = p.FamilyName
	u.Affiliation = p.Affiliation
}

// HasGroup reports whether the user belongs to the named group.
func (u *User) HasGroup(group string) bool {
	for _, g := range u.Groups {
		if g == group {
			return true
		}
	}
	return false
}

func joinName(parts ...string) string {
	present := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			present = append(present, p)
		}
	}
	return strings.Join(present, " ")
}

// Preview is how a profile will appear in Circulars and in citations.
type Preview struct {
	Submitter    string
	Bibliography string
}

// NewPreview formats p for the given email address.
func NewPreview(p Profile, email string) Preview {
	return Preview{
		Submitter:    FormatAuthor(joinName(p.GivenName, p.MiddleName, p.FamilyName), p.Affiliation, email),
		Bibliography: fmt.Sprintf("%s, %s %s", p.FamilyName, p.GivenName, p.MiddleName),
	}
}

// FormatAuthor renders the "From" line of a Circular.
//
//	FormatAuthor("", "", "a@b.c")          == "a@b.c"
//	FormatAuthor("A B", "", "a@b.c")       == "A B <a@b.c>"
//	FormatAuthor("A B", "Org", "a@b.c")    == "A B at Org <a@b.c>"
func FormatAuthor(name, affiliation, email string) string {
	switch {
	case name == "":
		return email
	case affiliation == "":
		return fmt.Sprintf("%s <%s>", name, email)
	default:
		return fmt.Sprintf("%s at %s <%s>", name, affiliation, email)
	}
}
