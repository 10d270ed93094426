package models

import (
	"fmt"
	"strings"
)

// Identity is the public profile of the signed-in user held by the session store.
//
// Never carries a password; the token is an opaque mock session token.
type Identity struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Credential is the durable record used to validate login and registration.
//
// Stored in an email-keyed map under a single storage key. The mock auth
// layer is local-only, so the password is stored as given.
type Credential struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Token    string `json:"token"`
}

// Identity projects the credential down to its password-free public form.
func (c Credential) Identity() Identity {
	return Identity{Name: c.Name, Email: c.Email, Token: c.Token}
}

// Validate checks that the identity has a usable email. Emails are exact-match
// keys; no normalization beyond whitespace trimming is applied.
func (i Identity) Validate() error {
	if strings.TrimSpace(i.Email) == "" {
		return fmt.Errorf("identity email is required")
	}
	if !strings.Contains(i.Email, "@") {
		return fmt.Errorf("identity email %q is malformed", i.Email)
	}
	return nil
}
