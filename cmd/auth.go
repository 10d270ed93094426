package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/cineflixx/cfx/internal/session"
	"github.com/cineflixx/cfx/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates a new account and signs the user in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	name := cmd.String("name")
	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Infof("registering account for %v", email)

	if err := store.Register(name, email, password); err != nil {
		if errors.Is(err, shared.ErrAlreadyRegistered) {
			return fmt.Errorf("%w: try 'cfx auth login'", err)
		}
		return err
	}

	r.writePlain("✓ Account created\n")
	return r.writePlain("Signed in as %s <%s>\n", name, email)
}

// AuthLogin signs in with a registered account.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	email := cmd.String("email")
	password := cmd.String("password")

	r.logger.Infof("logging in as %v", email)

	if err := store.Login(email, password); err != nil {
		return err
	}

	identity, _ := store.Identity()
	r.writePlain("✓ Signed in as %s <%s>\n", identity.Name, identity.Email)

	if count := len(store.Favorites()); count > 0 {
		r.writePlain("%d favorite(s) loaded\n", count)
	}
	return nil
}

// AuthLogout ends the current session. Saved favorites stay on disk for the
// next login.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	if store.State() != session.Authenticated {
		return r.writePlain("Not signed in\n")
	}

	store.Logout()
	return r.writePlain("✓ Signed out\n")
}

// AuthWhoami shows the current session state.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	store, err := r.requireStore()
	if err != nil {
		return err
	}

	useJSON := cmd.Bool("json")

	identity, ok := store.Identity()
	if useJSON {
		payload := map[string]any{"state": store.State().String()}
		if ok {
			payload["name"] = identity.Name
			payload["email"] = identity.Email
			payload["favorites"] = len(store.Favorites())
		}
		return r.writeJSON(payload, true)
	}

	if !ok {
		return r.writePlain("Not signed in\n")
	}

	r.writePlain("Signed in as %s <%s>\n", identity.Name, identity.Email)
	return r.writePlain("Favorites: %d\n", len(store.Favorites()))
}
