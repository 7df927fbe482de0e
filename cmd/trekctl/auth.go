package main

import (
	"context"
	"errors"
	"fmt"
	"net/mail"

	"github.com/spf13/pflag"

	"github.com/DKS2424/Travel/internal/auth"
	"github.com/DKS2424/Travel/internal/domain"
)

// credentialFlags are shared by login and signup. A missing value is
// prompted for.
type credentialFlags struct {
	email string
}

func (c *credentialFlags) add(flagSet *pflag.FlagSet) {
	flagSet.StringVarP(&c.email, "email", "e", "", "account email (prompted when omitted)")
}

// read collects and checks the email and password.
func (c *credentialFlags) read(a *app) (email, password string, err error) {
	email = c.email
	if email == "" {
		if email, err = a.prompt("Email: "); err != nil {
			return "", "", err
		}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "", "", fmt.Errorf("invalid email address %q", email)
	}
	if password, err = a.promptPassword("Password: "); err != nil {
		return "", "", err
	}
	if len(password) < domain.MinPasswordLength {
		return "", "", fmt.Errorf("password must be at least %d characters", domain.MinPasswordLength)
	}
	return email, password, nil
}

func loginCommand() *command {
	var creds credentialFlags
	return &command{
		name:    "login",
		summary: "Sign in and remember the session",
		usage:   "trekctl login [--email <address>]",
		flags:   creds.add,
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, args []string) error {
			if len(args) != 0 {
				return usagef("login takes no arguments")
			}
			email, password, err := creds.read(a)
			if err != nil {
				return err
			}
			if res := a.resolver.SignIn(ctx, email, password); !res.OK() {
				return errors.New(res.Error)
			}
			printIdentity(a.std.out, a.resolver.Current())
			return nil
		},
	}
}

func signupCommand() *command {
	var creds credentialFlags
	return &command{
		name:    "signup",
		summary: "Create an account",
		usage:   "trekctl signup [--email <address>]",
		flags:   creds.add,
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, args []string) error {
			if len(args) != 0 {
				return usagef("signup takes no arguments")
			}
			email, password, err := creds.read(a)
			if err != nil {
				return err
			}
			if res := a.resolver.SignUp(ctx, email, password); !res.OK() {
				return errors.New(res.Error)
			}
			if st := a.resolver.Current(); st.Session != nil {
				printIdentity(a.std.out, st)
				return nil
			}
			fmt.Fprintln(a.std.out, "Account created. Sign in once your email address has been confirmed.")
			return nil
		},
	}
}

func logoutCommand() *command {
	return &command{
		name:    "logout",
		summary: "Sign out and forget the session",
		usage:   "trekctl logout",
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, _ []string) error {
			if a.resolver.Current().Session == nil {
				fmt.Fprintln(a.std.out, "Not signed in.")
				return nil
			}
			a.resolver.SignOut(ctx)
			if a.resolver.Current().Session != nil {
				return errors.New("sign out failed; the session is still active")
			}
			fmt.Fprintln(a.std.out, "Signed out.")
			return nil
		},
	}
}

func whoamiCommand() *command {
	return &command{
		name:    "whoami",
		summary: "Show the signed-in account",
		usage:   "trekctl whoami",
		run: func(_ context.Context, a *app, _ *pflag.FlagSet, _ []string) error {
			printIdentity(a.std.out, a.resolver.Current())
			return nil
		},
	}
}

func confirmCommand() *command {
	return &command{
		name:    "confirm",
		summary: "Confirm a user's email address (admin)",
		usage:   "trekctl confirm <email>",
		run: func(ctx context.Context, a *app, _ *pflag.FlagSet, args []string) error {
			if len(args) != 1 {
				return usagef("usage: trekctl confirm <email>")
			}
			if a.client == nil {
				return errors.New(auth.NotConfiguredMessage)
			}
			if err := a.requireAdmin(); err != nil {
				return err
			}
			user, err := a.client.ConfirmEmail(ctx, args[0])
			if err != nil {
				return fmt.Errorf("confirming %s: %w", args[0], err)
			}
			fmt.Fprintf(a.std.out, "Confirmed %s\n", user.Email)
			return nil
		},
	}
}
