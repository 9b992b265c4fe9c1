package cli

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/aycode/internal/client/client"
	"github.com/dmitrijs2005/aycode/internal/client/credstore"
	"github.com/dmitrijs2005/aycode/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var req client.RegisterRequest

			for _, p := range []struct {
				prompt string
				dst    *string
			}{
				{"Name", &req.Name},
				{"Email", &req.Email},
				{"Phone number", &req.PhoneNumber},
				{"Date of birth (YYYY-MM-DD)", &req.DateOfBirth},
				{"Gender", &req.Gender},
				{"Subscription plan", &req.Subscription},
			} {
				v, err := promptLine(a.reader, a.out, p.prompt)
				if err != nil {
					return err
				}
				*p.dst = v
			}

			password, err := promptSecret(a.out, "Password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)
			req.Password = string(password)

			if err := a.api.Register(cmd.Context(), req); err != nil {
				return a.explain(err)
			}

			a.printf("Registered %s. Run 'aycode login' to sign in.\n", req.Email)
			return nil
		},
	}
}

func (a *App) loginCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session token locally",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" {
				v, err := promptLine(a.reader, a.out, "Email")
				if err != nil {
					return err
				}
				email = v
			}

			password, err := promptSecret(a.out, "Password")
			if err != nil {
				return err
			}
			defer common.WipeByteArray(password)

			s, err := a.api.Login(cmd.Context(), email, string(password))
			if err != nil {
				if errors.Is(err, client.ErrUnauthorized) {
					return errors.New("invalid credentials")
				}
				return a.explain(err)
			}

			if err := a.store.Put(a.api.Host(), &credstore.Credential{
				Token:     s.Token,
				Username:  s.Username,
				ExpiresAt: s.ExpiresAt,
			}); err != nil {
				return err
			}

			a.printf("Logged in as %s", s.Username)
			if !s.ExpiresAt.IsZero() {
				a.printf(" (session valid until %s)", s.ExpiresAt.Local().Format(time.DateTime))
			}
			a.printf("\n")
			return nil
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account email")
	return cmd
}

func (a *App) meCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed-in account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !a.loggedIn() {
				return errNotLoggedIn
			}

			u, err := a.api.Me(cmd.Context())
			if err != nil {
				return a.explain(err)
			}

			a.printf("ID:    %s\nName:  %s\nEmail: %s\nRole:  %s\n", u.ID, u.Name, u.Email, u.Role)
			return nil
		},
	}
}

// logoutCmd discards the local token. The server keeps no sessions, so a
// copy of the token remains usable until it expires.
func (a *App) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.api.Logout(cmd.Context()); err != nil {
				a.printf("warning: %v\n", a.explain(err))
			}

			if err := a.store.Delete(a.api.Host()); err != nil {
				return err
			}

			a.printf("Logged out\n")
			return nil
		},
	}
}
