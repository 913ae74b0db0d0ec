package main

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"onboard/internal/logging"
	"onboard/internal/portal"
	"onboard/internal/session"
)

func newLoginCommand(ctx *commandContext) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the onboarding portal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(email) == "" || password == "" {
				return errors.New("both --email and --password are required")
			}
			client, err := ctx.anonymousClient()
			if err != nil {
				return err
			}
			auth, err := client.Login(cmd.Context(), portal.Credentials{Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("%s", portal.Reason(err))
			}
			return establishSession(ctx, cmd, auth)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

func newRegisterCommand(ctx *commandContext) *cobra.Command {
	var name string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a portal account and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if strings.TrimSpace(name) == "" || strings.TrimSpace(email) == "" || password == "" {
				return errors.New("--name, --email, and --password are required")
			}
			client, err := ctx.anonymousClient()
			if err != nil {
				return err
			}
			auth, err := client.Register(cmd.Context(), portal.Credentials{Name: name, Email: email, Password: password})
			if err != nil {
				return fmt.Errorf("%s", portal.Reason(err))
			}
			return establishSession(ctx, cmd, auth)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "Display name")
	cmd.Flags().StringVarP(&email, "email", "e", "", "Account email")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Account password")
	return cmd
}

// establishSession persists the authenticated state returned by login or
// register. This is the session lifecycle's init point.
func establishSession(ctx *commandContext, cmd *cobra.Command, auth *portal.AuthResponse) error {
	store, err := ctx.sessionStore()
	if err != nil {
		return err
	}
	state := &session.Session{
		Token:       auth.Token,
		UserID:      auth.User.ID,
		Name:        auth.User.Name,
		Email:       auth.User.Email,
		Role:        auth.User.Role,
		Status:      auth.User.Status,
		RefreshedAt: time.Now().UTC(),
	}
	if err := store.Save(state); err != nil {
		return err
	}
	ctx.ensureLogger().Info("session established",
		logging.String("email", state.Email),
		logging.String(logging.FieldStatus, string(state.Status)),
	)
	fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", state.Name, state.Email)
	return nil
}

func newLogoutCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the portal session",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, store, err := ctx.activeSession()
			if err != nil {
				if errors.Is(err, errNotLoggedIn) {
					fmt.Fprintln(cmd.OutOrStdout(), "No active session.")
					return nil
				}
				return err
			}

			// Best-effort server-side invalidation; local teardown happens
			// regardless so a dead portal cannot pin a session.
			client, err := ctx.portalClient(state, 0)
			if err == nil {
				if logoutErr := client.Logout(cmd.Context()); logoutErr != nil {
					ctx.ensureLogger().Debug("server logout failed", logging.Error(logoutErr))
				}
			}

			if err := store.Clear(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out.")
			return nil
		},
	}
}

func newWhoamiCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the locally cached identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, _, err := ctx.activeSession()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s <%s>\n", state.Name, state.Email)
			fmt.Fprintf(out, "Status: %s (cached %s)\n", statusTitle(state.Status), state.RefreshedAt.Local().Format(time.RFC1123))
			return nil
		},
	}
}
