package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sbhuiyan/kintree/pkg/api"
	"github.com/sbhuiyan/kintree/pkg/session"
)

// loginCommand creates the login command.
func (c *CLI) loginCommand() *cobra.Command {
	var (
		portalURL string
		token     string
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the family portal",
		Long: `Validate an access token against the family portal and store the session.

The token comes from the --token flag or the KINTREE_TOKEN environment
variable. Your session is stored in ~/.config/kintree/sessions/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLogin(cmd.Context(), portalURL, token)
		},
	}

	cmd.Flags().StringVar(&portalURL, "portal", c.Config.Portal.URL, "portal base URL")
	cmd.Flags().StringVar(&token, "token", "", "portal access token (defaults to $KINTREE_TOKEN)")

	return cmd
}

func (c *CLI) runLogin(ctx context.Context, portalURL, token string) error {
	store, err := session.NewCLIStore()
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	if existing, _ := store.GetSession(ctx); existing != nil {
		printInfo("Already logged in as %s", existing.User.Name)
		printDetail("Run 'kintree logout' first to re-authenticate")
		return nil
	}

	if token == "" {
		token = os.Getenv("KINTREE_TOKEN")
	}
	if token == "" {
		return fmt.Errorf("no token: pass --token or set KINTREE_TOKEN")
	}
	if portalURL == "" {
		return fmt.Errorf("no portal URL: pass --portal or set portal.url in the config")
	}

	client := api.NewClient(nil, nil, store)

	spinner := newSpinnerWithContext(ctx, "Verifying token...")
	spinner.Start()

	sess, err := client.Login(ctx, portalURL, token)
	if err != nil {
		spinner.StopWithError("Login failed")
		return err
	}
	spinner.Stop()

	if err := store.SaveSession(ctx, sess); err != nil {
		return fmt.Errorf("save session: %w", err)
	}

	printSuccess("Logged in as %s", sess.User.Name)
	printKeyValue("Portal", sess.PortalURL)
	printKeyValue("Expires", sess.ExpiresAt.Format("Jan 2, 2006"))
	return nil
}

// logoutCommand creates the logout command.
func (c *CLI) logoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Remove the stored portal session",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := session.NewCLIStore()
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}
			if err := store.DeleteSession(cmd.Context()); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
			printSuccess("Logged out")
			return nil
		},
	}
}

// whoamiCommand creates the whoami command.
func (c *CLI) whoamiCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the currently authenticated portal user",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			store, err := session.NewCLIStore()
			if err != nil {
				return fmt.Errorf("open session store: %w", err)
			}

			sess, err := store.GetSession(ctx)
			if err != nil {
				return fmt.Errorf("get session: %w", err)
			}
			if sess == nil {
				return fmt.Errorf("not logged in (run 'kintree login' first)")
			}

			printSuccess("Portal Session")
			printKeyValue("Name", sess.User.Name)
			if sess.User.Email != "" {
				printKeyValue("Email", sess.User.Email)
			}
			printKeyValue("Portal", sess.PortalURL)
			printKeyValue("Logged in", sess.CreatedAt.Format("Jan 2, 2006"))
			printKeyValue("Expires", sess.ExpiresAt.Format("Jan 2, 2006"))
			return nil
		},
	}
}
