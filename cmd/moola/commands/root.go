package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"moola/internal/app"
	"moola/internal/config"
	"moola/internal/domain"
)

var (
	home   string
	appCtx *app.Wire
	ask    *prompter
)

// errSignedOut is returned by commands that need a session.
var errSignedOut = errors.New("not signed in; run `moola login`")

func Execute() error {
	root := &cobra.Command{
		Use:           "moola",
		Short:         "Mobile money from the terminal",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
				return fmt.Errorf("load .env: %w", err)
			}
			ask = newPrompter(cmd)
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(cfg.Home, 0o700); err != nil {
				return err
			}
			logger, err := app.NewLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogFormat)
			if err != nil {
				return err
			}

			appCtx, err = app.NewWire(app.Config{
				Config: cfg,
				Logger: logger,
				Prompt: contactsPrompt,
			})
			if err != nil {
				return err
			}
			appCtx.Session.Init(cmd.Context())
			appCtx.Session.OnChange(func(state domain.SessionState, _ domain.Root) {
				if state == domain.SessionUnauthenticated {
					fmt.Fprintln(cmd.ErrOrStderr(), "Session ended.")
				}
			})
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if appCtx != nil {
				appCtx.Close()
			}
		},
	}

	root.PersistentFlags().StringVar(&home, "home", "", "config dir (default ~/.moola)")

	root.AddCommand(
		loginCmd(),
		registerCmd(),
		logoutCmd(),
		statusCmd(),
		servicesCmd(),
		payCmd(),
		airtimeCmd(),
		historyCmd(),
	)
	return root.Execute()
}

func requireSession() error {
	if appCtx.Session.State() != domain.SessionAuthenticated {
		return errSignedOut
	}
	return nil
}
