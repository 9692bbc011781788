package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/kastheco/fold/app"
	"github.com/kastheco/fold/config"
	"github.com/kastheco/fold/config/viewstore"
	sentrypkg "github.com/kastheco/fold/internal/sentry"
	"github.com/kastheco/fold/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const defaultWidth = 80

var (
	version     = "0.1.0"
	modeFlag    string
	instantFlag bool
	watchFlag   bool
	debugFlag   bool
	widthFlag   int
	htmlFlag    bool
	rootCmd     = &cobra.Command{
		Use:   "fold [file.md]",
		Short: "fold - Read markdown documents as collapsible panels.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			cfg := config.LoadConfig()
			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			log.Initialize(debugFlag, cfg.IsTelemetryEnabled())
			defer log.Close()

			// Piped output gets a single static rendering.
			if !term.IsTerminal(int(os.Stdout.Fd())) {
				out, err := app.RenderFile(args[0], cfg, modeFlag, terminalWidth())
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}

			var store viewstore.Store
			if cfg.RestoreState {
				s, err := openViewStore()
				if err != nil {
					log.WarningLog.Printf("view state disabled: %v", err)
				} else {
					defer s.Close()
					store = s
				}
			}

			return app.Run(ctx, app.Options{
				Path:    args[0],
				Config:  cfg,
				Store:   store,
				Mode:    modeFlag,
				Instant: instantFlag,
				Watch:   watchFlag,
			})
		},
	}

	renderCmd = &cobra.Command{
		Use:   "render [file.md]",
		Short: "Print a document with its panels at their initial state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false, false)
			defer log.Close()

			cfg := config.LoadConfig()
			if htmlFlag {
				out, err := app.RenderHTML(args[0], cfg, modeFlag)
				if err != nil {
					return err
				}
				_, err = fmt.Fprint(cmd.OutOrStdout(), out)
				return err
			}
			width := widthFlag
			if width <= 0 {
				width = terminalWidth()
			}
			out, err := app.RenderFile(args[0], cfg, modeFlag, width)
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	resetCmd = &cobra.Command{
		Use:   "reset",
		Short: "Forget the remembered panel state of every document",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false, false)
			defer log.Close()

			store, err := openViewStore()
			if err != nil {
				return fmt.Errorf("failed to initialize view store: %w", err)
			}
			defer store.Close()

			n, err := store.DeleteAll()
			if err != nil {
				return fmt.Errorf("failed to reset view store: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Forgot %d document view(s)\n", n)
			return nil
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false, false)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			storePath, err := config.ViewStorePath()
			if err != nil {
				return fmt.Errorf("failed to get view store path: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Config: %s\n", filepath.Join(configDir, config.ConfigFileName))
			fmt.Fprintf(out, "Views: %s\n", storePath)
			fmt.Fprintf(out, "%s\n", configJson)
			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of fold",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "fold version %s\n", version)
		},
	}
)

func openViewStore() (*viewstore.SQLiteStore, error) {
	path, err := config.ViewStorePath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}
	return viewstore.NewSQLiteStore(path)
}

func terminalWidth() int {
	for _, f := range []*os.File{os.Stdout, os.Stderr} {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func init() {
	rootCmd.Flags().StringVarP(&modeFlag, "mode", "m", "",
		"Group mode to start in (e.g. 'toggle' or 'free'); overrides config and frontmatter")
	rootCmd.Flags().BoolVar(&instantFlag, "instant", false, "Open and close panels without animation")
	rootCmd.Flags().BoolVarP(&watchFlag, "watch", "w", false, "Reload the document when it changes on disk")
	rootCmd.Flags().BoolVar(&debugFlag, "debug", false, "Log debug output")

	renderCmd.Flags().StringVarP(&modeFlag, "mode", "m", "", "Group mode to render in")
	renderCmd.Flags().IntVar(&widthFlag, "width", 0, "Wrap width (defaults to the terminal width or 80)")
	renderCmd.Flags().BoolVar(&htmlFlag, "html", false, "Print the document markup with its ARIA state instead")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(resetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
