// Command folio opens a scroll-linked portfolio page described by a YAML
// file, or traces its motion headlessly.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/phanxgames/folio"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	root := &cobra.Command{
		Use:           "folio",
		Short:         "Scroll-linked motion pages",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return err
			}
			return setupLogger(v.GetString("log-level"))
		},
	}
	pf := root.PersistentFlags()
	pf.String("config", "page.yaml", "page description file")
	pf.Bool("reduced-motion", false, "disable smoothing and tweens")
	pf.Uint64("seed", 0, "floating shape seed (0 keeps the file's seed)")
	pf.String("log-level", "warn", "debug, info, warn or error")

	root.AddCommand(newRunCmd(v), newTraceCmd(v))
	return root
}

func setupLogger(level string) error {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	folio.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
	return nil
}

// loadPage reads the config named by the flags and applies the overrides.
func loadPage(v *viper.Viper) (*folio.Page, *folio.Config, error) {
	cfg, err := folio.LoadConfig(v.GetString("config"))
	if err != nil {
		return nil, nil, err
	}
	if v.GetBool("reduced-motion") {
		cfg.ReducedMotion = true
	}
	if seed := v.GetUint64("seed"); seed != 0 {
		cfg.Seed = seed
	}
	page, err := cfg.Build()
	if err != nil {
		return nil, nil, err
	}
	return page, cfg, nil
}

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Open the page in a window",
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, _, err := loadPage(v)
			if err != nil {
				return err
			}
			page.SetDebugMode(v.GetBool("debug"))
			page.SetScreenshotDir(v.GetString("screenshots"))
			if path := v.GetString("script"); path != "" {
				data, err := os.ReadFile(path)
				if err != nil {
					page.Close()
					return fmt.Errorf("read test script: %w", err)
				}
				runner, err := folio.LoadTestScript(data)
				if err != nil {
					page.Close()
					return err
				}
				page.SetTestRunner(runner)
			}
			return folio.Run(page, folio.RunConfig{
				Title:   v.GetString("title"),
				ShowFPS: v.GetBool("fps"),
			})
		},
	}
	f := cmd.Flags()
	f.Bool("fps", false, "show the FPS overlay")
	f.Bool("debug", false, "log per-frame stats")
	f.String("title", "folio", "window title")
	f.String("script", "", "JSON test script to drive the page")
	f.String("screenshots", folio.DefaultScreenshotDir, "directory for script screenshots")
	return cmd
}
