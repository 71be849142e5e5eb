// donut renders a rotating torus as colored glyphs on a character grid.
//
// Controls:
//
//	Space - Pause/resume
//	Esc/Q - Quit
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"donut/app"
	"donut/internal/buildinfo"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fang.Execute(ctx, newRootCmd(), fang.WithVersion(buildinfo.Short())); err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cfg := app.DefaultConfig()
	var (
		mode     = string(cfg.Mode)
		logLevel = cfg.LogLevel.String()
		logFile  string
	)

	cmd := &cobra.Command{
		Use:   "donut [settings-json]",
		Short: "Rotating 3D torus rendered as glyphs",
		Long: `donut - rotating 3D torus rendered as glyphs

The optional argument is a JSON object, for example
  {"fps": 30, "rotation_speed": 2, "color_speed": 0.5}
Out-of-range values are clamped; malformed JSON falls back to defaults.

Controls:
  Space  - Pause/resume
  Esc/Q  - Quit

With --control, newline-delimited JSON commands are read from stdin:
  {"action": "pause"|"resume"|"start"|"stop"|"update", "fps": ..}`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := app.ParseMode(mode)
			if err != nil {
				return err
			}
			cfg.Mode = m
			if err := cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid --log-level: %w", err)
			}
			if cfg.Snapshot != "" && cfg.Mode != app.ModeHeadless {
				return errors.New("--snapshot requires --mode headless")
			}
			if len(args) == 1 {
				cfg.Settings = args[0]
			}
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				cfg.Log = f
			}

			err = app.Run(cmd.Context(), cfg)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&mode, "mode", mode, "Host: window, headless or terminal")
	f.IntVar(&cfg.Cols, "cols", cfg.Cols, "Grid columns")
	f.IntVar(&cfg.Rows, "rows", cfg.Rows, "Grid rows")
	f.IntVar(&cfg.Cell, "cell", cfg.Cell, "Cell size in pixels (window and snapshot)")
	f.Uint64Var(&cfg.Frames, "frames", 0, "Stop after N ticks in headless/terminal mode (0 = run until quit)")
	f.StringVar(&cfg.Snapshot, "snapshot", "", "Write the last frame to this PNG (headless only)")
	f.BoolVar(&cfg.Control, "control", false, "Read JSON control commands from stdin")
	f.StringVar(&logLevel, "log-level", logLevel, "Log level: debug, info, warn or error")
	f.StringVar(&logFile, "log-file", "", "Append logs to this file instead of stderr")

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintln(cmd.OutOrStdout(), buildinfo.String())
		},
	})
	return cmd
}
