// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"io"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ik5/modstems/engine"
	"github.com/ik5/modstems/engine/openmpt"
	"github.com/ik5/modstems/internal/config"
)

// Deps are the outside resources the commands use.
type Deps struct {
	Fs afero.Fs

	// NewEngine opens the synthesis engine for a render run.
	NewEngine func() (engine.Port, error)
}

// DefaultDeps uses the OS filesystem and libopenmpt.
func DefaultDeps() Deps {
	return Deps{
		Fs: afero.NewOsFs(),
		NewEngine: func() (engine.Port, error) {
			e, err := openmpt.New()
			if err != nil {
				return nil, err
			}
			return e, nil
		},
	}
}

// app is the state shared by one command tree.
type app struct {
	deps Deps
	v    *viper.Viper
	log  *slog.Logger
}

// Execute runs the command line and exits non-zero on failure.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// NewRootCmd creates the command tree with the default dependencies.
func NewRootCmd() *cobra.Command {
	return NewRootCmdWith(DefaultDeps())
}

// NewRootCmdWith creates the command tree with deps (exported for testing).
func NewRootCmdWith(deps Deps) *cobra.Command {
	a := &app{
		deps: deps,
		v:    config.New(),
		log:  slog.Default(),
	}

	root := &cobra.Command{
		Use:   "modstems",
		Short: "Render tracker modules into audio stems",
		Long: `modstems renders tracker modules (MOD, XM, S3M, IT and everything else
libopenmpt plays) into stems: the full mix, one file per instrument, or one
file per channel and instrument pair.

Stems are written as wav, aiff, flac, ogg (Vorbis), mp3 or opus. Stems that
come out completely silent are not written.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogger(cmd.ErrOrStderr())
		},
	}

	pf := root.PersistentFlags()
	pf.String("log-level", "info", "log level (debug, info, warn, error)")
	pf.Bool("json-logs", false, "enable JSON formatted logs")
	pf.String("config", "", "YAML configuration file")
	_ = a.v.BindPFlag("log.level", pf.Lookup("log-level"))
	_ = a.v.BindPFlag("log.json", pf.Lookup("json-logs"))

	root.AddCommand(
		newRenderCmd(a),
		newInspectCmd(a),
		newVersionCmd(),
	)

	return root
}

func (a *app) setupLogger(w io.Writer) error {
	level, err := config.ParseLevel(a.v.GetString("log.level"))
	if err != nil {
		return err
	}

	hopts := &slog.HandlerOptions{Level: level}
	var h slog.Handler = slog.NewTextHandler(w, hopts)
	if a.v.GetBool("log.json") {
		h = slog.NewJSONHandler(w, hopts)
	}
	a.log = slog.New(h)

	return nil
}
