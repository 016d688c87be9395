// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ik5/modstems"
	"github.com/ik5/modstems/engine"
	"github.com/ik5/modstems/formats/vorbis"
	"github.com/ik5/modstems/internal/config"
	"github.com/ik5/modstems/internal/discover"
	"github.com/ik5/modstems/render"
)

func newRenderCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render modules into stems",
		Long: `Render every module found at --input into stems under --output.

Without --channels one stem per instrument is written; with it one stem per
channel and instrument pair. --full adds the complete stereo mix.

Output files are named after the module:
  song.<ext>                     full mix
  song_0001_chan_full.<ext>      instrument 1, all channels
  song_0001_chan_0000.<ext>      instrument 1, channel 0`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runRender(cmd)
		},
	}

	f := cmd.Flags()
	f.StringP("input", "i", "", "module file or directory of modules")
	f.StringP("output", "o", "", "directory for the rendered stems")
	f.BoolP("recursive", "r", false, "walk subdirectories of --input")
	f.StringP("format", "f", "wav", "output format ("+strings.Join(config.Formats, ", ")+")")
	f.String("sample-format", config.SampleInt16, "sample format to render (int16, float)")
	f.IntP("sample-rate", "s", 48000, fmt.Sprintf("output sample rate [%d, %d]", render.MinSampleRate, render.MaxSampleRate))
	f.Bool("stereo", false, "render instrument and channel stems in stereo (mono otherwise)")
	f.BoolP("channels", "c", false, "render each instrument on each channel")
	f.Bool("instruments", true, "render one stem per instrument")
	f.Bool("full", false, "also render the full mix")
	f.Float32P("panning", "p", 0, "panning of the rendered channel in [-1, 1], 0 is centre; only per-channel stems (--channels) use it")
	f.Bool("progress", false, "show a progress bar")
	f.Int("workers", 0, "stems rendered at once (0 = one per CPU)")
	f.Float64("safety-margin", render.DefaultSafetyMargin, "seconds added to the song length when sizing buffers")
	f.String("vorbis-mode", string(vorbis.VBR), "vorbis bitrate strategy ("+strategies()+")")
	f.Int("vorbis-bitrate", 192, "vorbis target bitrate in kbit/s")
	f.Int("vorbis-max-bitrate", 256, "vorbis maximum bitrate in kbit/s (constrained-abr)")
	f.Float32("vorbis-quality", 0.6, "vorbis quality in [-0.1, 1] (quality mode)")
	f.Int("mp3-bitrate", 320, "mp3 bitrate in kbit/s")
	f.Int("opus-bitrate", 192, "opus bitrate in kbit/s")
	f.Bool("concurrent-engine", false, "call the engine from several workers at once")

	bindFlags(a, f, map[string]string{
		"input":              "input",
		"output":             "output",
		"recursive":          "recursive",
		"format":             "format",
		"sample-format":      "sample_format",
		"sample-rate":        "sample_rate",
		"stereo":             "stereo",
		"channels":           "channels",
		"instruments":        "instruments",
		"full":               "full",
		"panning":            "panning",
		"progress":           "progress",
		"workers":            "workers",
		"safety-margin":      "safety_margin",
		"vorbis-mode":        "vorbis.mode",
		"vorbis-bitrate":     "vorbis.bitrate",
		"vorbis-max-bitrate": "vorbis.max_bitrate",
		"vorbis-quality":     "vorbis.quality",
		"mp3-bitrate":        "mp3.bitrate",
		"opus-bitrate":       "opus.bitrate",
		"concurrent-engine":  "engine.concurrent",
	})

	return cmd
}

func bindFlags(a *app, fs *pflag.FlagSet, keys map[string]string) {
	for name, key := range keys {
		_ = a.v.BindPFlag(key, fs.Lookup(name))
	}
}

func strategies() string {
	names := make([]string, len(vorbis.Strategies))
	for i, s := range vorbis.Strategies {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func (a *app) runRender(cmd *cobra.Command) error {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(a.v, file)
	if err != nil {
		return err
	}

	files, err := discover.Files(a.deps.Fs, cfg.Input, cfg.Recursive)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		a.log.Info("no files to process", "input", cfg.Input)
		return nil
	}

	encOpts, err := cfg.EncoderOptions()
	if err != nil {
		return err
	}
	encs, err := modstems.Encoders(encOpts)
	if err != nil {
		return err
	}
	enc, err := encs.Get(cfg.Format)
	if err != nil {
		return err
	}

	port, err := a.deps.NewEngine()
	if err != nil {
		return fmt.Errorf("open engine: %w", err)
	}
	if !cfg.Engine.Concurrent {
		port = engine.NewLocked(port)
	}

	options := []render.Option{render.WithLogger(a.log)}
	if cfg.Progress {
		bars := newProgressBars(cmd.ErrOrStderr())
		defer bars.finish()
		options = append(options, render.WithProgress(bars.update))
	}

	r, err := render.New(port, a.deps.Fs, enc, cfg.RenderOptions(), options...)
	if err != nil {
		return err
	}

	a.log.Info("rendering",
		"files", len(files),
		"format", cfg.Format,
		"sample_rate", cfg.SampleRate,
		"sample_format", cfg.SampleFormat,
		"workers", r.Options().Workers,
	)

	run, err := r.Run(cmd.Context(), files, cfg.Output)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Files:   %d (%d skipped)\n", run.Files, run.Skipped)
	fmt.Fprintf(out, "Stems:   %d planned, %d written, %d silent, %d failed\n",
		run.Planned, run.Written, run.Silent, run.Failed)

	return nil
}
