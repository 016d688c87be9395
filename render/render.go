// SPDX-License-Identifier: EPL-2.0

package render

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/engine"
	"github.com/ik5/modstems/pcm"
	"github.com/ik5/modstems/stems"
)

// Summary counts the outcome of every planned task.
type Summary struct {
	Planned int
	Written int
	Silent  int
	Failed  int
}

func (s *Summary) add(o Summary) {
	s.Planned += o.Planned
	s.Written += o.Written
	s.Silent += o.Silent
	s.Failed += o.Failed
}

// RunSummary is the outcome of a whole run.
type RunSummary struct {
	Summary

	Files int
	// Skipped counts files that could not be read or probed, or whose
	// metadata was invalid.
	Skipped int
	Paths   []string
}

// Renderer turns modules into encoded stems.
type Renderer struct {
	port     engine.Port
	fs       afero.Fs
	enc      codec.Encoder
	opts     Options
	log      *slog.Logger
	progress ProgressFunc
}

// New validates opts and returns a renderer writing through fs.
func New(port engine.Port, fs afero.Fs, enc codec.Encoder, opts Options, options ...Option) (*Renderer, error) {
	if enc == nil {
		return nil, ErrNoEncoder
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	r := &Renderer{
		port: port,
		fs:   fs,
		enc:  enc,
		opts: opts,
		log:  slog.Default(),
	}
	for _, o := range options {
		o(r)
	}

	return r, nil
}

// Options returns the validated options.
func (r *Renderer) Options() Options { return r.opts }

// Run renders every file in paths into outDir, one file at a time. ctx is
// checked between files; tasks already started always finish.
func (r *Renderer) Run(ctx context.Context, paths []string, outDir string) (RunSummary, error) {
	var run RunSummary

	if err := r.fs.MkdirAll(outDir, 0o755); err != nil {
		return run, fmt.Errorf("create output directory %s: %w", outDir, err)
	}

	for _, path := range paths {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		run.Files++

		log := r.log.With("file", path)

		module, err := afero.ReadFile(r.fs, path)
		if err != nil {
			log.Error("read module", "error", err)
			run.Skipped++
			continue
		}

		meta, err := r.port.Probe(module)
		if err != nil {
			log.Error("probe module", "error", err)
			run.Skipped++
			continue
		}

		stem := filepath.Join(outDir, StemOf(path))
		sum, written, err := r.RenderSong(path, module, meta, stem)
		if err != nil {
			log.Warn("skipping module", "error", err)
			run.Skipped++
			continue
		}

		log.Info("module done",
			"planned", sum.Planned,
			"written", sum.Written,
			"silent", sum.Silent,
			"failed", sum.Failed,
		)
		run.add(sum)
		run.Paths = append(run.Paths, written...)
	}

	return run, nil
}

// StemOf is the output stem of an input path: its base name without
// extension.
func StemOf(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// RenderSong renders every planned task of one module, at most
// Options.Workers at a time. Task failures are logged and counted; the
// error is only for metadata that cannot produce stems. file labels logs
// and progress. The written paths are sorted.
func (r *Renderer) RenderSong(file string, module []byte, meta engine.SongMetadata, stem string) (Summary, []string, error) {
	if err := meta.Validate(); err != nil {
		return Summary{}, nil, fmt.Errorf("invalid metadata: %w", err)
	}

	tasks := stems.Plan(meta, r.opts.Stems)
	total := len(tasks)
	r.log.Debug("planned tasks",
		"file", file,
		"tasks", total,
		"channels", meta.ChannelCount,
		"instruments", meta.InstrumentCount,
		"duration", meta.DurationSeconds,
	)

	var (
		done, written, silent, failed atomic.Int64

		mtx   sync.Mutex
		paths = make([]string, 0, total)
	)

	p := pool.New().WithMaxGoroutines(r.opts.Workers)
	for _, t := range tasks {
		p.Go(func() {
			path, err := r.renderTask(module, meta, t, stem)
			log := r.log.With(
				"file", file,
				"stem", stems.Name(filepath.Base(stem), t),
				"channel", t.Channel.String(),
				"instrument", t.Instrument.String(),
			)

			switch {
			case err != nil:
				failed.Add(1)
				log.Error("task failed", "error", err)
			case path == "":
				silent.Add(1)
				log.Debug("silent, no file written")
			default:
				written.Add(1)
				mtx.Lock()
				paths = append(paths, path)
				mtx.Unlock()
				log.Debug("wrote stem", "path", path)
			}

			n := done.Add(1)
			if r.progress != nil {
				r.progress(file, int(n), total)
			}
		})
	}
	p.Wait()

	slices.Sort(paths)

	return Summary{
		Planned: total,
		Written: int(written.Load()),
		Silent:  int(silent.Load()),
		Failed:  int(failed.Load()),
	}, paths, nil
}

// renderTask renders one task and encodes it unless it is silent. It
// returns the written path, or "" for a silent stem.
func (r *Renderer) renderTask(module []byte, meta engine.SongMetadata, t stems.Task, stem string) (string, error) {
	capacity := Capacity(meta, t, r.opts.SampleRate, r.opts.BytesPerSample, r.opts.SafetyMargin)
	buf := make([]byte, capacity)

	params := t.Params(r.opts.SampleRate, r.opts.BytesPerSample, r.opts.Panning)
	n, err := r.port.Render(buf, module, &params)
	if err != nil {
		return "", fmt.Errorf("render %s: %w", t, err)
	}
	if n < 0 || n > capacity {
		return "", fmt.Errorf("%w: %d > %d", engine.ErrOverrun, n, capacity)
	}

	buf = buf[:n]
	if pcm.IsSilent(buf) {
		return "", nil
	}

	out := codec.PCM{
		Data:           buf,
		SampleRate:     r.opts.SampleRate,
		Channels:       t.OutputChannels(),
		BytesPerSample: r.opts.BytesPerSample,
	}

	return codec.WriteFile(r.fs, stems.Name(stem, t), out, r.enc)
}
