// SPDX-License-Identifier: EPL-2.0

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/ik5/modstems"
	"github.com/ik5/modstems/formats/mp3"
	"github.com/ik5/modstems/formats/opus"
	"github.com/ik5/modstems/formats/vorbis"
	"github.com/ik5/modstems/formats/wav"
	"github.com/ik5/modstems/pcm"
	"github.com/ik5/modstems/render"
	"github.com/ik5/modstems/stems"
)

// EnvPrefix prefixes every environment override, e.g. MODSTEMS_VORBIS_MODE.
const EnvPrefix = "MODSTEMS"

// Sample formats.
const (
	SampleInt16 = "int16"
	SampleFloat = "float"
)

// Formats lists the output format keys.
var Formats = []string{"wav", "aiff", "flac", "ogg", "mp3", "opus"}

// New returns a viper instance with defaults and environment overrides set
// up. Flags are bound to it by the caller.
func New() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("input", "")
	v.SetDefault("output", "")
	v.SetDefault("recursive", false)

	v.SetDefault("format", wav.FormatName)
	v.SetDefault("sample_format", SampleInt16)
	v.SetDefault("sample_rate", 48000)
	v.SetDefault("stereo", false)
	v.SetDefault("channels", false)
	v.SetDefault("instruments", true)
	v.SetDefault("full", false)

	v.SetDefault("progress", false)
	v.SetDefault("workers", 0)
	v.SetDefault("safety_margin", render.DefaultSafetyMargin)

	vd := vorbis.DefaultOptions()
	v.SetDefault("vorbis.mode", string(vd.Strategy))
	v.SetDefault("vorbis.bitrate", vd.Bitrate/1000)
	v.SetDefault("vorbis.max_bitrate", vd.MaxBitrate/1000)
	v.SetDefault("vorbis.quality", vd.Quality)

	v.SetDefault("mp3.bitrate", mp3.DefaultBitrate)
	v.SetDefault("opus.bitrate", opus.DefaultBitrate/1000)

	v.SetDefault("engine.concurrent", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.json", false)
}

// Load reads the optional config file, unmarshals and validates. A missing
// file given explicitly is an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config file %s: %w", file, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	// panning has no default, so it is set only when given.
	if v.IsSet("panning") {
		cfg.Panning = float32(v.GetFloat64("panning"))
		cfg.PanningSet = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks every field and fills in the worker count.
func (c *Config) Validate() error {
	var errs []error

	if c.Input == "" {
		errs = append(errs, ErrNoInput)
	}
	if c.Output == "" {
		errs = append(errs, ErrNoOutput)
	}
	if !slices.Contains(Formats, c.Format) {
		errs = append(errs, fmt.Errorf("%w: %q", ErrFormat, c.Format))
	}
	if c.SampleFormat != SampleInt16 && c.SampleFormat != SampleFloat {
		errs = append(errs, fmt.Errorf("%w: %q", ErrSampleFormat, c.SampleFormat))
	}
	if _, err := ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, err)
	}

	ropts := c.RenderOptions()
	if err := ropts.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := c.EncoderOptions(); err != nil {
		errs = append(errs, err)
	}

	// Auto-correct invalid worker count
	if c.Workers <= 0 {
		c.Workers = ropts.Workers
	}

	return errors.Join(errs...)
}

// RenderOptions maps the configuration onto the renderer's options.
func (c *Config) RenderOptions() render.Options {
	opts := render.Options{
		SampleRate:     c.SampleRate,
		BytesPerSample: pcm.BytesInt16,
		SafetyMargin:   c.SafetyMargin,
		Workers:        c.Workers,
		Stems: stems.Flags{
			Full:          c.Full,
			PerChannel:    c.Channels,
			PerInstrument: c.Instruments,
			Stereo:        c.Stereo,
		},
	}
	if c.SampleFormat == SampleFloat {
		opts.BytesPerSample = pcm.BytesFloat32
	}
	if c.PanningSet {
		p := c.Panning
		opts.Panning = &p
	}

	return opts
}

// EncoderOptions maps the configuration onto the encoder settings and
// validates them.
func (c *Config) EncoderOptions() (modstems.EncoderOptions, error) {
	opts := modstems.DefaultEncoderOptions()

	strategy, err := vorbis.ParseStrategy(c.Vorbis.Mode)
	if err != nil {
		return opts, err
	}
	opts.Vorbis = vorbis.Options{
		Strategy:   strategy,
		Bitrate:    c.Vorbis.Bitrate * 1000,
		MaxBitrate: c.Vorbis.MaxBitrate * 1000,
		Quality:    c.Vorbis.Quality,
	}
	opts.MP3Bitrate = c.MP3.Bitrate
	opts.OpusBitrate = c.Opus.Bitrate * 1000

	return opts, opts.Validate()
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrLogLevel, s)
	}
	return l, nil
}
