// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"fmt"
	"strings"
)

// Strategy selects how libvorbisenc governs the bitrate.
type Strategy string

const (
	// VBR targets Bitrate with bitrate management turned off.
	VBR Strategy = "vbr"
	// Quality targets Quality, ignoring bitrates.
	Quality Strategy = "quality"
	// ABR keeps the average at Bitrate.
	ABR Strategy = "abr"
	// ConstrainedABR keeps every stretch below MaxBitrate.
	ConstrainedABR Strategy = "constrained-abr"
)

// Strategies lists every strategy in display order.
var Strategies = []Strategy{VBR, Quality, ABR, ConstrainedABR}

// ParseStrategy maps a strategy name to its value.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if strings.EqualFold(s, string(st)) {
			return st, nil
		}
	}

	return "", fmt.Errorf("%w: %q", ErrStrategy, s)
}

// Options configures the encoder. Bitrates are in bits per second.
type Options struct {
	Strategy   Strategy
	Bitrate    int
	MaxBitrate int
	Quality    float32
}

// DefaultOptions is 192 kbit/s unmanaged VBR.
func DefaultOptions() Options {
	return Options{
		Strategy:   VBR,
		Bitrate:    192_000,
		MaxBitrate: 256_000,
		Quality:    0.6,
	}
}

const (
	minBitrate = 8_000
	maxBitrate = 500_000
)

// Validate checks the fields the selected strategy uses.
func (o Options) Validate() error {
	checkRate := func(name string, v int) error {
		if v < minBitrate || v > maxBitrate {
			return fmt.Errorf("%w: %s %d not within [%d, %d]", ErrBitrate, name, v, minBitrate, maxBitrate)
		}
		return nil
	}

	switch o.Strategy {
	case VBR, ABR:
		return checkRate("bitrate", o.Bitrate)
	case ConstrainedABR:
		return checkRate("max bitrate", o.MaxBitrate)
	case Quality:
		if o.Quality < -0.1 || o.Quality > 1 {
			return fmt.Errorf("%w: %v", ErrQuality, o.Quality)
		}
		return nil
	}

	return fmt.Errorf("%w: %q", ErrStrategy, o.Strategy)
}
