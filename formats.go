// SPDX-License-Identifier: EPL-2.0

package modstems

import (
	"fmt"

	"github.com/ik5/modstems/audio"
	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/formats/aiff"
	"github.com/ik5/modstems/formats/flac"
	"github.com/ik5/modstems/formats/mp3"
	"github.com/ik5/modstems/formats/opus"
	"github.com/ik5/modstems/formats/vorbis"
	"github.com/ik5/modstems/formats/wav"
)

// Decoders returns a registry of every format stems can be read back
// from. Opus output has no decoder.
func Decoders() *audio.Registry {
	r := audio.NewRegistry()
	r.Register(wav.FormatName, wav.Decoder{}, ".wav", ".wave")
	r.Register(aiff.FormatName, aiff.Decoder{}, ".aiff", ".aif")
	r.Register(flac.FormatName, flac.Decoder{}, ".flac")
	r.Register(vorbis.FormatName, vorbis.Decoder{}, ".ogg", ".oga")
	r.Register(mp3.FormatName, mp3.Decoder{}, ".mp3")

	return r
}

// EncoderOptions carries the settings of the lossy encoders.
type EncoderOptions struct {
	Vorbis vorbis.Options

	// MP3Bitrate is in kbit/s.
	MP3Bitrate int
	// OpusBitrate is in bit/s.
	OpusBitrate int
}

// DefaultEncoderOptions returns the defaults of every encoder.
func DefaultEncoderOptions() EncoderOptions {
	return EncoderOptions{
		Vorbis:      vorbis.DefaultOptions(),
		MP3Bitrate:  mp3.DefaultBitrate,
		OpusBitrate: opus.DefaultBitrate,
	}
}

// Validate checks every encoder setting.
func (o EncoderOptions) Validate() error {
	if err := o.Vorbis.Validate(); err != nil {
		return fmt.Errorf("vorbis: %w", err)
	}
	if err := mp3.ValidateBitrate(o.MP3Bitrate); err != nil {
		return fmt.Errorf("mp3: %w", err)
	}
	if err := opus.ValidateBitrate(o.OpusBitrate); err != nil {
		return fmt.Errorf("opus: %w", err)
	}

	return nil
}

// Encoders returns a registry holding one encoder per output format.
func Encoders(opts EncoderOptions) (*codec.Registry, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return codec.NewRegistry(
		wav.NewEncoder(),
		aiff.NewEncoder(),
		flac.NewEncoder(),
		vorbis.NewEncoder(opts.Vorbis),
		mp3.NewEncoder(opts.MP3Bitrate),
		opus.NewEncoder(opts.OpusBitrate),
	), nil
}
