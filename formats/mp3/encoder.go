// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"
	"slices"

	"github.com/ik5/modstems/codec"
)

// FormatName is the registry key of the MP3 encoder.
const FormatName = "mp3"

// DefaultBitrate is the CBR rate in kbit/s.
const DefaultBitrate = 320

// Bitrates lists the kbit/s values the encoder accepts.
var Bitrates = []int{8, 16, 24, 32, 40, 48, 56, 64, 80, 96, 112, 128, 160, 192, 224, 256, 320}

// OutputBound is the worst-case encoded size of frames frames as
// documented by LAME: 1.25 bytes per frame plus 7200.
func OutputBound(frames int) int {
	return frames + frames/4 + 7200
}

// Encoder writes constant bitrate MP3 through libmp3lame at its highest
// quality setting. It takes 16-bit or float input, mono or stereo.
type Encoder struct {
	bitrate int
	encode  func(p codec.PCM, kbps int) ([]byte, error)
}

// NewEncoder returns an encoder for bitrate kbit/s.
func NewEncoder(bitrate int) *Encoder {
	return &Encoder{bitrate: bitrate, encode: encodeLame}
}

func (*Encoder) Name() string      { return FormatName }
func (*Encoder) Extension() string { return ".mp3" }

// Bitrate is the configured rate in kbit/s.
func (e *Encoder) Bitrate() int { return e.bitrate }

// ValidateBitrate checks kbps against Bitrates.
func ValidateBitrate(kbps int) error {
	if !slices.Contains(Bitrates, kbps) {
		return fmt.Errorf("%w: %d kbit/s", ErrBitrate, kbps)
	}
	return nil
}

func (e *Encoder) Encode(w io.WriteSeeker, p codec.PCM) error {
	if p.Channels != 1 && p.Channels != 2 {
		return codec.Fail(FormatName, codec.OpInit, fmt.Errorf("%w: %d", codec.ErrChannels, p.Channels))
	}
	if err := ValidateBitrate(e.bitrate); err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}
	if err := p.Validate(); err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	data, err := e.encode(p, e.bitrate)
	if err != nil {
		return err
	}

	if _, err := w.Write(data); err != nil {
		return codec.Fail(FormatName, codec.OpWrite, err)
	}

	return nil
}
