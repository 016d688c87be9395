// SPDX-License-Identifier: EPL-2.0

package opus

import (
	"fmt"
	"io"
	"slices"

	"github.com/pion/rtp"
	"github.com/pion/webrtc/v4/pkg/media/oggwriter"

	"github.com/ik5/modstems/audio"
	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/pcm"
)

const (
	// FormatName is the registry key of the Opus encoder.
	FormatName = "opus"

	// DefaultBitrate is in bit/s.
	DefaultBitrate = 192_000

	// Complexity is the libopus effort setting, its maximum.
	Complexity = 10

	// ResampleRate is used for renders at a rate Opus cannot take.
	ResampleRate = 48000

	// maxPacketBytes is the space reserved for each encoded packet.
	maxPacketBytes = 4000

	// granuleStep is one 20 ms packet in Ogg Opus granule units (48 kHz).
	granuleStep = 960

	minBitrate = 6_000
	maxBitrate = 510_000
)

// SampleRates lists the rates libopus encodes natively.
var SampleRates = []int{8000, 12000, 16000, 24000, 48000}

// packetEncoder is the part of the libopus encoder used here.
type packetEncoder interface {
	Encode(pcm []int16, data []byte) (int, error)
	EncodeFloat32(pcm []float32, data []byte) (int, error)
}

type newFunc func(sampleRate, channels, bitrate int) (packetEncoder, error)

// Encoder writes Ogg Opus files. Input is 16-bit or float, mono or stereo;
// renders at rates Opus does not support are resampled to 48 kHz first.
type Encoder struct {
	bitrate int
	open    newFunc
}

// NewEncoder returns an encoder for bitrate bit/s.
func NewEncoder(bitrate int) *Encoder {
	return &Encoder{bitrate: bitrate, open: newLibopus}
}

func (*Encoder) Name() string      { return FormatName }
func (*Encoder) Extension() string { return ".opus" }

// Bitrate is the configured rate in bit/s.
func (e *Encoder) Bitrate() int { return e.bitrate }

// ValidateBitrate checks bps against the libopus range.
func ValidateBitrate(bps int) error {
	if bps < minBitrate || bps > maxBitrate {
		return fmt.Errorf("%w: %d", ErrBitrate, bps)
	}
	return nil
}

// frameInput is the render in the form the packet encoder takes. Exactly
// one of ints and floats is set.
type frameInput struct {
	rate   int
	ints   []int16
	floats []float32
}

func prepare(p codec.PCM) (frameInput, error) {
	if !slices.Contains(SampleRates, p.SampleRate) {
		floats, err := p.Float32s()
		if err != nil {
			return frameInput{}, err
		}
		src, err := audio.NewBufferSource(floats, p.SampleRate, p.Channels)
		if err != nil {
			return frameInput{}, err
		}
		out, err := audio.ReadAll(audio.NewResampler(src, ResampleRate))
		if err != nil {
			return frameInput{}, fmt.Errorf("resample to %d Hz: %w", ResampleRate, err)
		}
		return frameInput{rate: ResampleRate, floats: out}, nil
	}

	if p.IsFloat() {
		floats, err := p.Float32s()
		return frameInput{rate: p.SampleRate, floats: floats}, err
	}

	ints, err := pcm.Int16s(p.Data)
	return frameInput{rate: p.SampleRate, ints: ints}, err
}

func (in frameInput) values() int {
	if in.floats != nil {
		return len(in.floats)
	}
	return len(in.ints)
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

	in, err := prepare(p)
	if err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	enc, err := e.open(in.rate, p.Channels, e.bitrate)
	if err != nil {
		return &codec.EncodeError{
			Format: FormatName,
			Op:     codec.OpInit,
			Detail: fmt.Sprintf("%d Hz, %d channels, %d bit/s", in.rate, p.Channels, e.bitrate),
			Err:    err,
		}
	}

	data, sizes, err := packetize(enc, in, p.Channels)
	if err != nil {
		return err
	}

	return writeOgg(w, data, sizes, p.SampleRate, p.Channels)
}

// packetize encodes every whole 20 ms frame, then the zero-padded
// remainder. Packets are laid end to end in one buffer reserved up front;
// its length grows by the size each call reports.
func packetize(enc packetEncoder, in frameInput, channels int) ([]byte, []int, error) {
	frameValues := in.rate / 50 * channels
	total := in.values()
	packets := (total + frameValues - 1) / frameValues

	data := make([]byte, 0, packets*maxPacketBytes)
	sizes := make([]int, 0, packets)

	var padInts []int16
	var padFloats []float32
	for i, start := 0, 0; start < total; i, start = i+1, start+frameValues {
		end := start + frameValues
		out := data[len(data) : len(data)+maxPacketBytes]

		var n int
		var err error
		switch {
		case in.floats != nil && end <= total:
			n, err = enc.EncodeFloat32(in.floats[start:end], out)
		case in.floats != nil:
			padFloats = make([]float32, frameValues)
			copy(padFloats, in.floats[start:])
			n, err = enc.EncodeFloat32(padFloats, out)
		case end <= total:
			n, err = enc.Encode(in.ints[start:end], out)
		default:
			padInts = make([]int16, frameValues)
			copy(padInts, in.ints[start:])
			n, err = enc.Encode(padInts, out)
		}

		if err == nil && (n <= 0 || n > maxPacketBytes) {
			err = fmt.Errorf("%w: size %d", ErrPacket, n)
		}
		if err != nil {
			return nil, nil, &codec.EncodeError{
				Format: FormatName,
				Op:     codec.OpEncode,
				Detail: fmt.Sprintf("packet %d of %d", i+1, packets),
				Err:    err,
			}
		}

		data = data[:len(data)+n]
		sizes = append(sizes, n)
	}

	return data, sizes, nil
}

// writeOgg wraps each packet in an RTP packet so pion's Ogg writer can page
// it; the timestamp advances one 20 ms step per packet.
func writeOgg(w io.Writer, data []byte, sizes []int, inputRate, channels int) error {
	// The wrapper hides any Close method so the caller keeps the file.
	ogg, err := oggwriter.NewWith(struct{ io.Writer }{w}, uint32(inputRate), uint16(channels))
	if err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	var ts uint32
	off := 0
	for i, n := range sizes {
		pkt := &rtp.Packet{
			Header: rtp.Header{
				Version:        2,
				SequenceNumber: uint16(i),
				Timestamp:      ts,
			},
			Payload: data[off : off+n],
		}
		if err := ogg.WriteRTP(pkt); err != nil {
			_ = ogg.Close()
			return &codec.EncodeError{
				Format: FormatName,
				Op:     codec.OpWrite,
				Detail: fmt.Sprintf("packet %d", i+1),
				Err:    err,
			}
		}
		off += n
		ts += granuleStep
	}

	if err := ogg.Close(); err != nil {
		return codec.Fail(FormatName, codec.OpFinalize, err)
	}

	return nil
}
