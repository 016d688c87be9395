// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/pcm"
)

// FormatName is the registry key of the Ogg Vorbis encoder.
const FormatName = "ogg"

// blockEncoder is one open Vorbis stream. Encode takes one planar block,
// Finalize ends the stream and releases it.
type blockEncoder interface {
	Encode(planar [][]float32) error
	Finalize() error
}

type openFunc func(w io.Writer, sampleRate, channels int, opts Options) (blockEncoder, error)

type state int

const (
	opened state = iota
	encoding
	finalized
)

// stream walks a blockEncoder through Opened, Encoding and Finalized.
type stream struct {
	enc    blockEncoder
	state  state
	blocks int
}

func (s *stream) encode(planar [][]float32) error {
	if s.state == finalized {
		return ErrState
	}
	s.state = encoding
	s.blocks++

	return s.enc.Encode(planar)
}

func (s *stream) finalize() error {
	if s.state == finalized {
		return ErrState
	}
	s.state = finalized

	return s.enc.Finalize()
}

// Encoder writes Ogg Vorbis through libvorbisenc. It needs float input
// with one or two channels; samples go in one-second planar blocks.
type Encoder struct {
	opts Options
	open openFunc
	// blockFrames overrides the one-second block size.
	blockFrames int
}

func NewEncoder(opts Options) *Encoder {
	return &Encoder{opts: opts, open: openLibvorbis}
}

func (*Encoder) Name() string      { return FormatName }
func (*Encoder) Extension() string { return ".ogg" }
func (*Encoder) FloatOnly() bool   { return true }

// Options returns the encoder configuration.
func (e *Encoder) Options() Options { return e.opts }

func (e *Encoder) Encode(w io.WriteSeeker, p codec.PCM) error {
	if !p.IsFloat() {
		return codec.Fail(FormatName, codec.OpInit, ErrFloatOnly)
	}
	if p.Channels != 1 && p.Channels != 2 {
		return codec.Fail(FormatName, codec.OpInit, fmt.Errorf("%w: %d", codec.ErrChannels, p.Channels))
	}
	if err := e.opts.Validate(); err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	floats, err := p.Float32s()
	if err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}
	planar, err := pcm.Deinterleave(floats, p.Channels)
	if err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	enc, err := e.open(w, p.SampleRate, p.Channels, e.opts)
	if err != nil {
		return &codec.EncodeError{Format: FormatName, Op: codec.OpInit, Detail: string(e.opts.Strategy), Err: err}
	}
	s := &stream{enc: enc}

	size := e.blockFrames
	if size <= 0 {
		size = p.SampleRate
	}
	spans := Blocks(len(planar[0]), size)

	var blockErr error
	block := make([][]float32, p.Channels)
	for i, span := range spans {
		for c := range block {
			block[c] = planar[c][span.Start:span.End]
		}
		if err := s.encode(block); err != nil {
			blockErr = &codec.EncodeError{
				Format: FormatName,
				Op:     codec.OpEncode,
				Detail: fmt.Sprintf("block %d of %d", i+1, len(spans)),
				Err:    err,
			}
			break
		}
	}

	// The stream is finalized even after a failed block.
	finErr := s.finalize()
	switch {
	case blockErr != nil && finErr != nil:
		var ee *codec.EncodeError
		errors.As(blockErr, &ee)
		ee.Err = errors.Join(ee.Err, fmt.Errorf("finalize: %w", finErr))
		return ee
	case blockErr != nil:
		return blockErr
	case finErr != nil:
		return codec.Fail(FormatName, codec.OpFinalize, finErr)
	}

	return nil
}
