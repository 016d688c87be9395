// SPDX-License-Identifier: EPL-2.0

package vorbis

import "errors"

var (
	// ErrStrategy indicates an unknown bitrate strategy.
	ErrStrategy = errors.New("unknown vorbis bitrate strategy")

	// ErrBitrate indicates a missing or out of range bitrate for the strategy.
	ErrBitrate = errors.New("vorbis bitrate out of range")

	// ErrQuality indicates a quality outside [-0.1, 1.0].
	ErrQuality = errors.New("vorbis quality must be within [-0.1, 1.0]")

	// ErrFloatOnly indicates integer samples reached the encoder.
	ErrFloatOnly = errors.New("vorbis encoder takes float32 samples only")

	// ErrState indicates a call out of order on a stream.
	ErrState = errors.New("vorbis stream used out of order")

	errLibvorbis = errors.New("libvorbisenc")
)
