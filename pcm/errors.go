// SPDX-License-Identifier: EPL-2.0

package pcm

import "errors"

var (
	// ErrMisaligned indicates the buffer is not a whole number of samples or frames.
	ErrMisaligned = errors.New("pcm buffer length is not a multiple of the sample size")

	// ErrSampleWidth indicates a bytes-per-sample value other than 2 or 4.
	ErrSampleWidth = errors.New("bytes per sample must be 2 (int16) or 4 (float32)")

	// ErrChannels indicates a channel count below one.
	ErrChannels = errors.New("channel count must be at least 1")
)
