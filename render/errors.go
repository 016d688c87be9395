// SPDX-License-Identifier: EPL-2.0

package render

import "errors"

var (
	// ErrSampleRate indicates a sample rate outside [MinSampleRate, MaxSampleRate].
	ErrSampleRate = errors.New("sample rate out of range")

	// ErrSampleFormat indicates a sample width other than int16 or float32.
	ErrSampleFormat = errors.New("unsupported sample format")

	// ErrPanning indicates a panning value outside [-1, 1].
	ErrPanning = errors.New("panning must be within [-1, 1]")

	// ErrMargin indicates a negative or non-finite safety margin.
	ErrMargin = errors.New("safety margin must be a finite, non-negative number of seconds")

	// ErrNoEncoder indicates a renderer was built without an encoder.
	ErrNoEncoder = errors.New("no encoder configured")

	// ErrNoStems indicates no stem kind was selected.
	ErrNoStems = errors.New("no stems selected")
)
