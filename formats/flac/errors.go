// SPDX-License-Identifier: EPL-2.0

package flac

import "errors"

var (
	// ErrVerify indicates libFLAC's verifier decoded different samples
	// from the ones it was given.
	ErrVerify = errors.New("flac verification failed")

	// ErrChannels indicates a channel count FLAC cannot carry.
	ErrChannels = errors.New("flac supports 1 to 8 channels")

	// ErrLibFLAC indicates libFLAC reported a failure.
	ErrLibFLAC = errors.New("libFLAC")
)
