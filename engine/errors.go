// SPDX-License-Identifier: EPL-2.0

package engine

import "errors"

var (
	// ErrNoChannels indicates the module reports zero channels.
	ErrNoChannels = errors.New("song has no channels")

	// ErrNoInstruments indicates the module reports zero instruments.
	ErrNoInstruments = errors.New("song has no instruments")

	// ErrNoDuration indicates the module reports no playable duration.
	ErrNoDuration = errors.New("song has no duration")

	// ErrRenderFailed indicates the engine could not render the request.
	ErrRenderFailed = errors.New("engine render failed")

	// ErrOverrun indicates the engine reported more bytes than the buffer holds.
	ErrOverrun = errors.New("engine reported more bytes than the buffer capacity")

	// ErrLayout indicates RenderParams does not have the expected binary layout.
	ErrLayout = errors.New("render params layout mismatch")

	// ErrUnavailable indicates the binary was built without an engine backend.
	ErrUnavailable = errors.New("module engine not available in this build")
)
