// SPDX-License-Identifier: EPL-2.0

// Package openmpt implements engine.Port on top of libopenmpt.
//
// The package needs cgo and the libopenmpt development files (found through
// pkg-config). Without cgo, New returns engine.ErrUnavailable.
//
// Every call opens its own module instance from the supplied bytes, so no
// state is shared between renders. Channel and instrument selection uses the
// "interactive" extension to mute everything else; panning of the selected
// channel uses "interactive2" when the library provides it.
package openmpt
