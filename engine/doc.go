// SPDX-License-Identifier: EPL-2.0

// Package engine defines the port to the module synthesis engine.
//
// The engine is an external collaborator: given the raw bytes of a tracker
// module it reports the song's shape (Probe) and renders PCM for a selection
// of channels and instruments (Render). Implementations live in sub-packages;
// engine/openmpt binds libopenmpt through cgo.
//
// # Render parameters
//
// RenderParams is passed across the foreign-function boundary by pointer, so
// its memory layout is a binary contract:
//
//	offset  field            type
//	     0  SampleRate       uint32
//	     4  BytesPerSample   uint32
//	     8  Channel          int32   (-1 = all)
//	    12  Instrument       int32   (-1 = all)
//	    16  Panning          float32
//	    20  PanningEnabled   bool
//	    21  StereoOutput     bool
//	    22  (padding)        [2]byte
//
// ValidateLayout checks this at startup instead of trusting it silently.
//
// # Concurrency
//
// Whether an engine may render from several goroutines at once depends on the
// implementation. Wrap a Port with Locked to serialise every call.
package engine
