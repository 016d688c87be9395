// SPDX-License-Identifier: EPL-2.0

// Package pcm provides typed sample views over raw interleaved PCM buffers.
//
// Rendered audio arrives as a little-endian byte slice holding either 16-bit
// signed integers or 32-bit IEEE floats. Encoders never reinterpret those
// bytes in place; they ask this package for a copy in the layout they need:
//
//	ints, err := pcm.Int16s(buf)            // []int16
//	floats, err := pcm.Float32s(buf, 2)     // []float32, int16 input scaled to [-1, 1)
//	wide, bits, err := pcm.Int32s(buf, 4)   // []int32 at 24 bit for float input
//	planar, err := pcm.Deinterleave(floats, 2)
//
// Every view checks that the buffer length is a whole number of samples and
// never modifies its input.
package pcm
