// SPDX-License-Identifier: EPL-2.0

// Package audio provides the decoded-stream primitives shared by the
// decoders and encoders.
//
// This package contains:
//   - the Source interface for decoded audio
//   - a decoder Registry keyed by format and file extension
//   - BufferSource over an in-memory interleaved buffer
//   - Resampler for sample rate conversion
//   - Measure for stream statistics
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// Every decoder under formats/ returns a Source, and the Resampler is a
// Source itself, so they chain.
//
// # Resampling
//
// The Resampler changes the sample rate with cubic interpolation. When it
// decimates it first runs a one-pole low-pass over the source frames:
//
//	src, _ := audio.NewBufferSource(samples, 44100, 2)
//	r := audio.NewResampler(src, 48000)
//	out, err := audio.ReadAll(r)
//
// The Opus encoder uses this to bring renders to 48 kHz.
//
// # Format Registry
//
//	registry := audio.NewRegistry()
//	registry.Register("wav", wav.Decoder{}, ".wav")
//	format, decoder, err := registry.ForPath("song_0001_chan_full.wav")
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0], with 0.0 as silence.
//
// # Error Handling
//
// ReadSamples returns io.EOF when no more data is available, possibly
// together with a final n > 0. Any other error is a failure of the source:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    process(buf[:n])
//	    if err == io.EOF {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
