// SPDX-License-Identifier: EPL-2.0

// Package wav encodes rendered stems as WAV files and decodes WAV files
// back into an audio.Source.
//
// Both directions use github.com/go-audio/wav.
//
// # Encoding
//
// The Encoder stores samples in the width they were rendered with:
//   - 16-bit renders as PCM (format tag 1), 16 bit
//   - float renders as IEEE float (format tag 3), 32 bit
//
// No dithering or rescaling takes place, so a float render keeps values
// outside [-1, 1] exactly as the engine produced them.
//
//	path, err := codec.WriteFile(fs, "out/song", pcm, wav.NewEncoder())
//
// # Decoding
//
// The Decoder accepts 16, 24 and 32-bit PCM plus 32-bit IEEE float. Inputs
// that cannot seek are buffered in memory first:
//
//	src, err := wav.Decoder{}.Decode(file)
//	if errors.Is(err, wav.ErrNotWavFile) {
//	    // not RIFF/WAVE
//	}
package wav
