// SPDX-License-Identifier: EPL-2.0

package modstems_test

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/ik5/modstems"
	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/internal/audiotest"
)

// Example_encoders lists the output formats.
func Example_encoders() {
	encs, err := modstems.Encoders(modstems.DefaultEncoderOptions())
	if err != nil {
		fmt.Printf("encoders: %v\n", err)
		return
	}

	fmt.Println(encs.Formats())
	// Output: [aiff flac mp3 ogg opus wav]
}

// Example_inspect writes one second of a stem and reads it back.
func Example_inspect() {
	fs := afero.NewMemMapFs()

	encs, _ := modstems.Encoders(modstems.DefaultEncoderOptions())
	enc, _ := encs.Get("aiff")

	stem := codec.PCM{
		Data:           audiotest.Int16PCM(8000, 1, audiotest.SineWave(8000, 440)),
		SampleRate:     8000,
		Channels:       1,
		BytesPerSample: 2,
	}
	path, err := codec.WriteFile(fs, "out/song_0001_chan_full", stem, enc)
	if err != nil {
		fmt.Printf("write: %v\n", err)
		return
	}

	rep, err := modstems.Inspect(fs, modstems.Decoders(), path)
	if err != nil {
		fmt.Printf("inspect: %v\n", err)
		return
	}

	fmt.Printf("%s: %s, %d Hz, %d channel, %v\n", rep.Path, rep.Format, rep.SampleRate, rep.Channels, rep.Duration())
	// Output: out/song_0001_chan_full.aiff: aiff, 8000 Hz, 1 channel, 1s
}
