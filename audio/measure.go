// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"
	"time"
)

// Stats summarizes a fully read stream.
type Stats struct {
	SampleRate int
	Channels   int
	Frames     int64
	// Peak is the largest absolute sample value seen on any channel.
	Peak float32
}

// Duration is Frames expressed at SampleRate.
func (s Stats) Duration() time.Duration {
	if s.SampleRate == 0 {
		return 0
	}

	return time.Duration(s.Frames) * time.Second / time.Duration(s.SampleRate)
}

// Measure reads src to the end. It does not close src.
func Measure(src Source) (Stats, error) {
	st := Stats{SampleRate: src.SampleRate(), Channels: src.Channels()}
	if st.Channels < 1 {
		return st, ErrChannels
	}

	size := max(src.BufSize(), st.Channels)
	size -= size % st.Channels
	buf := make([]float32, size)

	var values int64
	for {
		n, err := src.ReadSamples(buf)
		for _, v := range buf[:n] {
			if v < 0 {
				v = -v
			}
			if v > st.Peak {
				st.Peak = v
			}
		}
		values += int64(n)

		if err == io.EOF {
			break
		}
		if err != nil {
			return st, fmt.Errorf("measure: %w", err)
		}
	}

	st.Frames = values / int64(st.Channels)
	return st, nil
}
