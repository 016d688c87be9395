// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/modstems/audio"
	"github.com/ik5/modstems/pcm"
	"github.com/ik5/modstems/utils"
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

// go-mp3 always produces 16-bit stereo, mono streams included.
const decodedChannels = 2

type source struct {
	dec  mp3Reader
	buf  []byte
	tail []byte // bytes of an incomplete sample from the last read
}

func (s *source) SampleRate() int { return s.dec.SampleRate() }
func (s *source) Channels() int   { return decodedChannels }
func (s *source) Close() error    { return nil }
func (s *source) BufSize() int    { return cap(s.buf) / pcm.BytesInt16 }

func (s *source) ReadSamples(dst []float32) (int, error) {
	need := len(dst) * pcm.BytesInt16
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	buf := s.buf[:need]

	k := copy(buf, s.tail)
	n, err := s.dec.Read(buf[k:])
	n += k

	whole := n - n%pcm.BytesInt16
	s.tail = append(s.tail[:0], buf[whole:n]...)

	ints, convErr := pcm.Int16s(buf[:whole])
	if convErr != nil {
		return 0, convErr
	}
	for i, v := range ints {
		dst[i] = utils.Int16ToFloat32(v)
	}

	if err != nil && err != io.EOF {
		return len(ints), fmt.Errorf("decode mp3: %w", err)
	}
	return len(ints), err
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("open mp3 stream: %w", err)
	}

	return &source{dec: dec, buf: make([]byte, 8192)}, nil
}
