// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/modstems/utils"
)

// smoothing is the one-pole coefficient applied to source frames when
// the resampler decimates.
const smoothing float32 = 0.5

// Resampler streams src at another sample rate using cubic interpolation.
// Works on interleaved samples and keeps the channel count.
type Resampler struct {
	src      Source
	rate     int
	channels int
	// step is the number of source frames consumed per output frame.
	step float64

	// hist holds the four frames around the read position: hist[1] and
	// hist[2] are interpolated, hist[0] and hist[3] shape the curve.
	// real marks frames that came from src instead of edge padding.
	hist   [4][]float32
	real   [4]bool
	primed bool
	done   bool
	pos    float64

	in      []float32
	inOff   int
	inLen   int
	srcDone bool

	smooth bool
	lp     []float32
}

func NewResampler(src Source, dstRate int) *Resampler {
	ch := src.Channels()
	step := float64(src.SampleRate()) / float64(dstRate)

	size := max(src.BufSize(), ch)
	size -= size % ch

	r := &Resampler{
		src:      src,
		rate:     dstRate,
		channels: ch,
		step:     step,
		in:       make([]float32, size),
		smooth:   step > 1,
		lp:       make([]float32, ch),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, ch)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.rate }
func (r *Resampler) Channels() int   { return r.channels }
func (r *Resampler) BufSize() int    { return r.src.BufSize() }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("close source: %w", err)
	}
	return nil
}

// pull copies the next source frame into dst. ok is false once the
// source is exhausted.
func (r *Resampler) pull(dst []float32, first bool) (bool, error) {
	for r.inOff >= r.inLen {
		if r.srcDone {
			return false, nil
		}

		n, err := r.src.ReadSamples(r.in)
		r.inOff, r.inLen = 0, n-n%r.channels
		if err == io.EOF {
			r.srcDone = true
		} else if err != nil {
			return false, fmt.Errorf("read source: %w", err)
		}
	}

	copy(dst, r.in[r.inOff:r.inOff+r.channels])
	r.inOff += r.channels

	if r.smooth {
		if first {
			copy(r.lp, dst)
		}
		for c := range dst {
			dst[c] = smoothing*dst[c] + (1-smoothing)*r.lp[c]
			r.lp[c] = dst[c]
		}
	}

	return true, nil
}

// prime loads the first frames. The leading neighbour repeats frame 0.
func (r *Resampler) prime() error {
	r.primed = true

	ok, err := r.pull(r.hist[1], true)
	if err != nil {
		return err
	}
	if !ok {
		r.done = true
		return nil
	}
	copy(r.hist[0], r.hist[1])
	r.real[0], r.real[1] = true, true

	for i := 2; i < 4; i++ {
		if err := r.fill(i); err != nil {
			return err
		}
	}

	return nil
}

// fill loads slot i from the source, or repeats slot i-1 past the end.
func (r *Resampler) fill(i int) error {
	ok, err := r.pull(r.hist[i], false)
	if err != nil {
		return err
	}
	if !ok {
		copy(r.hist[i], r.hist[i-1])
	}
	r.real[i] = ok

	return nil
}

func (r *Resampler) advance() error {
	r.hist[0], r.hist[1], r.hist[2], r.hist[3] = r.hist[1], r.hist[2], r.hist[3], r.hist[0]
	r.real[0], r.real[1], r.real[2] = r.real[1], r.real[2], r.real[3]

	if err := r.fill(3); err != nil {
		return err
	}
	if !r.real[1] {
		r.done = true
	}

	return nil
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of the channel count.
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.primed {
		if err := r.prime(); err != nil {
			return 0, err
		}
	}

	frames := len(dst) / r.channels
	written := 0
	for written < frames {
		for !r.done && r.pos >= 1 {
			r.pos--
			if err := r.advance(); err != nil {
				return written * r.channels, err
			}
		}
		if r.done {
			return written * r.channels, io.EOF
		}

		x := float32(r.pos)
		out := dst[written*r.channels : (written+1)*r.channels]
		for c := range out {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}

		written++
		r.pos += r.step
	}

	return written * r.channels, nil
}
