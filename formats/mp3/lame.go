// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package mp3

/*
#cgo LDFLAGS: -lmp3lame
#include <stdlib.h>
#include <lame/lame.h>
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/ik5/modstems/codec"
	"github.com/ik5/modstems/pcm"
)

// encodeLame runs the two-phase LAME protocol: one encode call over the
// whole buffer, then a no-gap flush. The output slice is reserved to
// OutputBound and its length only advances by the byte counts LAME reports.
func encodeLame(p codec.PCM, kbps int) ([]byte, error) {
	frames, err := p.Frames()
	if err != nil {
		return nil, codec.Fail(FormatName, codec.OpInit, err)
	}

	gfp := C.lame_init()
	if gfp == nil {
		return nil, codec.Fail(FormatName, codec.OpInit, fmt.Errorf("%w: lame_init failed", ErrLame))
	}
	defer C.lame_close(gfp)

	mode := C.JOINT_STEREO
	if p.Channels == 1 {
		mode = C.MONO
	}
	C.lame_set_num_channels(gfp, C.int(p.Channels))
	C.lame_set_in_samplerate(gfp, C.int(p.SampleRate))
	C.lame_set_mode(gfp, C.MPEG_mode(mode))
	C.lame_set_VBR(gfp, C.vbr_off)
	C.lame_set_brate(gfp, C.int(kbps))
	C.lame_set_quality(gfp, 0)
	if r := C.lame_init_params(gfp); r < 0 {
		return nil, &codec.EncodeError{
			Format: FormatName,
			Op:     codec.OpInit,
			Detail: fmt.Sprintf("%d Hz, %d channels, %d kbit/s", p.SampleRate, p.Channels, kbps),
			Err:    lameError(r),
		}
	}

	out := make([]byte, 0, OutputBound(frames))
	buf := out[:cap(out)]

	n, err := encodeBuffer(gfp, p, frames, buf)
	if err != nil {
		return nil, err
	}
	out = out[:n]

	if n >= len(buf) {
		return nil, codec.Fail(FormatName, codec.OpFinalize, fmt.Errorf("%w: no room left to flush", ErrLame))
	}
	flushed := C.lame_encode_flush_nogap(gfp, (*C.uchar)(unsafe.Pointer(&buf[n])), C.int(len(buf)-n))
	if flushed < 0 {
		return nil, codec.Fail(FormatName, codec.OpFinalize, lameError(flushed))
	}
	out = out[:n+int(flushed)]

	return out, nil
}

func encodeBuffer(gfp *C.lame_global_flags, p codec.PCM, frames int, buf []byte) (int, error) {
	dst := (*C.uchar)(unsafe.Pointer(&buf[0]))
	size := C.int(len(buf))

	var r C.int
	if p.IsFloat() {
		samples, err := p.Float32s()
		if err != nil {
			return 0, codec.Fail(FormatName, codec.OpEncode, err)
		}
		src := (*C.float)(unsafe.Pointer(&samples[0]))
		if p.Channels == 2 {
			r = C.lame_encode_buffer_interleaved_ieee_float(gfp, src, C.int(frames), dst, size)
		} else {
			r = C.lame_encode_buffer_ieee_float(gfp, src, nil, C.int(frames), dst, size)
		}
	} else {
		samples, err := pcm.Int16s(p.Data)
		if err != nil {
			return 0, codec.Fail(FormatName, codec.OpEncode, err)
		}
		src := (*C.short)(unsafe.Pointer(&samples[0]))
		if p.Channels == 2 {
			r = C.lame_encode_buffer_interleaved(gfp, src, C.int(frames), dst, size)
		} else {
			r = C.lame_encode_buffer(gfp, src, nil, C.int(frames), dst, size)
		}
	}

	if r < 0 {
		return 0, codec.Fail(FormatName, codec.OpEncode, lameError(r))
	}

	return int(r), nil
}

func lameError(code C.int) error {
	switch code {
	case -1:
		return fmt.Errorf("%w: output buffer too small", ErrLame)
	case -2:
		return fmt.Errorf("%w: out of memory", ErrLame)
	case -3:
		return fmt.Errorf("%w: parameters not initialised", ErrLame)
	case -4:
		return fmt.Errorf("%w: psychoacoustic model failure", ErrLame)
	}

	return fmt.Errorf("%w: code %d", ErrLame, code)
}
