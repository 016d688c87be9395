// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package vorbis

/*
#cgo pkg-config: vorbisenc vorbis ogg
#include <stdlib.h>
#include <string.h>
#include <vorbis/vorbisenc.h>

typedef struct {
	vorbis_info vi;
	vorbis_comment vc;
	vorbis_dsp_state vd;
	vorbis_block vb;
	ogg_stream_state os;
	unsigned char *out;
	long out_len;
	long out_cap;
} mst_vorbis;

static int mst_append(mst_vorbis *h, const unsigned char *p, long n) {
	if (h->out_len + n > h->out_cap) {
		long c = h->out_cap ? h->out_cap : 65536;
		while (c < h->out_len + n) {
			c *= 2;
		}
		unsigned char *o = realloc(h->out, c);
		if (o == NULL) {
			return OV_EFAULT;
		}
		h->out = o;
		h->out_cap = c;
	}
	memcpy(h->out + h->out_len, p, n);
	h->out_len += n;
	return 0;
}

// mst_pages moves finished pages into the output buffer. force also emits
// a partial page.
static int mst_pages(mst_vorbis *h, int force) {
	ogg_page og;
	for (;;) {
		int r = force ? ogg_stream_flush(&h->os, &og) : ogg_stream_pageout(&h->os, &og);
		if (r == 0) {
			return 0;
		}
		if (mst_append(h, og.header, og.header_len) || mst_append(h, og.body, og.body_len)) {
			return OV_EFAULT;
		}
	}
}

static int mst_setup(vorbis_info *vi, int strategy, long rate, int ch, long bitrate, long maxrate, float quality) {
	int r;
	switch (strategy) {
	case 0:
		r = vorbis_encode_setup_managed(vi, ch, rate, -1, bitrate, -1);
		if (r == 0) {
			r = vorbis_encode_ctl(vi, OV_ECTL_RATEMANAGE2_SET, NULL);
		}
		if (r == 0) {
			r = vorbis_encode_setup_init(vi);
		}
		return r;
	case 1:
		return vorbis_encode_init_vbr(vi, ch, rate, quality);
	case 2:
		return vorbis_encode_init(vi, ch, rate, -1, bitrate, -1);
	case 3:
		return vorbis_encode_init(vi, ch, rate, maxrate, -1, -1);
	}
	return OV_EINVAL;
}

static int mst_vorbis_open(mst_vorbis **out, int strategy, long rate, int ch, long bitrate, long maxrate, float quality, int serial) {
	mst_vorbis *h = calloc(1, sizeof *h);
	if (h == NULL) {
		return OV_EFAULT;
	}

	vorbis_info_init(&h->vi);
	int r = mst_setup(&h->vi, strategy, rate, ch, bitrate, maxrate, quality);
	if (r != 0) {
		vorbis_info_clear(&h->vi);
		free(h);
		return r;
	}

	vorbis_comment_init(&h->vc);
	vorbis_comment_add_tag(&h->vc, "ENCODER", "modstems");
	vorbis_analysis_init(&h->vd, &h->vi);
	vorbis_block_init(&h->vd, &h->vb);
	ogg_stream_init(&h->os, serial);

	ogg_packet id, comment, codebooks;
	vorbis_analysis_headerout(&h->vd, &h->vc, &id, &comment, &codebooks);
	ogg_stream_packetin(&h->os, &id);
	ogg_stream_packetin(&h->os, &comment);
	ogg_stream_packetin(&h->os, &codebooks);

	*out = h;
	// Audio starts on a fresh page.
	return mst_pages(h, 1);
}

static float **mst_vorbis_buffer(mst_vorbis *h, int frames) {
	return vorbis_analysis_buffer(&h->vd, frames);
}

// mst_vorbis_wrote commits frames (0 ends the stream) and runs analysis
// over every block that became available.
static int mst_vorbis_wrote(mst_vorbis *h, int frames) {
	int r = vorbis_analysis_wrote(&h->vd, frames);
	if (r != 0) {
		return r;
	}

	while ((r = vorbis_analysis_blockout(&h->vd, &h->vb)) == 1) {
		if ((r = vorbis_analysis(&h->vb, NULL)) != 0) {
			return r;
		}
		if ((r = vorbis_bitrate_addblock(&h->vb)) != 0) {
			return r;
		}

		ogg_packet op;
		while ((r = vorbis_bitrate_flushpacket(&h->vd, &op)) == 1) {
			ogg_stream_packetin(&h->os, &op);
			if ((r = mst_pages(h, 0)) != 0) {
				return r;
			}
		}
		if (r < 0) {
			return r;
		}
	}

	return r < 0 ? r : 0;
}

static int mst_vorbis_finish(mst_vorbis *h) {
	int r = mst_vorbis_wrote(h, 0);
	if (r != 0) {
		return r;
	}
	return mst_pages(h, 1);
}

static void mst_vorbis_free(mst_vorbis *h) {
	if (h == NULL) {
		return;
	}
	ogg_stream_clear(&h->os);
	vorbis_block_clear(&h->vb);
	vorbis_dsp_clear(&h->vd);
	vorbis_comment_clear(&h->vc);
	vorbis_info_clear(&h->vi);
	free(h->out);
	free(h);
}
*/
import "C"

import (
	"fmt"
	"io"
	"math/rand/v2"
	"unsafe"
)

var strategyCodes = map[Strategy]C.int{
	VBR:            0,
	Quality:        1,
	ABR:            2,
	ConstrainedABR: 3,
}

// libvorbis is a blockEncoder backed by libvorbisenc. Encoded pages are
// collected on the C side and copied to w after every call.
type libvorbis struct {
	h        *C.mst_vorbis
	w        io.Writer
	channels int
}

func openLibvorbis(w io.Writer, sampleRate, channels int, opts Options) (blockEncoder, error) {
	code, ok := strategyCodes[opts.Strategy]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrStrategy, opts.Strategy)
	}

	var h *C.mst_vorbis
	r := C.mst_vorbis_open(&h, code, C.long(sampleRate), C.int(channels),
		C.long(opts.Bitrate), C.long(opts.MaxBitrate), C.float(opts.Quality), C.int(rand.Int32()))
	if h == nil {
		return nil, fmt.Errorf("libvorbisenc setup: %w", ovError(r))
	}

	e := &libvorbis{h: h, w: w, channels: channels}
	if r != 0 {
		C.mst_vorbis_free(h)
		return nil, fmt.Errorf("write headers: %w", ovError(r))
	}
	if err := e.drain(); err != nil {
		C.mst_vorbis_free(h)
		return nil, err
	}

	return e, nil
}

func (e *libvorbis) Encode(planar [][]float32) error {
	if e.h == nil {
		return ErrState
	}
	if len(planar) != e.channels {
		return fmt.Errorf("%w: %d channels for a %d channel stream", ErrState, len(planar), e.channels)
	}

	n := len(planar[0])
	bufs := unsafe.Slice(C.mst_vorbis_buffer(e.h, C.int(n)), e.channels)
	for c, samples := range planar {
		copy(unsafe.Slice((*float32)(unsafe.Pointer(bufs[c])), n), samples)
	}

	if r := C.mst_vorbis_wrote(e.h, C.int(n)); r != 0 {
		return ovError(r)
	}

	return e.drain()
}

func (e *libvorbis) Finalize() error {
	if e.h == nil {
		return ErrState
	}
	defer func() {
		C.mst_vorbis_free(e.h)
		e.h = nil
	}()

	if r := C.mst_vorbis_finish(e.h); r != 0 {
		return ovError(r)
	}

	return e.drain()
}

func (e *libvorbis) drain() error {
	if e.h.out_len == 0 {
		return nil
	}

	data := C.GoBytes(unsafe.Pointer(e.h.out), C.int(e.h.out_len))
	e.h.out_len = 0
	if _, err := e.w.Write(data); err != nil {
		return fmt.Errorf("write pages: %w", err)
	}

	return nil
}

func ovError(code C.int) error {
	switch code {
	case C.OV_EFAULT:
		return fmt.Errorf("%w: internal fault (%d)", errLibvorbis, code)
	case C.OV_EINVAL:
		return fmt.Errorf("%w: invalid setup request (%d)", errLibvorbis, code)
	case C.OV_EIMPL:
		return fmt.Errorf("%w: unimplemented mode (%d)", errLibvorbis, code)
	}

	return fmt.Errorf("%w: code %d", errLibvorbis, code)
}
