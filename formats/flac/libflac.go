// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package flac

/*
#cgo pkg-config: flac
#include <stdint.h>
#include <stdlib.h>
#include <FLAC/format.h>
#include <FLAC/stream_encoder.h>

extern int mstFlacWrite(uintptr_t h, void *buf, size_t n);
extern int mstFlacSeek(uintptr_t h, uint64_t off);
extern int mstFlacTell(uintptr_t h, uint64_t *off);

static FLAC__StreamEncoderWriteStatus mst_flac_write(const FLAC__StreamEncoder *e, const FLAC__byte buffer[], size_t bytes, uint32_t samples, uint32_t frame, void *client) {
	if (mstFlacWrite((uintptr_t)client, (void *)buffer, bytes) != 0) {
		return FLAC__STREAM_ENCODER_WRITE_STATUS_FATAL_ERROR;
	}
	return FLAC__STREAM_ENCODER_WRITE_STATUS_OK;
}

static FLAC__StreamEncoderSeekStatus mst_flac_seek(const FLAC__StreamEncoder *e, FLAC__uint64 off, void *client) {
	if (mstFlacSeek((uintptr_t)client, off) != 0) {
		return FLAC__STREAM_ENCODER_SEEK_STATUS_ERROR;
	}
	return FLAC__STREAM_ENCODER_SEEK_STATUS_OK;
}

static FLAC__StreamEncoderTellStatus mst_flac_tell(const FLAC__StreamEncoder *e, FLAC__uint64 *off, void *client) {
	if (mstFlacTell((uintptr_t)client, off) != 0) {
		return FLAC__STREAM_ENCODER_TELL_STATUS_ERROR;
	}
	return FLAC__STREAM_ENCODER_TELL_STATUS_OK;
}

static FLAC__bool mst_flac_configure(FLAC__StreamEncoder *e, unsigned level, unsigned channels, unsigned bps, unsigned rate) {
	return FLAC__stream_encoder_set_verify(e, 1) &&
		FLAC__stream_encoder_set_compression_level(e, level) &&
		FLAC__stream_encoder_set_streamable_subset(e, FLAC__format_sample_rate_is_subset(rate)) &&
		FLAC__stream_encoder_set_channels(e, channels) &&
		FLAC__stream_encoder_set_bits_per_sample(e, bps) &&
		FLAC__stream_encoder_set_sample_rate(e, rate) &&
		FLAC__stream_encoder_set_total_samples_estimate(e, 0);
}

static FLAC__StreamEncoderInitStatus mst_flac_init(FLAC__StreamEncoder *e, uintptr_t h) {
	return FLAC__stream_encoder_init_stream(e, mst_flac_write, mst_flac_seek, mst_flac_tell, NULL, (void *)h);
}

static const char *mst_flac_init_status(FLAC__StreamEncoderInitStatus s) {
	return FLAC__StreamEncoderInitStatusString[s];
}

static FLAC__bool mst_flac_process(FLAC__StreamEncoder *e, const int32_t *buf, unsigned frames) {
	return FLAC__stream_encoder_process_interleaved(e, buf, frames);
}

typedef struct {
	FLAC__uint64 absolute_sample;
	uint32_t frame;
	uint32_t channel;
	uint32_t sample;
	FLAC__int32 expected;
	FLAC__int32 got;
} mst_flac_mismatch;

static mst_flac_mismatch mst_flac_verify_stats(const FLAC__StreamEncoder *e) {
	mst_flac_mismatch m;
	FLAC__stream_encoder_get_verify_decoder_error_stats(e, &m.absolute_sample, &m.frame, &m.channel, &m.sample, &m.expected, &m.got);
	return m;
}
*/
import "C"

import (
	"fmt"
	"io"
	"runtime/cgo"
	"unsafe"

	"github.com/ik5/modstems/codec"
)

// sink is the client side of libFLAC's write, seek and tell callbacks.
// Offsets are relative to where the writer stood when encoding began.
type sink struct {
	w    io.WriteSeeker
	base int64
	err  error
}

// encodeLibflac hands the interleaved samples to libFLAC in one call and
// finishes the stream. libFLAC seeks back through w to complete
// STREAMINFO.
func encodeLibflac(w io.WriteSeeker, s stream) error {
	base, err := w.Seek(0, io.SeekCurrent)
	if err != nil {
		return codec.Fail(FormatName, codec.OpInit, err)
	}

	enc := C.FLAC__stream_encoder_new()
	if enc == nil {
		return codec.Fail(FormatName, codec.OpInit, fmt.Errorf("%w: encoder allocation failed", ErrLibFLAC))
	}
	defer C.FLAC__stream_encoder_delete(enc)

	if C.mst_flac_configure(enc, CompressionLevel, C.uint(s.channels), C.uint(s.bitsPerSample), C.uint(s.sampleRate)) == 0 {
		return &codec.EncodeError{
			Format: FormatName,
			Op:     codec.OpInit,
			Detail: fmt.Sprintf("%d Hz, %d channels, %d bits", s.sampleRate, s.channels, s.bitsPerSample),
			Err:    ErrLibFLAC,
		}
	}

	sk := &sink{w: w, base: base}
	h := cgo.NewHandle(sk)
	defer h.Delete()

	if st := C.mst_flac_init(enc, C.uintptr_t(h)); st != C.FLAC__STREAM_ENCODER_INIT_STATUS_OK {
		err := error(ErrLibFLAC)
		if sk.err != nil {
			err = sk.err
		}
		return &codec.EncodeError{
			Format: FormatName,
			Op:     codec.OpInit,
			Detail: C.GoString(C.mst_flac_init_status(st)),
			Err:    err,
		}
	}

	samples := (*C.int32_t)(unsafe.Pointer(&s.samples[0]))
	if C.mst_flac_process(enc, samples, C.uint(s.frames)) == 0 {
		err := stateError(enc, codec.OpEncode, sk)
		// The stream is finished even after a failed call.
		C.FLAC__stream_encoder_finish(enc)
		return err
	}

	if C.FLAC__stream_encoder_finish(enc) == 0 {
		return stateError(enc, codec.OpFinalize, sk)
	}

	return nil
}

// stateError reports libFLAC's resolved state. A verifier mismatch names
// the first differing sample.
func stateError(enc *C.FLAC__StreamEncoder, op codec.Op, sk *sink) error {
	detail := C.GoString(C.FLAC__stream_encoder_get_resolved_state_string(enc))
	err := error(ErrLibFLAC)

	switch {
	case sk.err != nil:
		err = sk.err
	case C.FLAC__stream_encoder_get_state(enc) == C.FLAC__STREAM_ENCODER_VERIFY_MISMATCH_IN_AUDIO_DATA:
		m := C.mst_flac_verify_stats(enc)
		detail += fmt.Sprintf(": sample %d channel %d decoded %d, encoded %d",
			uint64(m.absolute_sample), uint32(m.channel), int32(m.got), int32(m.expected))
		op, err = codec.OpVerify, ErrVerify
	}

	return &codec.EncodeError{Format: FormatName, Op: op, Detail: detail, Err: err}
}
