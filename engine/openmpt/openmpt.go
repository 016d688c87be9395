// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package openmpt

/*
#cgo pkg-config: libopenmpt
#include <stdbool.h>
#include <stddef.h>
#include <stdint.h>
#include <string.h>
#include <libopenmpt/libopenmpt.h>
#include <libopenmpt/libopenmpt_ext.h>

struct modstems_song_info {
	uint32_t channel_count;
	uint32_t instrument_count;
	float duration_seconds;
};

// Must stay in sync with engine.RenderParams.
struct modstems_render_params {
	uint32_t sample_rate;
	uint32_t bytes_per_sample;
	int32_t channel_to_play;
	int32_t instrument_to_play;
	float panning;
	bool panning_enabled;
	bool stereo_output;
};

static size_t modstems_param_offset(int field) {
	switch (field) {
	case 0: return offsetof(struct modstems_render_params, sample_rate);
	case 1: return offsetof(struct modstems_render_params, bytes_per_sample);
	case 2: return offsetof(struct modstems_render_params, channel_to_play);
	case 3: return offsetof(struct modstems_render_params, instrument_to_play);
	case 4: return offsetof(struct modstems_render_params, panning);
	case 5: return offsetof(struct modstems_render_params, panning_enabled);
	case 6: return offsetof(struct modstems_render_params, stereo_output);
	}
	return (size_t)-1;
}

static const openmpt_module_initial_ctl modstems_probe_ctls[] = {
	{ "load.skip_samples", "1" },
	{ "load.skip_plugins", "1" },
	{ NULL, NULL },
};

static int modstems_probe(const void *data, size_t len, struct modstems_song_info *info, const char **msg) {
	int error = 0;
	openmpt_module *mod = openmpt_module_create_from_memory2(data, len,
		openmpt_log_func_silent, NULL, openmpt_error_func_ignore, NULL,
		&error, msg, modstems_probe_ctls);
	if (!mod) {
		return -1;
	}
	info->channel_count = (uint32_t)openmpt_module_get_num_channels(mod);
	info->instrument_count = (uint32_t)openmpt_module_get_num_instruments(mod);
	info->duration_seconds = (float)openmpt_module_get_duration_seconds(mod);
	openmpt_module_destroy(mod);
	return 0;
}

#define MODSTEMS_CHUNK_FRAMES 4096

// Returns the number of bytes written, -1 if the module cannot be opened and
// -2 if the interactive extension is missing.
static int64_t modstems_render(uint8_t *out, size_t out_len, const void *data, size_t len,
	const struct modstems_render_params *p, const char **msg) {
	int error = 0;
	openmpt_module_ext *ext = openmpt_module_ext_create_from_memory(data, len,
		openmpt_log_func_silent, NULL, openmpt_error_func_ignore, NULL,
		&error, msg, NULL);
	if (!ext) {
		return -1;
	}
	openmpt_module *mod = openmpt_module_ext_get_module(ext);

	if (p->channel_to_play >= 0 || p->instrument_to_play >= 0) {
		openmpt_module_ext_interface_interactive interactive;
		memset(&interactive, 0, sizeof(interactive));
		if (!openmpt_module_ext_get_interface(ext, LIBOPENMPT_EXT_C_INTERFACE_INTERACTIVE,
				&interactive, sizeof(interactive))) {
			openmpt_module_ext_destroy(ext);
			return -2;
		}
		if (p->channel_to_play >= 0) {
			int32_t n = openmpt_module_get_num_channels(mod);
			for (int32_t c = 0; c < n; c++) {
				interactive.set_channel_mute_status(ext, c, c != p->channel_to_play);
			}
		}
		if (p->instrument_to_play >= 0) {
			int32_t n = openmpt_module_get_num_instruments(mod);
			for (int32_t i = 0; i < n; i++) {
				interactive.set_instrument_mute_status(ext, i, i != p->instrument_to_play);
			}
		}
	}

	if (p->panning_enabled && p->channel_to_play >= 0) {
		openmpt_module_ext_interface_interactive2 interactive2;
		memset(&interactive2, 0, sizeof(interactive2));
		if (openmpt_module_ext_get_interface(ext, LIBOPENMPT_EXT_C_INTERFACE_INTERACTIVE2,
				&interactive2, sizeof(interactive2))) {
			interactive2.set_channel_panning(ext, p->channel_to_play, (double)p->panning);
		}
	}

	size_t frame_bytes = (size_t)p->bytes_per_sample * (p->stereo_output ? 2 : 1);
	size_t frames_left = out_len / frame_bytes;
	size_t written = 0;

	while (frames_left > 0) {
		size_t want = frames_left < MODSTEMS_CHUNK_FRAMES ? frames_left : MODSTEMS_CHUNK_FRAMES;
		uint8_t *dst = out + written;
		size_t got;

		if (p->bytes_per_sample == 4) {
			got = p->stereo_output
				? openmpt_module_read_interleaved_float_stereo(mod, (int32_t)p->sample_rate, want, (float *)dst)
				: openmpt_module_read_float_mono(mod, (int32_t)p->sample_rate, want, (float *)dst);
		} else {
			got = p->stereo_output
				? openmpt_module_read_interleaved_stereo(mod, (int32_t)p->sample_rate, want, (int16_t *)dst)
				: openmpt_module_read_mono(mod, (int32_t)p->sample_rate, want, (int16_t *)dst);
		}
		if (got == 0) {
			break;
		}
		written += got * frame_bytes;
		frames_left -= got;
	}

	openmpt_module_ext_destroy(ext);
	return (int64_t)written;
}
*/
import "C"

import (
	"fmt"
	"unsafe"

	"github.com/ik5/modstems/engine"
)

// Engine renders modules with libopenmpt.
type Engine struct{}

// New checks that engine.RenderParams matches the C struct and returns an
// Engine.
func New() (*Engine, error) {
	if err := CheckLayout(); err != nil {
		return nil, err
	}

	return &Engine{}, nil
}

// CheckLayout compares engine.RenderParams with the C struct it is passed as.
func CheckLayout() error {
	if err := engine.ValidateLayout(); err != nil {
		return err
	}

	var p engine.RenderParams
	if got, want := unsafe.Sizeof(p), uintptr(C.sizeof_struct_modstems_render_params); got != want {
		return fmt.Errorf("%w: Go size %d, C size %d", engine.ErrLayout, got, want)
	}

	offsets := []uintptr{
		unsafe.Offsetof(p.SampleRate),
		unsafe.Offsetof(p.BytesPerSample),
		unsafe.Offsetof(p.Channel),
		unsafe.Offsetof(p.Instrument),
		unsafe.Offsetof(p.Panning),
		unsafe.Offsetof(p.PanningEnabled),
		unsafe.Offsetof(p.StereoOutput),
	}
	for i, got := range offsets {
		if want := uintptr(C.modstems_param_offset(C.int(i))); got != want {
			return fmt.Errorf("%w: field %d at Go offset %d, C offset %d", engine.ErrLayout, i, got, want)
		}
	}

	return nil
}

func (*Engine) Probe(module []byte) (engine.SongMetadata, error) {
	if len(module) == 0 {
		return engine.SongMetadata{}, ErrEmptyModule
	}

	var (
		info C.struct_modstems_song_info
		msg  *C.char
	)
	rc := C.modstems_probe(unsafe.Pointer(&module[0]), C.size_t(len(module)), &info, &msg)
	if rc != 0 {
		return engine.SongMetadata{}, fmt.Errorf("%w: %s", ErrOpen, takeMessage(msg))
	}
	takeMessage(msg)

	return engine.SongMetadata{
		ChannelCount:    uint32(info.channel_count),
		InstrumentCount: uint32(info.instrument_count),
		DurationSeconds: float32(info.duration_seconds),
	}, nil
}

func (*Engine) Render(dst []byte, module []byte, params *engine.RenderParams) (int, error) {
	if len(module) == 0 {
		return 0, ErrEmptyModule
	}
	if len(dst) == 0 {
		return 0, nil
	}

	var msg *C.char
	n := C.modstems_render(
		(*C.uint8_t)(unsafe.Pointer(&dst[0])),
		C.size_t(len(dst)),
		unsafe.Pointer(&module[0]),
		C.size_t(len(module)),
		(*C.struct_modstems_render_params)(unsafe.Pointer(params)),
		&msg,
	)
	detail := takeMessage(msg)

	switch {
	case n == -1:
		return 0, fmt.Errorf("%w: %w: %s", engine.ErrRenderFailed, ErrOpen, detail)
	case n == -2:
		return 0, fmt.Errorf("%w: %w", engine.ErrRenderFailed, ErrNoInteractive)
	case int64(n) > int64(len(dst)):
		return 0, fmt.Errorf("%w: %d > %d", engine.ErrOverrun, int64(n), len(dst))
	}

	return int(n), nil
}

// takeMessage copies and frees a libopenmpt error string.
func takeMessage(msg *C.char) string {
	if msg == nil {
		return "unknown error"
	}
	s := C.GoString(msg)
	C.openmpt_free_string(msg)

	return s
}
