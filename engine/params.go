// SPDX-License-Identifier: EPL-2.0

package engine

import (
	"fmt"
	"strconv"
	"unsafe"
)

// Selector picks every channel (or instrument) or exactly one of them.
type Selector int32

// All selects every channel or instrument.
const All Selector = -1

// One selects the channel or instrument at index i.
func One(i int) Selector { return Selector(i) }

// IsAll reports whether s selects everything.
func (s Selector) IsAll() bool { return s < 0 }

// Index returns the selected index; it is meaningless when IsAll is true.
func (s Selector) Index() int { return int(s) }

func (s Selector) String() string {
	if s.IsAll() {
		return "all"
	}
	return strconv.Itoa(int(s))
}

// RenderParams is the record handed to the engine for one render call.
// Field order, widths and padding mirror the engine's C struct; see the
// package documentation.
type RenderParams struct {
	SampleRate     uint32
	BytesPerSample uint32
	Channel        Selector
	Instrument     Selector
	// Panning is honoured only when Channel selects a single channel.
	Panning        float32
	PanningEnabled bool
	StereoOutput   bool
	_              [2]byte
}

// RenderParamsSize is the size in bytes of the engine's parameter struct.
const RenderParamsSize = 24

type fieldLayout struct {
	name   string
	offset uintptr
	size   uintptr
}

// expectedLayout is the engine-side struct layout.
var expectedLayout = []fieldLayout{
	{"SampleRate", 0, 4},
	{"BytesPerSample", 4, 4},
	{"Channel", 8, 4},
	{"Instrument", 12, 4},
	{"Panning", 16, 4},
	{"PanningEnabled", 20, 1},
	{"StereoOutput", 21, 1},
}

// ValidateLayout checks that RenderParams matches the engine's struct layout.
func ValidateLayout() error {
	var p RenderParams

	if got := unsafe.Sizeof(p); got != RenderParamsSize {
		return fmt.Errorf("%w: size %d, want %d", ErrLayout, got, RenderParamsSize)
	}
	if got := unsafe.Alignof(p); got != 4 {
		return fmt.Errorf("%w: alignment %d, want 4", ErrLayout, got)
	}

	actual := []fieldLayout{
		{"SampleRate", unsafe.Offsetof(p.SampleRate), unsafe.Sizeof(p.SampleRate)},
		{"BytesPerSample", unsafe.Offsetof(p.BytesPerSample), unsafe.Sizeof(p.BytesPerSample)},
		{"Channel", unsafe.Offsetof(p.Channel), unsafe.Sizeof(p.Channel)},
		{"Instrument", unsafe.Offsetof(p.Instrument), unsafe.Sizeof(p.Instrument)},
		{"Panning", unsafe.Offsetof(p.Panning), unsafe.Sizeof(p.Panning)},
		{"PanningEnabled", unsafe.Offsetof(p.PanningEnabled), unsafe.Sizeof(p.PanningEnabled)},
		{"StereoOutput", unsafe.Offsetof(p.StereoOutput), unsafe.Sizeof(p.StereoOutput)},
	}

	for i, want := range expectedLayout {
		got := actual[i]
		if got.offset != want.offset || got.size != want.size {
			return fmt.Errorf("%w: field %s at offset %d size %d, want offset %d size %d",
				ErrLayout, want.name, got.offset, got.size, want.offset, want.size)
		}
	}

	return nil
}
