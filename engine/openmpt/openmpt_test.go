// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package openmpt

import (
	"errors"
	"testing"

	"github.com/ik5/modstems/engine"
)

func TestCheckLayout(t *testing.T) {
	t.Parallel()

	if err := CheckLayout(); err != nil {
		t.Fatalf("CheckLayout() error = %v", err)
	}
}

func TestEngine_ImplementsPort(t *testing.T) {
	t.Parallel()

	var _ engine.Port = (*Engine)(nil)
}

func TestProbe_EmptyModule(t *testing.T) {
	t.Parallel()

	e, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if _, err := e.Probe(nil); !errors.Is(err, ErrEmptyModule) {
		t.Errorf("Probe(nil) error = %v, want ErrEmptyModule", err)
	}
}

func TestProbe_Garbage(t *testing.T) {
	t.Parallel()

	e, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	meta, err := e.Probe([]byte("definitely not a tracker module"))
	if err == nil && meta.Validate() == nil {
		t.Errorf("Probe(garbage) = %+v, want an error or invalid metadata", meta)
	}
}

func TestRender_Garbage(t *testing.T) {
	t.Parallel()

	e, err := New()
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	params := &engine.RenderParams{SampleRate: 48000, BytesPerSample: 2, Channel: engine.All, Instrument: engine.All}
	if _, err := e.Render(make([]byte, 1024), []byte("not a module"), params); !errors.Is(err, engine.ErrRenderFailed) {
		t.Errorf("Render(garbage) error = %v, want ErrRenderFailed", err)
	}
}
