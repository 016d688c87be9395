// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package openmpt

import "github.com/ik5/modstems/engine"

// Engine is unavailable without cgo.
type Engine struct{}

// New always fails when built without cgo.
func New() (*Engine, error) {
	return nil, engine.ErrUnavailable
}

// CheckLayout only validates the Go side when built without cgo.
func CheckLayout() error {
	return engine.ValidateLayout()
}

func (*Engine) Probe([]byte) (engine.SongMetadata, error) {
	return engine.SongMetadata{}, engine.ErrUnavailable
}

func (*Engine) Render([]byte, []byte, *engine.RenderParams) (int, error) {
	return 0, engine.ErrUnavailable
}
