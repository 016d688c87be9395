// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package vorbis

import (
	"io"

	"github.com/ik5/modstems/codec"
)

func openLibvorbis(io.Writer, int, int, Options) (blockEncoder, error) {
	return nil, codec.ErrUnavailable
}
