// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package flac

import (
	"io"

	"github.com/ik5/modstems/codec"
)

func encodeLibflac(io.WriteSeeker, stream) error {
	return codec.Fail(FormatName, codec.OpInit, codec.ErrUnavailable)
}
