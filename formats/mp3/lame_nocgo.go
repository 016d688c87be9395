// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package mp3

import "github.com/ik5/modstems/codec"

func encodeLame(codec.PCM, int) ([]byte, error) {
	return nil, codec.Fail(FormatName, codec.OpInit, codec.ErrUnavailable)
}
