// SPDX-License-Identifier: EPL-2.0

//go:build !cgo

package opus

import "github.com/ik5/modstems/codec"

func newLibopus(int, int, int) (packetEncoder, error) {
	return nil, codec.ErrUnavailable
}
