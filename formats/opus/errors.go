// SPDX-License-Identifier: EPL-2.0

package opus

import "errors"

var (
	// ErrBitrate indicates a bitrate outside what libopus accepts.
	ErrBitrate = errors.New("opus bitrate must be within [6000, 510000] bit/s")

	// ErrPacket indicates the encoder produced an unusable packet.
	ErrPacket = errors.New("opus packet rejected")
)
