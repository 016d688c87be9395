// SPDX-License-Identifier: EPL-2.0

package mp3

import "errors"

var (
	// ErrBitrate indicates a bitrate MPEG-1/2 Layer III cannot signal.
	ErrBitrate = errors.New("unsupported mp3 bitrate")

	// ErrLame indicates libmp3lame reported a failure.
	ErrLame = errors.New("libmp3lame")
)
