// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package opus

import (
	"fmt"

	"gopkg.in/hraban/opus.v2"
)

func newLibopus(sampleRate, channels, bitrate int) (packetEncoder, error) {
	enc, err := opus.NewEncoder(sampleRate, channels, opus.AppAudio)
	if err != nil {
		return nil, fmt.Errorf("create libopus encoder: %w", err)
	}
	if err := enc.SetBitrate(bitrate); err != nil {
		return nil, fmt.Errorf("set bitrate %d: %w", bitrate, err)
	}
	if err := enc.SetComplexity(Complexity); err != nil {
		return nil, fmt.Errorf("set complexity: %w", err)
	}

	return enc, nil
}
