// SPDX-License-Identifier: EPL-2.0

// Package opus encodes rendered stems as Ogg Opus.
//
// Packets come from libopus through gopkg.in/hraban/opus.v2 (cgo) at a
// fixed bitrate and complexity 10. Pages are written by the Ogg writer of
// github.com/pion/webrtc/v4, which takes its packets as RTP packets; each
// one carries a timestamp 960 ticks (20 ms at 48 kHz) after the previous.
//
// Renders at 8, 12, 16, 24 or 48 kHz are encoded directly. Other rates,
// 44.1 kHz among them, are first resampled to 48 kHz with audio.Resampler.
// The stem is cut into 20 ms frames and the last one is padded with
// silence.
//
//	enc := opus.NewEncoder(opus.DefaultBitrate)
//	path, err := codec.WriteFile(fs, "out/song", pcm, enc)
//
// Builds without cgo report codec.ErrUnavailable.
package opus
