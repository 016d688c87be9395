// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidDstSize = errors.New("dst size must be multiple of channels")
	ErrChannels       = errors.New("channel count must be positive")
	ErrSampleRate     = errors.New("sample rate must be positive")
	ErrUnknownFormat  = errors.New("no decoder registered")
)

// UnknownFormatError reports a path whose extension has no decoder.
type UnknownFormatError struct {
	Path string
	Ext  string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("%s: %q (%s)", ErrUnknownFormat, e.Ext, e.Path)
}

func (e *UnknownFormatError) Unwrap() error {
	return ErrUnknownFormat
}
