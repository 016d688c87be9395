// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyPCM indicates there are no samples to encode.
	ErrEmptyPCM = errors.New("pcm buffer is empty")

	// ErrSampleRate indicates a sample rate the encoder cannot take.
	ErrSampleRate = errors.New("unsupported sample rate")

	// ErrChannels indicates a channel count the encoder cannot take.
	ErrChannels = errors.New("unsupported channel count")

	// ErrUnknownFormat indicates no encoder is registered under a key.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrUnavailable indicates the encoder backend is not compiled in.
	ErrUnavailable = errors.New("encoder not available in this build")
)

// Op names the encoder step that failed.
type Op string

const (
	OpCreate   Op = "create"
	OpInit     Op = "init"
	OpEncode   Op = "encode"
	OpFinalize Op = "finalize"
	OpVerify   Op = "verify"
	OpWrite    Op = "write"
	OpClose    Op = "close"
)

// EncodeError describes a failed encode of one stem.
type EncodeError struct {
	Format string
	Op     Op
	Path   string
	// Detail is the encoder's own diagnostic, when it has one.
	Detail string
	Err    error
}

func (e *EncodeError) Error() string {
	msg := fmt.Sprintf("%s %s", e.Format, e.Op)
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}

	return msg
}

func (e *EncodeError) Unwrap() error {
	return e.Err
}

// Fail builds an EncodeError without a path; WriteFile fills it in.
func Fail(format string, op Op, err error) *EncodeError {
	return &EncodeError{Format: format, Op: op, Err: err}
}
