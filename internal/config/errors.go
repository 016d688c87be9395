// SPDX-License-Identifier: EPL-2.0

package config

import "errors"

var (
	// ErrNoInput indicates no input path was configured.
	ErrNoInput = errors.New("input path is required")

	// ErrNoOutput indicates no output directory was configured.
	ErrNoOutput = errors.New("output directory is required")

	// ErrFormat indicates an unknown output format.
	ErrFormat = errors.New("unknown output format")

	// ErrSampleFormat indicates a sample format other than int16 or float.
	ErrSampleFormat = errors.New("sample format must be int16 or float")

	// ErrLogLevel indicates an unknown log level.
	ErrLogLevel = errors.New("unknown log level")
)
