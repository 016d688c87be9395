// SPDX-License-Identifier: EPL-2.0

package openmpt

import "errors"

var (
	// ErrEmptyModule indicates no module bytes were supplied.
	ErrEmptyModule = errors.New("module data is empty")

	// ErrOpen indicates libopenmpt could not load the module.
	ErrOpen = errors.New("libopenmpt could not open module")

	// ErrNoInteractive indicates the interactive extension is missing, so
	// channels and instruments cannot be isolated.
	ErrNoInteractive = errors.New("libopenmpt interactive extension unavailable")
)
