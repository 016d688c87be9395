// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"
)

// WriteFile encodes pcm into stem+enc.Extension() on fs and returns the
// path written. On any failure the file is removed and an *EncodeError is
// returned.
func WriteFile(fs afero.Fs, stem string, pcm PCM, enc Encoder) (string, error) {
	path := stem + enc.Extension()
	fail := func(op Op, err error) (string, error) {
		var ee *EncodeError
		if errors.As(err, &ee) {
			if ee.Path == "" {
				ee.Path = path
			}
			return "", ee
		}
		return "", &EncodeError{Format: enc.Name(), Op: op, Path: path, Err: err}
	}

	if err := pcm.Validate(); err != nil {
		return fail(OpInit, err)
	}
	if needsFloat(enc) {
		converted, err := pcm.AsFloat32()
		if err != nil {
			return fail(OpInit, err)
		}
		pcm = converted
	}

	f, err := fs.Create(path)
	if err != nil {
		return fail(OpCreate, err)
	}

	encErr := enc.Encode(f, pcm)
	closeErr := f.Close()
	if encErr == nil && closeErr == nil {
		return path, nil
	}

	op, err := OpEncode, encErr
	if err == nil {
		op, err = OpClose, closeErr
	}
	if rmErr := fs.Remove(path); rmErr != nil {
		rmErr = fmt.Errorf("remove partial output: %w", rmErr)
		var ee *EncodeError
		if errors.As(err, &ee) {
			ee.Err = errors.Join(ee.Err, rmErr)
		} else {
			err = errors.Join(err, rmErr)
		}
	}

	return fail(op, err)
}
