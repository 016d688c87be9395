// SPDX-License-Identifier: EPL-2.0

package modstems

import (
	"errors"
	"fmt"

	"github.com/spf13/afero"

	"github.com/ik5/modstems/audio"
)

// Report describes one decoded stem.
type Report struct {
	Path   string
	Format string
	audio.Stats
}

// Inspect decodes the file at path with the decoder its extension selects
// and measures it.
func Inspect(fs afero.Fs, decoders *audio.Registry, path string) (Report, error) {
	rep := Report{Path: path}

	format, dec, err := decoders.ForPath(path)
	if err != nil {
		return rep, err
	}
	rep.Format = format

	f, err := fs.Open(path)
	if err != nil {
		return rep, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	src, err := dec.Decode(f)
	if err != nil {
		return rep, fmt.Errorf("decode %s as %s: %w", path, format, err)
	}

	rep.Stats, err = audio.Measure(src)
	if cerr := src.Close(); cerr != nil {
		err = errors.Join(err, cerr)
	}
	if err != nil {
		return rep, fmt.Errorf("read %s: %w", path, err)
	}

	return rep, nil
}
