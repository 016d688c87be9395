// SPDX-License-Identifier: EPL-2.0

package cli

import (
	"io"
	"path/filepath"
	"sync"

	"github.com/schollz/progressbar/v3"
)

// progressBars shows one bar per module. Updates for a module replace the
// bar of the previous one.
type progressBars struct {
	w    io.Writer
	mtx  sync.Mutex
	file string
	done int
	bar  *progressbar.ProgressBar
}

func newProgressBars(w io.Writer) *progressBars {
	return &progressBars{w: w}
}

func (p *progressBars) update(file string, done, total int) {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.bar == nil || file != p.file {
		if p.bar != nil {
			_ = p.bar.Finish()
		}
		p.file = file
		p.done = 0
		p.bar = progressbar.NewOptions(total,
			progressbar.OptionSetWriter(p.w),
			progressbar.OptionSetDescription(filepath.Base(file)),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
		)
	}

	// Workers finish out of order; never move the bar back.
	if done > p.done {
		p.done = done
		_ = p.bar.Set(done)
	}
}

func (p *progressBars) finish() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.bar != nil {
		_ = p.bar.Finish()
		_, _ = io.WriteString(p.w, "\n")
	}
}
