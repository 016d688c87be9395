// SPDX-License-Identifier: EPL-2.0

// Package render drives the engine over the stems of each module and hands
// the results to an encoder.
//
// For every task the renderer allocates a zeroed buffer sized for the
// reported duration plus a safety margin, asks the engine to fill it, and
// writes the stem unless every byte is still zero. A render that reports
// more bytes than the buffer holds fails with engine.ErrOverrun.
//
// Files are processed one after another; the tasks of one file run on a
// bounded pool (github.com/sourcegraph/conc). A failing task is logged and
// counted without stopping its siblings.
//
//	r, err := render.New(port, afero.NewOsFs(), wav.NewEncoder(), opts)
//	sum, err := r.Run(ctx, paths, "out")
package render
