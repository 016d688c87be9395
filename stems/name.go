// SPDX-License-Identifier: EPL-2.0

package stems

import "fmt"

// Name returns the output file name of a task without extension.
//
//	full mix               <stem>
//	instrument i           <stem>_<i+1:04>_chan_full
//	channel c, instrument  <stem>_<i+1:04>_chan_<c:04>
//
// Instruments are numbered from one and channels from zero, matching the
// files downstream tools already consume.
func Name(stem string, t Task) string {
	switch {
	case t.Channel.IsAll() && t.Instrument.IsAll():
		return stem
	case t.Channel.IsAll():
		return fmt.Sprintf("%s_%04d_chan_full", stem, t.Instrument.Index()+1)
	case t.Instrument.IsAll():
		return fmt.Sprintf("%s_full_chan_%04d", stem, t.Channel.Index())
	}

	return fmt.Sprintf("%s_%04d_chan_%04d", stem, t.Instrument.Index()+1, t.Channel.Index())
}
