// SPDX-License-Identifier: EPL-2.0

package vorbis

// Span is a half-open frame range [Start, End).
type Span struct {
	Start, End int
}

// Len is the number of frames in s.
func (s Span) Len() int { return s.End - s.Start }

// Blocks splits total frames into consecutive spans of size frames. The
// last span holds the remainder and is never padded.
func Blocks(total, size int) []Span {
	if total <= 0 || size <= 0 {
		return nil
	}

	out := make([]Span, 0, (total+size-1)/size)
	for start := 0; start < total; start += size {
		out = append(out, Span{Start: start, End: min(start+size, total)})
	}

	return out
}
