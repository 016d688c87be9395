// SPDX-License-Identifier: EPL-2.0

//go:build cgo

package flac

/*
#include <stddef.h>
#include <stdint.h>
*/
import "C"

import (
	"io"
	"runtime/cgo"
	"unsafe"
)

//export mstFlacWrite
func mstFlacWrite(h C.uintptr_t, buf unsafe.Pointer, n C.size_t) C.int {
	sk := cgo.Handle(h).Value().(*sink)
	if _, err := sk.w.Write(unsafe.Slice((*byte)(buf), int(n))); err != nil {
		sk.err = err
		return 1
	}
	return 0
}

//export mstFlacSeek
func mstFlacSeek(h C.uintptr_t, off C.uint64_t) C.int {
	sk := cgo.Handle(h).Value().(*sink)
	if _, err := sk.w.Seek(sk.base+int64(off), io.SeekStart); err != nil {
		sk.err = err
		return 1
	}
	return 0
}

//export mstFlacTell
func mstFlacTell(h C.uintptr_t, off *C.uint64_t) C.int {
	sk := cgo.Handle(h).Value().(*sink)
	pos, err := sk.w.Seek(0, io.SeekCurrent)
	if err != nil {
		sk.err = err
		return 1
	}
	*off = C.uint64_t(pos - sk.base)
	return 0
}
