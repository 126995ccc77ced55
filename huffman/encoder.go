// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

// An Encoder carries the code tree and output buffer across one Encode
// call. The zero value is ready for use; reusing an Encoder across calls
// reuses its allocations.
type Encoder struct {
	tree tree
	bw   bitWriter
}

// Encode compresses src with the adaptive code. It returns the encoded
// stream, the number of padding bits in its final byte, and whether the
// encoding is actually in effect: if the encoded form is not strictly
// smaller than src, buf is instead a verbatim copy of src, pads is zero,
// and used is false.
//
// The returned buffer is owned by the caller; the Encoder may be reused.
func (e *Encoder) Encode(src []byte) (buf []byte, pads uint8, used bool) {
	e.tree.Init()
	e.bw.Reset()

	for _, sym := range src {
		ref := e.tree.Leaf(sym)
		if ref == nilRef {
			// First occurrence: path to NYT, then the raw symbol.
			path := e.tree.PathFromLeaf(e.tree.nyt)
			e.bw.Ensure(len(path) + 8)
			e.bw.WritePath(path)
			ref = e.tree.Insert(sym)
			e.bw.WriteByte(sym)
		} else {
			path := e.tree.PathFromLeaf(ref)
			e.bw.Ensure(len(path))
			e.bw.WritePath(path)
		}
		e.tree.Update(ref)
	}

	if e.bw.BytesWritten() < len(src) {
		buf = append([]byte(nil), e.bw.Bytes()...)
		return buf, e.bw.Pads(), true
	}
	return append([]byte(nil), src...), 0, false
}

// Encode is a convenience wrapper around a throwaway Encoder.
func Encode(src []byte) (buf []byte, pads uint8, used bool) {
	var e Encoder
	return e.Encode(src)
}
