// Copyright 2021, Joe Tsai. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE.md file.

package huffman

// A Decoder carries the code tree and bit reader across one Decode call.
// The zero value is ready for use.
type Decoder struct {
	tree tree
	br   bitReader
	buf  []byte
}

// Decode reverses Encode on a stream that was actually Huffman-encoded.
// pads is the padding-bit count recorded when the stream was produced.
//
// The decoder grows the same tree as the encoder did, so decoding walks
// the tree bit by bit and the two stay synchronized without any side
// channel. Decoding stops exactly at the first padding bit; a stream that
// ends anywhere else, or that walks into a missing child, is corrupted.
func (d *Decoder) Decode(buf []byte, pads uint8) (out []byte, err error) {
	defer errRecover(&err)

	d.tree.Init()
	d.br.Init(buf)
	d.buf = d.buf[:0]

	for !d.br.AtTail(pads) {
		ref := d.tree.root
		for !d.tree.isLeaf(ref) {
			if d.br.ReadBit() != 0 {
				ref = d.tree.nodes[ref].right
			} else {
				ref = d.tree.nodes[ref].left
			}
			if ref == nilRef {
				return nil, ErrCorrupt
			}
		}

		if ref == d.tree.nyt {
			sym := d.br.ReadByte()
			d.buf = append(d.buf, sym)
			ref = d.tree.Insert(sym)
		} else {
			d.buf = append(d.buf, d.tree.nodes[ref].sym)
		}
		d.tree.Update(ref)
	}
	return append([]byte(nil), d.buf...), nil
}

// Decode is a convenience wrapper around a throwaway Decoder.
func Decode(buf []byte, pads uint8) ([]byte, error) {
	var d Decoder
	return d.Decode(buf, pads)
}
