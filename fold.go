package foldsum

import (
	"encoding/binary"
	"fmt"
)

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file implements the reduction engine: a byte-wise XOR fold of one 4096-byte block into a
// 64- or 128-byte buffer. Every strategy below computes the identical buffer; they differ only in
// accumulator width, accumulator count, and traversal order, and exist to feed different cache and
// port behaviors. TestFoldStrategiesAgree holds them to that.

// A FoldStrategy selects one arrangement of the reduction loop. The zero value defers to a
// per-architecture default chosen at startup.
type FoldStrategy uint8

const (
	FoldAuto    FoldStrategy = iota
	FoldCompact              /* byte-wide accumulator, forward walk; the reference form */
	FoldWide                 /* 64-bit lanes, one bank */
	FoldQuad                 /* 64-bit lanes, 4 banks fed by interleaved chunks */
	FoldOcta                 /* 64-bit lanes, 8 round-robin banks */
	FoldReverse              /* 64-bit lanes, one bank, last chunk first */
	FoldStride               /* 64-bit lanes, 2 banks walking the block halves in lockstep */
)

// foldInto reduces block into dst, len(dst) being the span. Strategies overwrite dst completely,
// so dst may hold stale bytes from a prior pass.
func (c Config) foldInto(dst, block []byte) {
	f := c.Fold
	if f == FoldAuto {
		f = autoFold
	}
	switch f {
	case FoldCompact:
		foldCompact(dst, block)
	case FoldWide:
		foldWide(dst, block)
	case FoldQuad:
		foldQuad(dst, block)
	case FoldOcta:
		foldOcta(dst, block)
	case FoldReverse:
		foldReverse(dst, block)
	case FoldStride:
		foldStride(dst, block)
	default:
		panic(fmt.Errorf("foldsum: fold strategy %d unknown", c.Fold))
	}
}

func foldCompact(dst, block []byte) {
	span := len(dst)
	copy(dst, block[:span])
	for off := span; off < BlockSize; off += span {
		for i, v := range block[off : off+span] {
			dst[i] ^= v
		}
	}
}

/* The lane count is span/8, at most 16; banks are sized for the worst case and the tail lanes of
a 64-byte span simply stay zero. XOR of little-endian lanes is XOR of their bytes, so the lane view
never leaks into the result. */

func foldWide(dst, block []byte) {
	span, lanes := len(dst), len(dst)>>3
	var acc [16]uint64
	for off := 0; off < BlockSize; off += span {
		chunk := block[off : off+span]
		for i := 0; i < lanes; i++ {
			acc[i] ^= binary.LittleEndian.Uint64(chunk[i<<3:])
		}
	}
	for i := 0; i < lanes; i++ {
		binary.LittleEndian.PutUint64(dst[i<<3:], acc[i])
	}
}

func foldQuad(dst, block []byte) {
	span, lanes := len(dst), len(dst)>>3
	var a0, a1, a2, a3 [16]uint64
	for off := 0; off < BlockSize; off += span << 2 {
		c0 := block[off : off+span]
		c1 := block[off+span : off+span*2]
		c2 := block[off+span*2 : off+span*3]
		c3 := block[off+span*3 : off+span*4]
		for i := 0; i < lanes; i++ {
			a0[i] ^= binary.LittleEndian.Uint64(c0[i<<3:])
			a1[i] ^= binary.LittleEndian.Uint64(c1[i<<3:])
			a2[i] ^= binary.LittleEndian.Uint64(c2[i<<3:])
			a3[i] ^= binary.LittleEndian.Uint64(c3[i<<3:])
		}
	}
	for i := 0; i < lanes; i++ {
		binary.LittleEndian.PutUint64(dst[i<<3:], a0[i]^a1[i]^a2[i]^a3[i])
	}
}

func foldOcta(dst, block []byte) {
	span, lanes := len(dst), len(dst)>>3
	var banks [8][16]uint64
	for off, g := 0, 0; off < BlockSize; off, g = off+span, g+1 {
		bank := &banks[g&7]
		chunk := block[off : off+span]
		for i := 0; i < lanes; i++ {
			bank[i] ^= binary.LittleEndian.Uint64(chunk[i<<3:])
		}
	}
	for i := 0; i < lanes; i++ {
		acc := banks[0][i]
		for b := 7; b > 0; b-- {
			acc ^= banks[b][i]
		}
		binary.LittleEndian.PutUint64(dst[i<<3:], acc)
	}
}

func foldReverse(dst, block []byte) {
	span, lanes := len(dst), len(dst)>>3
	var acc [16]uint64
	for off := BlockSize - span; off >= 0; off -= span {
		chunk := block[off : off+span]
		for i := 0; i < lanes; i++ {
			acc[i] ^= binary.LittleEndian.Uint64(chunk[i<<3:])
		}
	}
	for i := 0; i < lanes; i++ {
		binary.LittleEndian.PutUint64(dst[i<<3:], acc[i])
	}
}

func foldStride(dst, block []byte) {
	const half = BlockSize / 2
	span, lanes := len(dst), len(dst)>>3
	var a0, a1 [16]uint64
	for off := 0; off < half; off += span {
		front := block[off : off+span]
		back := block[half+off : half+off+span]
		for i := 0; i < lanes; i++ {
			a0[i] ^= binary.LittleEndian.Uint64(front[i<<3:])
			a1[i] ^= binary.LittleEndian.Uint64(back[i<<3:])
		}
	}
	for i := 0; i < lanes; i++ {
		binary.LittleEndian.PutUint64(dst[i<<3:], a0[i]^a1[i])
	}
}
