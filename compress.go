package foldsum

import (
	"encoding/binary"
	. "math/bits"
)

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file implements the compression core and the digest finalizer: an SM3-style permutation of
// an 8-word state by one 64-byte chunk under a Davies–Meyer feed-forward, and the chained driver
// that turns a folded buffer into digest bytes. FoldSum's developer thanks The Go Authors and the
// designers of any third-party software utilized in this project.

/* The state initializer is the published SM3 IV; the round schedule diverges from the standard
after index 15 and is fixed for the life of the format. Neither table is ever mutated. */
var iv = [8]uint32{
	0x7380166f, 0x4914b2b9, 0x172442d7, 0xda8a0600,
	0xa96f30bc, 0x163138aa, 0xe38dee4d, 0xb0fb0e4e,
}

var tj = [64]uint32{
	0x79cc4519, 0xf3988a32, 0xe7311465, 0xce6228cb,
	0x9cc45197, 0x3988a32f, 0x7311465e, 0xe6228cbc,
	0xcc451979, 0x988a32f3, 0x311465e7, 0x6228cbce,
	0xc451979c, 0x88a32f39, 0x11465e73, 0x228cbce6,
	0xfc6325e8, 0x8c3111f1, 0xd89e0ea0, 0x324e8fba,
	0x7a6d76e9, 0xe39049a7, 0x3064997a, 0xc0ac29b7,
	0x6c9e0e8b, 0xbcc77454, 0x54b8fb07, 0x389708c4,
	0x76f988da, 0x4eeaff9f, 0xf2d7da3e, 0xcaa7c8a2,
	0x854cc7f8, 0xd73c9cff, 0x6fa87e4f, 0x68581511,
	0xb469951f, 0x49be4e42, 0xf61e2562, 0xc049b344,
	0xeaa127fa, 0xd4ef3085, 0x0f163c50, 0xd9a57a7a,
	0x44f77958, 0x39f1690f, 0x823ed616, 0x38eb44a8,
	0xf8f7c099, 0x6247eaae, 0xa4db0d69, 0xc0c92493,
	0xbcd02b18, 0x5c95bf94, 0xec3877e3, 0x533a81c6,
	0x516b9b9c, 0x60a884a1, 0x4587f9fb, 0x4ee4b248,
	0xf6cb677e, 0x8d2a4c8a, 0x3c071363, 0x4c9c1032,
}

func p0(x uint32) uint32 { return x ^ RotateLeft32(x, 9) ^ RotateLeft32(x, 17) }

func p1(x uint32) uint32 { return x ^ RotateLeft32(x, 15) ^ RotateLeft32(x, 23) }

// compress folds one 64-byte chunk into st. It is the correctness anchor for everything else in
// this package: batch and parallel paths may reorder memory, never arithmetic.
func compress(st *[8]uint32, chunk []byte) {
	_ = chunk[chunkSize-1]

	var w [68]uint32
	for i := range w[:16] {
		w[i] = binary.BigEndian.Uint32(chunk[i<<2:])
	}
	for j := 16; j < 68; j++ {
		w[j] = p1(w[j-16]^w[j-9]^RotateLeft32(w[j-3], 15)) ^ RotateLeft32(w[j-13], 7) ^ w[j-6]
	}

	a, b, c, d := st[0], st[1], st[2], st[3]
	e, f, g, h := st[4], st[5], st[6], st[7]
	for j := 0; j < 16; j++ {
		x := RotateLeft32(a, 12)
		ss1 := RotateLeft32(x+e+RotateLeft32(tj[j], j&31), 7)
		ss2 := ss1 ^ x
		tt1 := (a ^ b ^ c) + d + ss2 + (w[j] ^ w[j+4])
		tt2 := (e ^ f ^ g) + h + ss1 + w[j]
		d, c, b, a = c, RotateLeft32(b, 9), a, tt1
		h, g, f, e = g, RotateLeft32(f, 19), e, p0(tt2)
	}
	for j := 16; j < 64; j++ {
		x := RotateLeft32(a, 12)
		ss1 := RotateLeft32(x+e+RotateLeft32(tj[j], j&31), 7)
		ss2 := ss1 ^ x
		tt1 := (a&b | a&c | b&c) + d + ss2 + (w[j] ^ w[j+4])
		tt2 := (e&f | ^e&g) + h + ss1 + w[j]
		d, c, b, a = c, RotateLeft32(b, 9), a, tt1
		h, g, f, e = g, RotateLeft32(f, 19), e, p0(tt2)
	}

	st[0] ^= a
	st[1] ^= b
	st[2] ^= c
	st[3] ^= d
	st[4] ^= e
	st[5] ^= f
	st[6] ^= g
	st[7] ^= h
}

// finalize chains the compression core over every 64-byte chunk of buf from a fresh IV and writes
// the leading len(sum) bytes of the big-endian state to sum. len(buf) must be a multiple of 64 and
// len(sum) at most 32; both hold for every caller in this package.
func finalize(buf, sum []byte) {
	st := iv
	for off := 0; off < len(buf); off += chunkSize {
		compress(&st, buf[off:off+chunkSize])
	}
	emit(&st, sum)
}

func emit(st *[8]uint32, sum []byte) {
	for i := 0; i < len(sum); i += 4 {
		binary.BigEndian.PutUint32(sum[i:], st[i>>2])
	}
}
