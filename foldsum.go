package foldsum

import "fmt"

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file is the public interface of the FoldSum page digest as contrived by its original
// author: 4096-byte blocks in, 128- or 256-bit digests out, by way of a lossy XOR fold and a
// chained SM3-style compression. FoldSum's developer thanks The Go Authors and the designers of
// any third-party software utilized in this project.

/* FoldSum deliberately discards all but a span's worth of input entropy before compressing, so it
is offered as an integrity digest for fixed-size pages, not as a general cryptographic hash; its
collision resistance relative to hashing raw blocks is unevaluated. Blocks that repeat one chunk
an even number of times fold to the same buffer as an all-zero block; see TestFoldCollisions. */

const (
	// BlockSize is the one and only input length accepted by Sum and its variants.
	BlockSize = 4096
	// DefaultSpan is the fold span used when Config.Span is zero.
	DefaultSpan = 128
	/* The compression core consumes exactly this many bytes per call. */
	chunkSize = 64
)

// A BatchStrategy selects how SumBatch schedules its two stages across a batch; every strategy
// yields digests byte-identical to per-block Sum calls.
type BatchStrategy uint8

const (
	BatchStaged BatchStrategy = iota /* fold the whole batch, then compress it column-wise */
	BatchFused                       /* fold+compress per block in one pass */
	BatchSplit                       /* two staged half-passes over the batch */
)

// A Config pins the fold span, the reduction strategy, and the batch schedule. The zero value is
// ready to use and matches what the package-level functions do.
type Config struct {
	Span  int /* 64 or 128; 0 means DefaultSpan */
	Fold  FoldStrategy
	Batch BatchStrategy
}

// Sum returns the ln-bit digest of a 4096-byte block, ln being 128 or 256. It panics whenever the
// arguments violate those bounds, as does every other entry point in this package.
func Sum(block []byte, ln int) []byte { return Config{}.Sum(block, ln) }

// Sum128 is Sum(block, 128) without the heap allocation. Its output is always the leading 16
// bytes of Sum256's, never an independent value.
func Sum128(block []byte) (sum [16]byte) {
	checkBlock(block)
	var buf [DefaultSpan]byte
	Config{}.foldInto(buf[:], block)
	finalize(buf[:], sum[:])
	return sum
}

// Sum256 is Sum(block, 256) without the heap allocation.
func Sum256(block []byte) (sum [32]byte) {
	checkBlock(block)
	var buf [DefaultSpan]byte
	Config{}.foldInto(buf[:], block)
	finalize(buf[:], sum[:])
	return sum
}

func (c Config) Sum(block []byte, ln int) []byte {
	checkBlock(block)
	checkLength(ln)
	span := c.span()

	var buf [DefaultSpan]byte
	c.foldInto(buf[:span], block)
	sum := make([]byte, ln>>3)
	finalize(buf[:span], sum)
	return sum
}

func (c Config) span() int {
	switch c.Span {
	case 0:
		return DefaultSpan
	case 64, 128:
		return c.Span
	}
	panic(fmt.Errorf("foldsum: span of %d invalid, must be 64 or 128", c.Span))
}

func checkBlock(block []byte) {
	if len(block) != BlockSize {
		panic(fmt.Errorf("foldsum: block of %d bytes invalid, must be %d", len(block), BlockSize))
	}
}

func checkLength(ln int) {
	switch ln {
	case 128, 256:
		break
	default:
		panic("invalid input: digest length")
	}
}

/* sums carves one backing allocation into B disjoint digest slices; three-index expressions keep
append on one digest from ever reaching its neighbor. */
func sums(count, ln int) ([]byte, [][]byte) {
	size := ln >> 3
	flat := make([]byte, count*size)
	out := make([][]byte, count)
	for i := range out {
		out[i] = flat[i*size : (i+1)*size : (i+1)*size]
	}
	return flat, out
}
