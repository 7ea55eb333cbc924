package foldsum

import (
	"encoding/binary"
	"fmt"
)

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file implements the batch pipeline. One call owns one scratch pool of batch×span bytes for
// its whole lifetime; no pool is ever shared between calls, so concurrent batches stay disjoint by
// construction. However a strategy schedules the two stages, digest[i] must equal Sum(blocks[i]).

// SumBatch digests an ordered batch of 4096-byte blocks, amortizing scratch allocation across the
// batch. An empty batch is valid and returns an empty, non-nil slice. The returned digests share
// one backing array but occupy disjoint ranges of it.
func SumBatch(blocks [][]byte, ln int) [][]byte { return Config{}.SumBatch(blocks, ln) }

func (c Config) SumBatch(blocks [][]byte, ln int) [][]byte {
	checkLength(ln)
	span := c.span()
	for _, block := range blocks {
		checkBlock(block)
	}

	/* The pool is the batch's only per-block scratch; make() failing is fatal to the whole call,
	which is the contract. It is garbage the moment this function returns. */
	pool := make([]byte, len(blocks)*span)
	_, out := sums(len(blocks), ln)

	switch c.Batch {
	case BatchStaged:
		c.stagedPass(pool, blocks, out)
	case BatchFused:
		c.fusedPass(pool, blocks, out)
	case BatchSplit:
		half := len(blocks) >> 1
		c.stagedPass(pool[:half*span], blocks[:half], out[:half])
		c.stagedPass(pool[half*span:], blocks[half:], out[half:])
	default:
		panic(fmt.Errorf("foldsum: batch strategy %d unknown", c.Batch))
	}
	return out
}

// stagedPass folds every block into the pool, then runs the chained compressions column-wise:
// per-block states live transposed in one flat slice, register r of block i at r*count+i, so the
// inner loop of each chunk stage streams through memory instead of hopping between block states.
func (c Config) stagedPass(pool []byte, blocks, out [][]byte) {
	span, count := c.span(), len(blocks)
	for i, block := range blocks {
		c.foldInto(pool[i*span:(i+1)*span], block)
	}

	cols := make([]uint32, 8*count)
	for r, v := range iv {
		col := cols[r*count : (r+1)*count]
		for i := range col {
			col[i] = v
		}
	}

	var st [8]uint32
	for off := 0; off < span; off += chunkSize {
		for i := 0; i < count; i++ {
			for r := 0; r < 8; r++ {
				st[r] = cols[r*count+i]
			}
			compress(&st, pool[i*span+off:i*span+off+chunkSize])
			for r := 0; r < 8; r++ {
				cols[r*count+i] = st[r]
			}
		}
	}

	for i := 0; i < count; i++ {
		for b := 0; b < len(out[i]); b += 4 {
			binary.BigEndian.PutUint32(out[i][b:], cols[(b>>2)*count+i])
		}
	}
}

// fusedPass runs the whole single-block pipeline per block, reusing the pool region as that
// block's intermediate buffer. It wins when the batch is too small for staging to pay rent.
func (c Config) fusedPass(pool []byte, blocks, out [][]byte) {
	span := c.span()
	for i, block := range blocks {
		buf := pool[i*span : (i+1)*span]
		c.foldInto(buf, block)
		finalize(buf, out[i])
	}
}
