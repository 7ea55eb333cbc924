package foldsum

import (
	"runtime"
	"sync"
)

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// This file implements the parallel dispatcher: a one-shot static partition of the input across a
// clamped worker count. Workers share the read-only input and disjoint output ranges, nothing
// else, so the hot path carries no lock and no atomic. Dispatched work always runs to completion;
// there is no cancellation and no partial result.

var threads = runtime.NumCPU()

// SumParallel digests blocks across at most workers concurrent goroutines and blocks until every
// digest has landed. Workers clamps to [1, NumCPU] and to the block count, so slices stay
// non-empty and near-equal; the final slice absorbs the division remainder. Output order always
// matches input order regardless of scheduling.
func SumParallel(blocks [][]byte, workers, ln int) [][]byte {
	return Config{}.SumParallel(blocks, workers, ln)
}

func (c Config) SumParallel(blocks [][]byte, workers, ln int) [][]byte {
	checkLength(ln)
	span := c.span()
	for _, block := range blocks {
		checkBlock(block)
	}

	count := len(blocks)
	_, out := sums(count, ln)
	if count == 0 {
		return out
	}

	t := workers
	if t > threads {
		t = threads
	}
	if t > count {
		t = count
	}
	if t < 1 {
		t = 1
	}

	/* Slice bounds are fixed before any goroutine starts; nothing is rebalanced afterward. */
	base, wg := count/t, sync.WaitGroup{}
	wg.Add(t)
	for w := t - 1; w >= 0; w-- {
		lo, hi := w*base, (w+1)*base
		if w == t-1 {
			hi = count
		}
		go func(lo, hi int) {
			var buf [DefaultSpan]byte
			for i := lo; i < hi; i++ {
				c.foldInto(buf[:span], blocks[i])
				finalize(buf[:span], out[i])
			}
			wg.Done()
		}(lo, hi)
	}
	wg.Wait()
	return out
}
