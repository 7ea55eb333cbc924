package foldsum

import (
	"bytes"
	"sync"
	"testing"
)

/* The dispatcher must be invisible in the output: any worker count, clamped or not, yields the
elementwise single-call digests in input order. Counts probe the partition edges: T dividing K,
T > K, T > NumCPU, and the clamp floor. */
func TestParallelMatchesSingle(t *testing.T) {
	t.Parallel()
	for _, count := range [5]int{0, 1, 3, 16, 257} {
		blocks := make([][]byte, count)
		want := make([][]byte, count)
		for i := range blocks {
			blocks[i] = pattern(uint64(i) * 7)
			want[i] = Sum(blocks[i], 256)
		}
		for _, workers := range [7]int{-1, 0, 1, 2, 3, threads, threads * 8} {
			got := SumParallel(blocks, workers, 256)
			if len(got) != count {
				t.Fatalf("%d workers, %d blocks: %d digests", workers, count, len(got))
			}
			for i := range got {
				if !bytes.Equal(got[i], want[i]) {
					t.Errorf("%d workers: block %d landed wrong", workers, i)
				}
			}
		}
	}
}

func TestParallelWorkerCountsAgree(t *testing.T) {
	t.Parallel()
	blocks := make([][]byte, 61) /* prime, so every division leaves a remainder */
	for i := range blocks {
		blocks[i] = pattern(uint64(i) + 1000)
	}
	c := Config{Span: 64, Fold: FoldStride}
	want := c.SumParallel(blocks, 1, 128)
	for workers := 2; workers <= threads+2; workers++ {
		got := c.SumParallel(blocks, workers, 128)
		for i := range got {
			if !bytes.Equal(got[i], want[i]) {
				t.Fatalf("T=%d diverged from T=1 at block %d", workers, i)
			}
		}
	}
}

func TestParallelEmpty(t *testing.T) {
	t.Parallel()
	if got := SumParallel(nil, 8, 256); got == nil || len(got) != 0 {
		t.Errorf("nil input returned %v", got)
	}
	if got := SumParallel([][]byte{}, 8, 256); got == nil || len(got) != 0 {
		t.Errorf("empty input returned %v", got)
	}
}

/* Dispatches from concurrent callers share nothing but the read-only blocks. */
func TestParallelConcurrentCalls(t *testing.T) {
	t.Parallel()
	blocks := make([][]byte, 48)
	for i := range blocks {
		blocks[i] = pattern(uint64(i) + 5000)
	}
	want := SumParallel(blocks, 1, 256)

	wg := sync.WaitGroup{}
	wg.Add(6)
	for g := 0; g < 6; g++ {
		go func(workers int) {
			for n := 8; n > 0; n-- {
				got := SumParallel(blocks, workers, 256)
				for i := range got {
					if !bytes.Equal(got[i], want[i]) {
						t.Errorf("concurrent dispatch (T=%d) corrupted block %d", workers, i)
					}
				}
			}
			wg.Done()
		}(g + 1)
	}
	wg.Wait()
}
