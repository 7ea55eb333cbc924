package foldsum

import (
	"bytes"
	"testing"
)

var batchNames = map[BatchStrategy]string{
	BatchStaged: "staged", BatchFused: "fused", BatchSplit: "split",
}

/* Whatever a batch strategy does to memory layout, its digests must be indistinguishable from
per-block Sum calls, at every batch size the partition logic treats differently: empty, single,
odd, and larger than any internal grouping. */
func TestBatchMatchesSingle(t *testing.T) {
	t.Parallel()
	for _, count := range [5]int{0, 1, 2, 7, 64} {
		blocks := make([][]byte, count)
		for i := range blocks {
			blocks[i] = pattern(uint64(i) * 31)
		}
		for _, span := range [2]int{64, 128} {
			for _, ln := range [2]int{128, 256} {
				for s, name := range batchNames {
					c := Config{Span: span, Batch: s}
					got := c.SumBatch(blocks, ln)
					if got == nil || len(got) != count {
						t.Fatalf("%s: %d blocks returned %d digests", name, count, len(got))
					}
					for i := range got {
						if want := c.Sum(blocks[i], ln); !bytes.Equal(got[i], want) {
							t.Errorf("%s span %d ln %d block %d: %x, single gives %x",
								name, span, ln, i, got[i], want)
						}
					}
				}
			}
		}
	}
}

func TestBatchDigestsDisjoint(t *testing.T) {
	t.Parallel()
	blocks := [][]byte{pattern(1), pattern(2), pattern(3)}
	out := SumBatch(blocks, 256)

	/* The digests share one backing array; capacities are pinned so growing one cannot reach the
	next, and doubling a digest's bytes must leave its neighbors untouched. */
	snapshot := append([]byte(nil), out[1]...)
	for i := range out {
		if cap(out[i]) != len(out[i]) {
			t.Fatalf("digest %d has loose cap %d", i, cap(out[i]))
		}
	}
	_ = append(out[0], out[0]...)
	for i := range out[0] {
		out[0][i] = ^out[0][i]
	}
	if !bytes.Equal(out[1], snapshot) {
		t.Fatal("mutating digest 0 reached digest 1")
	}
}

func TestBatchEmptyAndNil(t *testing.T) {
	t.Parallel()
	for s, name := range batchNames {
		c := Config{Batch: s}
		for _, blocks := range [2][][]byte{nil, {}} {
			if got := c.SumBatch(blocks, 256); got == nil || len(got) != 0 {
				t.Errorf("%s: empty batch returned %v", name, got)
			}
		}
	}
}

/* Batch calls own their pools exclusively, so concurrent batches over shared input must not
perturb each other. */
func TestBatchConcurrent(t *testing.T) {
	t.Parallel()
	blocks := make([][]byte, 32)
	for i := range blocks {
		blocks[i] = pattern(uint64(i) + 100)
	}
	want := SumBatch(blocks, 256)

	done := make(chan bool)
	for g := 4; g > 0; g-- {
		go func() {
			ok := true
			for n := 16; n > 0; n-- {
				got := SumBatch(blocks, 256)
				for i := range got {
					ok = ok && bytes.Equal(got[i], want[i])
				}
			}
			done <- ok
		}()
	}
	for g := 4; g > 0; g-- {
		if !<-done {
			t.Fatal("concurrent batches interfered")
		}
	}
}
