package foldsum

import (
	"bytes"
	"testing"
)

var foldNames = map[FoldStrategy]string{
	FoldAuto: "auto", FoldCompact: "compact", FoldWide: "wide", FoldQuad: "quad",
	FoldOcta: "octa", FoldReverse: "reverse", FoldStride: "stride",
}

/* XOR is associative and commutative, so every strategy is the same abstract fold; a divergent
buffer is a bug in that strategy's indexing, full stop. FoldCompact is the reference form. */
func TestFoldStrategiesAgree(t *testing.T) {
	t.Parallel()
	blocks := make([][]byte, 0, 11)
	for seed := uint64(0); seed < 8; seed++ {
		blocks = append(blocks, pattern(seed))
	}
	zero, ones, ramp := make([]byte, BlockSize), make([]byte, BlockSize), make([]byte, BlockSize)
	for i := range ones {
		ones[i] = 0xff
		ramp[i] = byte(i)
	}
	blocks = append(blocks, zero, ones, ramp)

	for _, span := range [2]int{64, 128} {
		want, got := make([]byte, span), make([]byte, span)
		for i, block := range blocks {
			foldCompact(want, block)
			for s, name := range foldNames {
				/* Stale bytes must not survive a strategy switch; got is reused dirty. */
				Config{Fold: s}.foldInto(got[:span], block)
				if !bytes.Equal(got[:span], want) {
					t.Errorf("span %d block %d: %s folds to %x, compact to %x",
						span, i, name, got[:span], want)
				}
			}
		}
	}
}

/* The per-block digest must agree with the fold it was built on no matter which strategy a Config
pins, including the startup-chosen one behind FoldAuto. */
func TestFoldStrategyDigestsAgree(t *testing.T) {
	t.Parallel()
	block := pattern(3)
	for _, span := range [2]int{64, 128} {
		want := Config{Span: span, Fold: FoldCompact}.Sum(block, 256)
		for s, name := range foldNames {
			if got := (Config{Span: span, Fold: s}).Sum(block, 256); !bytes.Equal(got, want) {
				t.Errorf("span %d: strategy %s digests to %x, compact to %x", span, name, got, want)
			}
		}
	}
}

func TestFoldAutoResolved(t *testing.T) {
	t.Parallel()
	if autoFold == FoldAuto {
		t.Fatal("startup left autoFold unresolved")
	}
	if _, ok := foldNames[autoFold]; !ok {
		t.Fatalf("autoFold resolved to unknown strategy %d", autoFold)
	}
}

func BenchmarkFoldCompact(b *testing.B) { benchFold(b, FoldCompact) }

func BenchmarkFoldWide(b *testing.B) { benchFold(b, FoldWide) }

func BenchmarkFoldQuad(b *testing.B) { benchFold(b, FoldQuad) }

func BenchmarkFoldOcta(b *testing.B) { benchFold(b, FoldOcta) }

func BenchmarkFoldReverse(b *testing.B) { benchFold(b, FoldReverse) }

func BenchmarkFoldStride(b *testing.B) { benchFold(b, FoldStride) }

func benchFold(b *testing.B, s FoldStrategy) {
	c, block := Config{Fold: s}, pattern(0)
	var buf [DefaultSpan]byte
	b.SetBytes(BlockSize)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.foldInto(buf[:], block)
	}
}
