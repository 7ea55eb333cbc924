package main

import (
	. "fmt"
	"github.com/aead/chacha20/chacha"
	"github.com/dterei/gotsc"
	"github.com/minio/sha256-simd"
	"github.com/p7r0x7/foldsum"
	"github.com/zeebo/blake3"
	"github.com/zeebo/xxh3"
	"runtime"
	"testing"
	"time"
)

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var counts = [...]int{1, 64, 4096, 65536} /* pages per op: 4K, 256K, 16M, 256M */
var corpus, calltime = [][]byte(nil), gotsc.TSCOverhead()

/* Corpora must be identical across runs and machines for their reports to be diffable, so pages
are drawn from ChaCha8 under a zero key rather than from math/rand. */
func refill(count int) {
	blob := make([]byte, count*foldsum.BlockSize)
	chacha.XORKeyStream(blob, blob, make([]byte, chacha.XNonceSize), make([]byte, chacha.KeySize), 8)
	corpus = make([][]byte, count)
	for i := range corpus {
		corpus[i] = blob[i*foldsum.BlockSize : (i+1)*foldsum.BlockSize]
	}
}

func BenchmarkSingle(b *testing.B) {
	b.SetBytes(int64(len(corpus)) * foldsum.BlockSize)
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		for _, page := range corpus {
			foldsum.Sum256(page)
		}
	}
}

func BenchmarkBatch(b *testing.B) {
	b.SetBytes(int64(len(corpus)) * foldsum.BlockSize)
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		foldsum.SumBatch(corpus, 256)
	}
}

func BenchmarkParallel(b *testing.B) {
	b.SetBytes(int64(len(corpus)) * foldsum.BlockSize)
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		foldsum.SumParallel(corpus, runtime.NumCPU(), 256)
	}
}

func BenchmarkSHA256(b *testing.B) {
	b.SetBytes(int64(len(corpus)) * foldsum.BlockSize)
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		for _, page := range corpus {
			sha256.Sum256(page)
		}
	}
}

func BenchmarkBlake3(b *testing.B) {
	b.SetBytes(int64(len(corpus)) * foldsum.BlockSize)
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		for _, page := range corpus {
			blake3.Sum256(page)
		}
	}
}

func BenchmarkXXH3(b *testing.B) {
	b.SetBytes(int64(len(corpus)) * foldsum.BlockSize)
	b.ResetTimer()
	for i := b.N; i > 0; i-- {
		for _, page := range corpus {
			xxh3.Hash128(page)
		}
	}
}

/* The kernel migrates and throttles cores mid-benchmark, so the TSC rate is sampled alongside the
run instead of assumed: each 10ms window times 1ms of sleep in cycles. Reading the average back
through the same channel keeps the sampler from outliving its benchmark. */
func sampleHz(stop chan struct{}, hz *float64) {
	var cycles, polls uint64
	for {
		select {
		case <-stop:
			*hz = float64(cycles*1000) / float64(polls)
			stop <- struct{}{}
			return
		default:
			tsc1 := gotsc.BenchStart()
			time.Sleep(time.Millisecond)
			tsc2 := gotsc.BenchEnd()
			cycles += tsc2 - tsc1 - calltime
			polls++
			time.Sleep(time.Millisecond * 9)
		}
	}
}

func benchAlg(alg func(b *testing.B)) {
	const s = len(counts)
	throughputs, speeds, usages := make([]float64, s), make([]float64, s), make([]float64, s)

	for i, v := range counts {
		refill(v)

		hz, stop := float64(0), make(chan struct{})
		if calltime > 0 {
			go sampleHz(stop, &hz)
		}
		r := testing.Benchmark(alg)
		if calltime > 0 {
			stop <- struct{}{}
			<-stop
		}

		throughputs[i] = float64(r.Bytes*int64(r.N)) / r.T.Seconds() /* B/s */
		speeds[i] = hz / throughputs[i]
		throughputs[i] /= 1e6 /* MB/s */
		usages[i] = float64(r.AllocedBytesPerOp())
	}
	corpus = nil

	Println("Speed " + fmtFloats(throughputs...) + "   MB/s")
	if calltime > 0 {
		Println("      " + fmtFloats(speeds...) + "   cpb")
	}
	Println("Usage " + fmtFloats(usages...) + "   B/op\n")
}

func fmtFloats(f ...float64) string {
	var str string
	for _, v := range f {
		style := "%9.f"
		switch whole := float64(int64(v)) == v; {
		case v >= 1e9 || (v < 1e-3 && !whole):
			style = "%9.3g"
		case !whole && v < 1e2:
			style = "%9.4f"
		case !whole:
			style = "%9.1f"
		}
		str += Sprintf(style, v)
	}
	return str
}
