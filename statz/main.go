package main

import (
	. "fmt"
	"runtime"
	"time"
)

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.
// Statz pits foldsum's three dispatch surfaces against the fastest general-purpose hashes in its
// dependency set, from a single 4K page up to 256M of them, reporting throughput, sampled
// cycles-per-byte, and allocation footprint.

func main() {
	Printf("Running Statz on %d CPUs!\n%s/%s\n\n", runtime.NumCPU(), runtime.GOOS, runtime.GOARCH)
	t := time.Now()
	monobit()
	Println(" ============================================= ")

	Println("             4K     256K      16M     256M")
	Println("github.com/p7r0x7/foldsum Sum256")
	benchAlg(BenchmarkSingle)

	Println("github.com/p7r0x7/foldsum SumBatch")
	benchAlg(BenchmarkBatch)

	Println("github.com/p7r0x7/foldsum SumParallel")
	benchAlg(BenchmarkParallel)

	Println("github.com/minio/sha256-simd")
	benchAlg(BenchmarkSHA256)

	Println("github.com/zeebo/blake3")
	benchAlg(BenchmarkBlake3)

	Println("github.com/zeebo/xxh3")
	benchAlg(BenchmarkXXH3)

	Println("Finished in " + time.Since(t).Truncate(time.Millisecond).String() + ".")
}
