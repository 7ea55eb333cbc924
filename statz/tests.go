package main

import (
	"encoding/binary"
	. "fmt"
	"github.com/aead/chacha20/chacha"
	"github.com/p7r0x7/foldsum"
)

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const ints = uint32(5e4)

/* Each digest bit should come up set in half of a large sample; meanBias reports the average
absolute deviation from that half, as a percentage of it. The library's avalanche test guards a
band per flipped bit; this eyeballs the whole output distribution at once. */
func meanBias(tally []int32) float64 {
	var total int64
	for i := range tally {
		v := int64(tally[i]) - int64(ints>>1)
		if v < 0 {
			v = -v
		}
		total += v
	}
	return float64(total) / float64(len(tally)) / float64(ints>>1) * 100
}

func tallyBits(tally []int32, sum [32]byte) {
	for i := range tally {
		if sum[i>>3]&(1<<(i&7)) != 0 {
			tally[i]++
		}
	}
}

func monobit() {
	counter, chaotic := make([]int32, 256), make([]int32, 256)
	page := make([]byte, foldsum.BlockSize)
	stream, _ := chacha.NewCipher(make([]byte, chacha.XNonceSize), make([]byte, chacha.KeySize), 8)

	for i := ints; i > 0; i-- {
		/* Low-entropy side: pages identical but for a 4-byte counter. */
		binary.BigEndian.PutUint32(page[:4], i)
		tallyBits(counter, foldsum.Sum256(page))

		/* High-entropy side: the page drifts along a ChaCha8 keystream. */
		stream.XORKeyStream(page, page)
		tallyBits(chaotic, foldsum.Sum256(page))
	}
	Printf("Counter input Monobit test:  %5.3f%%\n", meanBias(counter))
	Printf("Random input Monobit test:   %5.3f%%\n\n", meanBias(chaotic))
}
