package foldsum

import "golang.org/x/sys/cpu"

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var autoFold = featureCheck()

func featureCheck() FoldStrategy {
	switch {
	/* There is no AVX-512 fold right now; 256-bit registers already cover a 128-byte span. */
	// case cpu.X86.HasAVX512F:
	//	   return FoldOcta
	case cpu.X86.HasAVX2:
		return FoldOcta
	case cpu.X86.HasSSE41:
		return FoldQuad
	default:
		return FoldWide
	}
}
