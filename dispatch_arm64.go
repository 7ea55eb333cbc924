package foldsum

import "golang.org/x/sys/cpu"

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var autoFold = featureCheck()

/* Four banks mirror the four vector accumulators the compiler gets to keep resident under ASIMD;
more banks than that spill on most in-order cores. */
func featureCheck() FoldStrategy {
	if cpu.ARM64.HasASIMD {
		return FoldQuad
	}
	return FoldWide
}
