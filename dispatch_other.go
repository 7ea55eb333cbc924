//go:build !amd64 && !arm64

package foldsum

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.

var autoFold = FoldWide
