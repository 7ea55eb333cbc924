package main

import (
	"encoding/base64"
	"encoding/hex"
	. "fmt"
	"github.com/p7r0x7/foldsum"
	"github.com/p7r0x7/vainpath"
	. "github.com/spf13/pflag"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"
	"unicode/utf8"
)

// Copyright © 2023 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const n = "\n"
const success, failure = 0, 1

var warnings = 0

func main() { os.Exit(program()) }

// help prints a usage menu and quietly exits if no non-flag arguments are given. To consistently
// correctly render this menu in most terminal windows, its content should be no wider than 80
// columns.
func help() {
	origin, err := os.Executable()
	if err != nil {
		origin = "pagesum" /* Default binary name */
	} else {
		origin = filepath.Base(origin)
	}
	name := vainpath.Trim(origin, "…", 12)
	spaces := strings.Repeat(" ", utf8.RuneCountInString(name)+3)
	Fprint(os.Stderr, yell, "Page-by-page integrity digests from folded SM3 compressions.", zero, n+n+
		"Usage:"+n+
		"  ", name, " [-h]"+n,
		spaces, "[-bt] [-l <uint>] [-p <uint>] [-w <uint>] [--fold <string>]"+n,
		spaces, "[--quiet|no-codes] [--strict] -|PATH..."+n,
		spaces, "[-bt] [-l <uint>] [-p <uint>] [-w <uint>] [--fold <string>]"+n,
		spaces, "[--quiet|no-codes] [--strict] -s STRING..."+n+n+
			"Options:"+n)
	PrintDefaults()
	name = vainpath.Trim(origin, "…", 15)
	Fprint(os.Stderr, n+"Inputs are hashed as 4096-byte pages (the last page zero-padded), one digest"+n+
		"printed per page. Order of arguments placed after `", name, "` does not matter"+n+
		"unless `--` is specified, signaling the end of parsed flags. Long-form flag"+n+
		"equivalents are above. `-` is treated as a reference to ", os.Stdin.Name(),
		" on this"+n+"platform."+n)
}

// This program is a command-line interface for foldsum: It splits files, strings, and STDIN into
// 4096-byte pages, zero-padding the final partial page before the library ever sees it, and prints
// one digest per page, processing an unlimited number of arguments as required by the command-line
// operator.
func program() int {
	if pDebug {
		cf, err := os.Create("cpu.prof")
		_ = pprof.StartCPUProfile(cf)
		defer pprof.StopCPUProfile()

		af, err := os.Create("allocs.prof")
		defer pprof.Lookup("allocs").WriteTo(af, 0)
		if err != nil {
			panic(err)
		}
	}

	if pHelp || NArg() == 0 {
		help()
		return success
	}
	cfg := config()
	workers := int(pWorkers)
	if workers == 0 {
		workers = runtime.NumCPU()
	}
	enc := hex.EncodeToString
	if pBase64 {
		enc = base64.StdEncoding.EncodeToString
	}

	for _, target := range Args() {
		start, delta := time.Now(), ""
		var msg []byte

		if pString {
			msg = []byte(target)
		} else if target == "-" || target == os.Stdin.Name() {
			var err error
			if msg, err = io.ReadAll(os.Stdin); err != nil {
				warn(err)
				continue
			}
			go os.Stdin.Close() /* STDIN should not be reused. */
		} else if file, err := os.Open(target); err != nil {
			warn(err)
			continue
		} else {
			msg, err = io.ReadAll(file)
			go file.Close()
			if err != nil {
				warn(err)
				continue
			}
		}

		pages := paginate(msg)
		sums := cfg.SumParallel(pages, workers, int(pLength))

		if pTime {
			d := time.Since(start)
			if d.Microseconds() > 99 {
				d = d.Truncate(10 * time.Microsecond)
			}
			delta = Sprint(" (", len(pages), " pages in ", d.String(), ")")
		}

		for i, sum := range sums {
			if pQuiet {
				Println(enc(sum))
				continue
			}
			tail := ""
			if i == len(sums)-1 {
				tail = delta
			}
			if pString {
				Print(yell, enc(sum), zero, `  "`, target, `":`, i, tail, n)
			} else if pNoCodes {
				Print(enc(sum), `  `, filepath.Clean(target), `:`, i, tail, n)
			} else {
				Print(yell, enc(sum), zero, `  `, und, vainpath.Simplify(target), zero, `:`, i, tail, n)
			}
		}
	}

	if !pQuiet {
		if warnings == 1 {
			Fprint(os.Stderr, "1 ", purp, "target is a directory or is otherwise inaccessible.", zero, n)
		} else if warnings > 1 {
			Fprint(os.Stderr, warnings, " ", purp, "targets are directories or are otherwise inaccessible.", zero, n)
		}
	}
	if warnings > 0 {
		return failure
	}
	return success
}

// config vets the flag values the library would otherwise panic over, so the operator gets plain
// sentences instead of stack traces.
func config() foldsum.Config {
	switch pLength {
	case 128, 256:
		break
	default:
		panic("Digest length must be 128 or 256 bits.")
	}
	switch pSpan {
	case 64, 128:
		break
	default:
		panic("Fold span must be 64 or 128 bytes.")
	}
	cfg := foldsum.Config{Span: int(pSpan)}
	switch strings.ToLower(pFold) {
	case "", "auto":
		cfg.Fold = foldsum.FoldAuto
	case "compact":
		cfg.Fold = foldsum.FoldCompact
	case "wide":
		cfg.Fold = foldsum.FoldWide
	case "quad":
		cfg.Fold = foldsum.FoldQuad
	case "octa":
		cfg.Fold = foldsum.FoldOcta
	case "reverse":
		cfg.Fold = foldsum.FoldReverse
	case "stride":
		cfg.Fold = foldsum.FoldStride
	default:
		panic("Unknown fold strategy: " + pFold)
	}
	return cfg
}

/* paginate slices msg into pages without copying; only a final partial page is copied into padded
scratch. Empty messages hash as a single zero page so that every target renders at least one line. */
func paginate(msg []byte) [][]byte {
	pages := make([][]byte, 0, len(msg)/foldsum.BlockSize+1)
	for len(msg) >= foldsum.BlockSize {
		pages = append(pages, msg[:foldsum.BlockSize])
		msg = msg[foldsum.BlockSize:]
	}
	if len(msg) > 0 || len(pages) == 0 {
		tail := make([]byte, foldsum.BlockSize)
		copy(tail, msg)
		pages = append(pages, tail)
	}
	return pages
}

func warn(err ...interface{}) {
	if pStrict {
		panic(err)
	}
	warnings++
}
