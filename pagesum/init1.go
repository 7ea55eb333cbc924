package main

import (
	. "github.com/spf13/pflag"
	"os"
	"runtime"
)

var pLength, pSpan, pWorkers, pNoCodesDefault = uint(0), uint(0), uint(0), false
var pFold string
var pHelp, pBase64, pNoCodes, pQuiet, pStrict, pString, pTime, pDebug bool
var yell, purp, und, zero = "\033[33m", "\033[35m", "\033[4m", "\033[0m"

func init() {
	/* The help text itself is colored, so the codes question must settle before any flag is
	defined; Parse() is far too late. */
	for _, arg := range os.Args[1:] {
		switch arg {
		case "--no-codes=false":
			pNoCodes = false
		case "--quiet", "--quiet=true":
			pNoCodes, pQuiet = true, true
		case "--no-codes", "--no-codes=true":
			pNoCodes = true
		}
	}
	if pNoCodes {
		yell, purp, und, zero = "", "", "", ""
	}

	BoolVarP(&pHelp, "help", "h", false,
		purp+"print this help menu"+zero+n)

	BoolVarP(&pBase64, "base64", "b", false,
		purp+"render digests in base64"+zero+" (default hex)")

	BoolVar(&pDebug, "debug", false, "")
	CommandLine.MarkHidden("debug")

	StringVar(&pFold, "fold", "auto",
		purp+"pin the reduction strategy: one of auto, compact, wide,"+zero+
			n+purp+"quad, octa, reverse, or stride"+zero)

	UintVarP(&pLength, "length", "l", 256,
		purp+"set output digest length in bits (128 or 256)"+zero)

	Bool("no-codes", pNoCodesDefault,
		purp+"print to console w/o formatting codes or simplified"+zero+
			n+purp+"filepaths"+zero)

	UintVarP(&pSpan, "span", "p", 128,
		purp+"set the fold span in bytes (64 or 128); spans are not"+zero+
			n+purp+"cross-compatible"+zero)

	Bool("quiet", false,
		purp+"suppress non-breaking errors and print ONLY digests"+zero+
			n+"(enables --no-codes)")

	BoolVar(&pStrict, "strict", false,
		purp+"cause pagesum to panic on any error"+zero)

	BoolVarP(&pString, "string", "s", false,
		purp+"process arguments instead as UTF-8 strings to be hashed"+zero)

	BoolVarP(&pTime, "time", "t", false,
		purp+"print page count and time taken to read and hash each"+zero+
			n+purp+"message"+zero)

	UintVarP(&pWorkers, "workers", "w", uint(runtime.NumCPU()),
		purp+"set the number of concurrent hashing workers (0 means"+zero+
			n+purp+"one per CPU)"+zero)

	/* Order flags alphabetically except for help, which is hoisted to the top. */
	CommandLine.SortFlags = false
	Parse()
	pStrict = pStrict || pDebug
}
