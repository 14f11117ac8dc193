package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/clktmr/cortexm/tools/decode"
	"github.com/clktmr/cortexm/tools/run"
	"github.com/clktmr/cortexm/tools/scan"
)

const usageString = `faultmon is a tool for inspecting Cortex-M fault reports.

Usage:

	%s <command> [arguments]

The commands are:

	decode   explain CFSR and HFSR values
	log      find and verify fault reports in captured output
	run      run firmware until it prints a fault report
`

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), usageString, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	log.Default().SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	switch flag.Arg(0) {
	case "decode":
		decode.Main(flag.Args())
	case "log":
		scan.Main(flag.Args())
	case "run":
		run.Main(flag.Args())
	default:
		fmt.Fprintf(flag.CommandLine.Output(), "unknown command: %s\n", flag.Arg(0))
		flag.Usage()
		os.Exit(1)
	}
}
