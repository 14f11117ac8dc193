// Package scan implements the faultmon log command. It searches captured
// console output for fault reports and verifies them.
package scan

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/clktmr/cortexm/fault"
	"github.com/clktmr/cortexm/tools/decode"
)

const usageString = `Fault report scanner.

Usage: %s [flags] [logfile]

Reads from stdin if no logfile is given.

`

var (
	flags = flag.NewFlagSet("log", flag.ExitOnError)

	verbose = flags.Bool("v", false, "print complete reports")
)

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "log")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	in := os.Stdin
	switch flags.NArg() {
	case 0:
	case 1:
		f, err := os.Open(flags.Arg(0))
		if err != nil {
			log.Fatalln(err)
		}
		defer f.Close()
		in = f
	default:
		flags.Usage()
		os.Exit(1)
	}

	valid, invalid, err := Scan(in, os.Stdout, *verbose)
	if err != nil {
		log.Fatalln("read:", err)
	}
	if valid+invalid == 0 {
		log.Fatalln(fault.ErrNoReport)
	}
	if invalid > 0 {
		os.Exit(1)
	}
}

// Scan writes a summary of every report found in r to w. Corrupted reports
// are listed with the reason they were rejected.
func Scan(r io.Reader, w io.Writer, verbose bool) (valid, invalid int, err error) {
	s := fault.NewReportScanner(r)
	for s.Scan() {
		rep, err := s.Report()
		if err != nil {
			invalid++
			fmt.Fprintf(w, "report %d: %v\n", valid+invalid, err)
			continue
		}
		valid++
		fmt.Fprintf(w, "report %d: %s\n", valid+invalid, decode.Summary(&rep))
		if verbose {
			rep.WriteTo(w)
		}
	}
	return valid, invalid, s.Err()
}
