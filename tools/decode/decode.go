// Package decode implements the faultmon decode command, which explains the
// content of fault status registers copied from a debugger.
package decode

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/clktmr/cortexm/fault"
	"github.com/clktmr/cortexm/scb"
)

const usageString = `Fault status register decoder.

Usage: %s [flags] <cfsr> [hfsr]

`

var (
	flags = flag.NewFlagSet("decode", flag.ExitOnError)

	class = flags.String("class", "", "hard | memmanage | bus | usage, guessed from the registers if empty")
)

var classFlags = map[string]fault.Class{
	"hard":      fault.HardFault,
	"memmanage": fault.MemManageFault,
	"bus":       fault.BusFault,
	"usage":     fault.UsageFault,
}

func usage() {
	fmt.Fprintf(flags.Output(), usageString, "decode")
	flags.PrintDefaults()
}

func Main(args []string) {
	flags.Usage = usage
	flags.Parse(args[1:])

	if flags.NArg() < 1 || flags.NArg() > 2 {
		flags.Usage()
		os.Exit(1)
	}

	cfsr, err := ParseRegister(flags.Arg(0))
	if err != nil {
		log.Fatalln("cfsr:", err)
	}
	var hfsr uint32
	if flags.NArg() == 2 {
		hfsr, err = ParseRegister(flags.Arg(1))
		if err != nil {
			log.Fatalln("hfsr:", err)
		}
	}

	classes := Classes(scb.CFSR(cfsr), scb.HFSR(hfsr))
	if *class != "" {
		c, ok := classFlags[*class]
		if !ok {
			log.Fatalf("unknown class: %s", *class)
		}
		classes = []fault.Class{c}
	}

	Describe(os.Stdout, classes, scb.CFSR(cfsr), scb.HFSR(hfsr))
}

// ParseRegister parses a hexadecimal register value with optional 0x
// prefix, the way debuggers print them.
func ParseRegister(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	v, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 16, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

// Classes guesses which fault handlers could have been entered with the
// given register contents. Every sub-register with bits set names its
// class, a forced or vector table HardFault adds HardFault.
func Classes(cfsr scb.CFSR, hfsr scb.HFSR) (classes []fault.Class) {
	if hfsr&(scb.Forced|scb.VectTbl) != 0 {
		classes = append(classes, fault.HardFault)
	}
	if cfsr&scb.MMFSRMask != 0 {
		classes = append(classes, fault.MemManageFault)
	}
	if cfsr&scb.BFSRMask != 0 {
		classes = append(classes, fault.BusFault)
	}
	if cfsr&scb.UFSRMask != 0 {
		classes = append(classes, fault.UsageFault)
	}
	if len(classes) == 0 {
		classes = append(classes, fault.HardFault)
	}
	return
}

// Describe writes the decoded reason for each class followed by the set bits
// of both registers.
func Describe(w io.Writer, classes []fault.Class, cfsr scb.CFSR, hfsr scb.HFSR) {
	for _, c := range classes {
		fmt.Fprintf(w, "%v: %v\n", c, fault.Decode(c, cfsr))
	}
	fmt.Fprintf(w, "CFSR=%08x %s\n", uint32(cfsr), strings.Join(cfsr.Names(), " "))
	if hfsr != 0 {
		fmt.Fprintf(w, "HFSR=%08x %s\n", uint32(hfsr), strings.Join(hfsr.Names(), " "))
	}
}

// Summary returns a one line description of a report.
func Summary(rep *fault.Report) string {
	s := fmt.Sprintf("%v: %v at PC=%08x LR=%08x", rep.Class, rep.Reason, rep.Frame.PC, rep.Frame.LR)
	if rep.Addr != fault.Invalid {
		s += fmt.Sprintf(" address %08x", rep.Addr)
	}
	if names := scb.CFSR(rep.CFSR).Names(); len(names) > 0 {
		s += " [" + strings.Join(names, " ") + "]"
	}
	return s
}
