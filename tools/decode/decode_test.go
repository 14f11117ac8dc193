package decode

import (
	"bytes"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/clktmr/cortexm/fault"
	"github.com/clktmr/cortexm/scb"
)

func TestParseRegister(t *testing.T) {
	tests := map[string]struct {
		in       string
		expected uint32
		fails    bool
	}{
		"plain":      {"02000000", 0x0200_0000, false},
		"prefix":     {"0x00008200", 0x8200, false},
		"upper":      {"0X40000000", 0x4000_0000, false},
		"separators": {"0x0000_8200", 0x8200, false},
		"too wide":   {"100000000", 0, true},
		"not hex":    {"0xgg", 0, true},
		"empty":      {"", 0, true},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := ParseRegister(tc.in)
			if tc.fails {
				if err == nil {
					t.Fatalf("expected error, got %#x", v)
				}
				return
			}
			if err != nil || v != tc.expected {
				t.Fatalf("expected %#x, got %#x, %v", tc.expected, v, err)
			}
		})
	}
}

func TestClasses(t *testing.T) {
	tests := map[string]struct {
		cfsr     scb.CFSR
		hfsr     scb.HFSR
		expected []fault.Class
	}{
		"nothing":   {0, 0, []fault.Class{fault.HardFault}},
		"usage":     {scb.DivByZero, 0, []fault.Class{fault.UsageFault}},
		"bus":       {scb.PrecisErr | scb.BFARValid, 0, []fault.Class{fault.BusFault}},
		"memmanage": {scb.DAccViol, 0, []fault.Class{fault.MemManageFault}},
		"escalated": {scb.UndefInstr, scb.Forced, []fault.Class{fault.HardFault, fault.UsageFault}},
		"vector":    {0, scb.VectTbl, []fault.Class{fault.HardFault}},
		"several":   {scb.IAccViol | scb.StkErr, 0, []fault.Class{fault.MemManageFault, fault.BusFault}},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			got := Classes(tc.cfsr, tc.hfsr)
			if diff := cmp.Diff(tc.expected, got); diff != "" {
				t.Fatalf("classes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDescribe(t *testing.T) {
	var buf bytes.Buffer
	Describe(&buf, []fault.Class{fault.HardFault, fault.UsageFault}, scb.UndefInstr, scb.Forced)
	expected := "Hard Fault: Unknown\n" +
		"Usage Fault: Undefined instruction\n" +
		"CFSR=00010000 UNDEFINSTR\n" +
		"HFSR=40000000 FORCED\n"
	if diff := cmp.Diff(expected, buf.String()); diff != "" {
		t.Fatalf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSummary(t *testing.T) {
	tests := map[string]struct {
		rep      fault.Report
		expected string
	}{
		"with address": {
			fault.Report{
				Class:  fault.BusFault,
				Reason: fault.DataBusError,
				Frame:  fault.Frame{PC: 0x0800_0124, LR: 0x0800_0201},
				HFSR:   fault.Invalid,
				CFSR:   uint32(scb.PrecisErr | scb.BFARValid),
				Addr:   0xcccc_cccc,
			},
			"Bus Fault: Invalid data address at PC=08000124 LR=08000201 address cccccccc [PRECISERR BFARVALID]",
		},
		"without address": {
			fault.Report{
				Class:  fault.UsageFault,
				Reason: fault.DivideByZero,
				Frame:  fault.Frame{PC: 0x0800_0300, LR: 0x0800_0111},
				HFSR:   fault.Invalid,
				CFSR:   uint32(scb.DivByZero),
				Addr:   fault.Invalid,
			},
			"Usage Fault: Division by zero at PC=08000300 LR=08000111 [DIVBYZERO]",
		},
	}
	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			if diff := cmp.Diff(tc.expected, Summary(&tc.rep)); diff != "" {
				t.Fatalf("summary mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
