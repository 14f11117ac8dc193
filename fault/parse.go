package fault

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrNoReport  = errors.New("no fault report found")
	ErrMalformed = errors.New("malformed fault report")
	ErrChecksum  = errors.New("fault report checksum mismatch")
)

// ReportScanner finds fault reports in text captured from the diagnostic
// sink. Any output between reports is skipped.
type ReportScanner struct {
	s    *bufio.Scanner
	line int

	pending    string
	hasPending bool

	rep    Report
	repErr error
}

func NewReportScanner(r io.Reader) *ReportScanner {
	return &ReportScanner{s: bufio.NewScanner(r)}
}

// Scan advances to the next report. It returns false when the input is
// exhausted or failed, see Err.
func (s *ReportScanner) Scan() bool {
	for {
		line, ok := s.next()
		if !ok {
			return false
		}
		if line == header {
			break
		}
	}
	s.rep, s.repErr = s.body()
	return true
}

// Report returns the most recent report found by Scan. The error is non-nil
// if the report was truncated, malformed or failed the checksum.
func (s *ReportScanner) Report() (Report, error) {
	return s.rep, s.repErr
}

// Err returns the first non-EOF error of the underlying reader.
func (s *ReportScanner) Err() error {
	return s.s.Err()
}

// ParseReport returns the first report found in r.
func ParseReport(r io.Reader) (Report, error) {
	s := NewReportScanner(r)
	if !s.Scan() {
		if err := s.Err(); err != nil {
			return Report{}, err
		}
		return Report{}, ErrNoReport
	}
	return s.Report()
}

func (s *ReportScanner) next() (string, bool) {
	if s.hasPending {
		s.hasPending = false
		return s.pending, true
	}
	if !s.s.Scan() {
		return "", false
	}
	s.line++
	return strings.TrimRight(s.s.Text(), "\r"), true
}

// expect returns the next line of a report. A header starts a new report, so
// it's pushed back for the next call of Scan.
func (s *ReportScanner) expect() (string, error) {
	line, ok := s.next()
	if !ok {
		return "", fmt.Errorf("%w: truncated at line %d", ErrMalformed, s.line)
	}
	if line == header {
		s.pending, s.hasPending = line, true
		return "", fmt.Errorf("%w: truncated at line %d", ErrMalformed, s.line-1)
	}
	return line, nil
}

func (s *ReportScanner) malformed(line string) error {
	return fmt.Errorf("%w: line %d: %q", ErrMalformed, s.line, line)
}

func (s *ReportScanner) body() (rep Report, err error) {
	line, err := s.expect()
	if err != nil {
		return
	}
	name, ok := strings.CutPrefix(line, "Type: ")
	if rep.Class, ok = classByName(name); !ok {
		return rep, s.malformed(line)
	}

	if line, err = s.expect(); err != nil {
		return
	}
	name, ok = strings.CutPrefix(line, "Reason: ")
	if rep.Reason, ok = reasonByName(rep.Class, name); !ok {
		return rep, s.malformed(line)
	}

	if line, err = s.expect(); err != nil {
		return
	}
	if line != "" {
		return rep, s.malformed(line)
	}

	f := &rep.Frame
	pairs := [...]struct {
		keys [2]string
		dst  [2]*uint32
	}{
		{[2]string{"R0", "R1"}, [2]*uint32{&f.R0, &f.R1}},
		{[2]string{"R2", "R3"}, [2]*uint32{&f.R2, &f.R3}},
		{[2]string{"R12", "LR"}, [2]*uint32{&f.R12, &f.LR}},
		{[2]string{"PC", "PSR"}, [2]*uint32{&f.PC, &f.PSR}},
		{[2]string{"HFSR", "CFSR"}, [2]*uint32{&rep.HFSR, &rep.CFSR}},
	}
	for _, p := range pairs {
		if line, err = s.expect(); err != nil {
			return
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return rep, s.malformed(line)
		}
		for i, field := range fields {
			k, v, _ := strings.Cut(field, "=")
			if k != p.keys[i] {
				return rep, s.malformed(line)
			}
			if *p.dst[i], ok = parseHex(v); !ok {
				return rep, s.malformed(line)
			}
		}
	}

	if line, err = s.expect(); err != nil {
		return
	}
	v, _ := strings.CutPrefix(line, "Fault address=")
	if rep.Addr, ok = parseHex(v); !ok {
		return rep, s.malformed(line)
	}

	if line, err = s.expect(); err != nil {
		return
	}
	v, _ = strings.CutPrefix(line, "Checksum=")
	sum, err := strconv.ParseUint(v, 16, 8)
	if err != nil {
		return rep, s.malformed(line)
	}
	if expected := rep.Checksum(); uint8(sum) != expected {
		return rep, fmt.Errorf("%w: expected %02x, got %02x", ErrChecksum, expected, sum)
	}
	return rep, nil
}

func parseHex(s string) (uint32, bool) {
	v, err := strconv.ParseUint(s, 16, 32)
	return uint32(v), err == nil && s != ""
}

func classByName(name string) (Class, bool) {
	for c := HardFault; c < classLast; c++ {
		if c.String() == name {
			return c, true
		}
	}
	return 0, false
}

// reasonByName resolves the printed reason of a class. Names are shared
// between classes, e.g. "Invalid code address", but unique within one.
func reasonByName(c Class, name string) (Reason, bool) {
	if name == Unresolved.String() {
		return Unresolved, true
	}
	for _, r := range rules[c] {
		if r.reason.String() == name {
			return r.reason, true
		}
	}
	return 0, false
}
