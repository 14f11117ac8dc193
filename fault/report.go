package fault

import (
	"encoding/binary"
	"io"

	"github.com/sigurn/crc8"
)

// Report is everything the dispatcher knows about a fault.
type Report struct {
	Class  Class
	Reason Reason
	Frame  Frame
	HFSR   uint32 // Invalid unless Class is HardFault
	CFSR   uint32
	Addr   uint32 // MMFAR or BFAR, Invalid if not latched
}

const header = "**** EXCEPTION OCCURRED ****"

var crcTable = crc8.MakeTable(crc8.CRC8)

// Checksum returns the CRC-8 over class, reason and all register values of
// the report. It's printed with the report to detect corruption on the way
// to the host.
func (r *Report) Checksum() uint8 {
	var buf [4*11 + 2]byte
	words := [11]uint32{
		r.Frame.R0, r.Frame.R1, r.Frame.R2, r.Frame.R3,
		r.Frame.R12, r.Frame.LR, r.Frame.PC, r.Frame.PSR,
		r.HFSR, r.CFSR, r.Addr,
	}
	for i, w := range words {
		binary.LittleEndian.PutUint32(buf[4*i:], w)
	}
	buf[44] = byte(r.Class)
	buf[45] = byte(r.Reason)
	return crc8.Checksum(buf[:], crcTable)
}

// WriteTo writes the report as text to w, one register pair per line.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	lw := &lineWriter{w: w}
	r.write(lw)
	return lw.n, lw.err
}

//go:nosplit
func (r *Report) write(lw *lineWriter) {
	lw.str(header)
	lw.end()
	lw.str("Type: ")
	lw.str(r.Class.String())
	lw.end()
	lw.str("Reason: ")
	lw.str(r.Reason.String())
	lw.end()
	lw.blank()

	f := &r.Frame
	lw.pair("R0", f.R0, "R1", f.R1)
	lw.pair("R2", f.R2, "R3", f.R3)
	lw.pair("R12", f.R12, "LR", f.LR)
	lw.pair("PC", f.PC, "PSR", f.PSR)
	lw.pair("HFSR", r.HFSR, "CFSR", r.CFSR)

	lw.str("Fault address=")
	lw.hex(r.Addr, 8)
	lw.end()
	lw.str("Checksum=")
	lw.hex(uint32(r.Checksum()), 2)
	lw.end()
}

const hexDigits = "0123456789abcdef"

// lineWriter formats a line into its own buffer and hands it to w in a single
// Write. It doesn't allocate, so a static lineWriter can be used in fault
// context.
type lineWriter struct {
	w   io.Writer
	buf [64]byte
	len int
	n   int64
	err error
}

//go:nosplit
func (lw *lineWriter) str(s string) {
	lw.len += copy(lw.buf[lw.len:], s)
}

//go:nosplit
func (lw *lineWriter) hex(v uint32, digits int) {
	for i := digits - 1; i >= 0; i-- {
		lw.buf[lw.len+i] = hexDigits[v&0xf]
		v >>= 4
	}
	lw.len += digits
}

//go:nosplit
func (lw *lineWriter) pair(k1 string, v1 uint32, k2 string, v2 uint32) {
	lw.str(k1)
	lw.str("=")
	lw.hex(v1, 8)
	lw.str(" ")
	lw.str(k2)
	lw.str("=")
	lw.hex(v2, 8)
	lw.end()
}

//go:nosplit
func (lw *lineWriter) reset() {
	lw.len, lw.n, lw.err = 0, 0, nil
}

func (lw *lineWriter) end() {
	lw.str("\r\n")
	lw.flush()
}

// blank writes the empty line after the header. It's a bare newline, other
// lines end in CRLF.
func (lw *lineWriter) blank() {
	lw.str("\n")
	lw.flush()
}

func (lw *lineWriter) flush() {
	if lw.err == nil && lw.w != nil {
		var n int
		n, lw.err = lw.w.Write(lw.buf[:lw.len])
		lw.n += int64(n)
	}
	lw.len = 0
}
