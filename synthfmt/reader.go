// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package synthfmt

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// A Reader reads measurements from a synthesis report.
//
// Its API is modeled on bufio.Scanner. Unlike benchmark readers that
// reuse a single result, every Record returned by a Reader is freshly
// allocated and may be retained by the caller.
//
// To construct a new Reader, either call NewReader, or call Reset on
// a zeroed Reader.
type Reader struct {
	br  *bufio.Reader
	buf []byte // current line
	err error  // current I/O error

	// q is the queue of records produced by the current line.
	// A single line may match more than one marker pair.
	q    []Record
	qPos int

	fileName string
	line     int
}

// A SyntaxError represents a line that carried a known marker pair
// but whose numeric fields could not be parsed.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// A Measurement is a single value reported for a target frequency.
//
// For AchievedFrequency, Value is the achieved frequency in MHz and
// the Measurement starts a new trial.
type Measurement struct {
	Metric Metric
	Target float64 // target clock frequency, MHz
	Value  float64

	fileName string
	line     int
}

// Pos returns the file name and line number the Measurement was read
// from.
func (m *Measurement) Pos() (fileName string, line int) {
	return m.fileName, m.line
}

// A Record is a single record read from a synthesis report. It is
// either a *Measurement or a *SyntaxError.
type Record interface {
	// Pos returns the position of this record as a file name and a
	// 1-based line number within that file.
	Pos() (fileName string, line int)
}

var _ Record = (*Measurement)(nil)
var _ Record = (*SyntaxError)(nil)

var noResult = &SyntaxError{"", 0, "Reader.Scan has not been called"}

// NewReader constructs a reader to parse a synthesis report from r.
// fileName is used in error messages; it is purely diagnostic.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// maxLine bounds the length of a single log line. Longer lines are
// skipped with a *SyntaxError and reading continues.
const maxLine = 1 << 20

// Reset resets the reader to begin reading from a new input.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if r.br == nil {
		r.br = bufio.NewReader(ior)
	} else {
		r.br.Reset(ior)
	}
	r.buf = r.buf[:0]
	if fileName == "" {
		fileName = "<unknown>"
	}
	r.fileName = fileName
	r.line = 0
	r.err = nil
	r.qPos = 0
	r.q = r.q[:0]
}

// A matcher extracts one metric from lines that contain both the
// common "Frequency:" marker and the metric's own marker.
type matcher struct {
	metric Metric
	marker string
	value  *regexp.Regexp
	// integer requests strict integer parsing of the value.
	integer bool
}

const freqMarker = "Frequency:"

// targetRE matches the first "Frequency: <f> MHz" on a line, which is
// always the target frequency.
var targetRE = regexp.MustCompile(`Frequency:\s*(\S+?)\s*MHz`)

var matchers = []matcher{
	{AchievedFrequency, "Achieved Frequency:", regexp.MustCompile(`Achieved Frequency:\s*(\S+?)\s*MHz`), false},
	{Power, "Power:", regexp.MustCompile(`Power:\s*(\S+?)\s*W`), false},
	{LUTsUsed, "CLB LUTs Used:", regexp.MustCompile(`CLB LUTs Used:\s*(\S+)\s*$`), true},
	{LUTsUtil, "CLB LUTs Util%:", regexp.MustCompile(`CLB LUTs Util%:\s*([^\s%]+)`), false},
	{RegistersUsed, "CLB Registers Used:", regexp.MustCompile(`CLB Registers Used:\s*(\S+)\s*$`), true},
	{RegistersUtil, "CLB Registers Util%:", regexp.MustCompile(`CLB Registers Util%:\s*([^\s%]+)`), false},
	{BRAMUsed, "BRAM Util:", regexp.MustCompile(`BRAM Util:\s*(\S+)\s*$`), false},
	{BRAMUtil, "BRAM Util%:", regexp.MustCompile(`BRAM Util%:\s*([^\s%]+)`), false},
}

// Scan advances the reader to the next record and reports whether a
// record was read.
// The caller should use the Result method to get the record.
// If Scan reaches EOF or an I/O error occurs, it returns false,
// in which case the caller should use the Err method to check for errors.
func (r *Reader) Scan() bool {
	if r.err != nil {
		return false
	}

	if r.qPos+1 < len(r.q) {
		r.qPos++
		return true
	}
	r.qPos = 0
	r.q = r.q[:0]

	for len(r.q) == 0 {
		tooLong, err := r.readLine()
		if err == io.EOF {
			return false
		} else if err != nil {
			r.err = fmt.Errorf("%s:%d: %w", r.fileName, r.line+1, err)
			return false
		}
		r.line++
		if tooLong {
			r.q = append(r.q, r.newSyntaxError(fmt.Sprintf("line longer than %d bytes", maxLine)))
			break
		}
		line := strings.TrimSpace(string(r.buf))
		if !strings.Contains(line, freqMarker) {
			continue
		}
		for i := range matchers {
			m := &matchers[i]
			if !strings.Contains(line, m.marker) {
				continue
			}
			r.q = append(r.q, r.parseLine(m, line))
		}
	}
	return true
}

// readLine reads the next line into r.buf, without its terminator.
// A line longer than maxLine is consumed but not kept, and readLine
// reports tooLong. It returns io.EOF only when no input remains.
func (r *Reader) readLine() (tooLong bool, err error) {
	r.buf = r.buf[:0]
	n := 0
	for {
		frag, err := r.br.ReadSlice('\n')
		n += len(frag)
		if !tooLong {
			r.buf = append(r.buf, frag...)
			// Leave room for a CRLF terminator.
			if len(r.buf) > maxLine+2 {
				tooLong = true
				r.buf = r.buf[:0]
			}
		}
		switch err {
		case bufio.ErrBufferFull:
			continue
		case nil, io.EOF:
			if err == io.EOF && n == 0 {
				return false, io.EOF
			}
			if tooLong {
				return true, nil
			}
			r.buf = trimEOL(r.buf)
			return len(r.buf) > maxLine, nil
		default:
			return false, err
		}
	}
}

func trimEOL(b []byte) []byte {
	if len(b) > 0 && b[len(b)-1] == '\n' {
		b = b[:len(b)-1]
	}
	if len(b) > 0 && b[len(b)-1] == '\r' {
		b = b[:len(b)-1]
	}
	return b
}

// parseLine extracts m's measurement from line. It returns a
// *SyntaxError if either number is missing or malformed.
func (r *Reader) parseLine(m *matcher, line string) Record {
	sub := targetRE.FindStringSubmatch(line)
	if sub == nil {
		return r.newSyntaxError("missing target frequency")
	}
	target, err := strconv.ParseFloat(sub[1], 64)
	if err != nil {
		return r.newSyntaxError(fmt.Sprintf("parsing target frequency %q", sub[1]))
	}

	sub = m.value.FindStringSubmatch(line)
	if sub == nil {
		return r.newSyntaxError("missing " + m.metric.Label())
	}
	var val float64
	if m.integer {
		n, err := strconv.Atoi(sub[1])
		if err != nil {
			return r.newSyntaxError(fmt.Sprintf("parsing %s %q", m.metric.Label(), sub[1]))
		}
		val = float64(n)
	} else {
		val, err = strconv.ParseFloat(sub[1], 64)
		if err != nil {
			return r.newSyntaxError(fmt.Sprintf("parsing %s %q", m.metric.Label(), sub[1]))
		}
	}
	return &Measurement{m.metric, target, val, r.fileName, r.line}
}

func (r *Reader) newSyntaxError(msg string) *SyntaxError {
	return &SyntaxError{r.fileName, r.line, msg}
}

// Result returns the record that was just read by Scan. This is either
// a *Measurement or a *SyntaxError indicating a parse error.
//
// Parse errors are non-fatal, so the caller can continue to call
// Scan.
func (r *Reader) Result() Record {
	if r.qPos >= len(r.q) {
		return noResult
	}
	return r.q[r.qPos]
}

// Err returns the first non-EOF I/O error that was encountered by the
// Reader.
func (r *Reader) Err() error {
	return r.err
}
