// Package siser frames blocks of data as human-readable records:
//
//	--- <len> [<unix ms>] [<name>]\n
//	<data>\n
//
// A newline is added after data if it doesn't end with one.
package siser

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var hdrPrefix = []byte("--- ")

// Header is the parsed first line of a record
type Header struct {
	Size      int
	Timestamp time.Time
	Name      string
}

// TimeToUnixMillisecond converts t into Unix epoch time in milliseconds.
// That's because seconds is not enough precision and nanoseconds is too much.
func TimeToUnixMillisecond(t time.Time) int64 {
	return t.UnixMilli()
}

// TimeFromUnixMillisecond returns time from Unix epoch time in milliseconds.
func TimeFromUnixMillisecond(unixMs int64) time.Time {
	return time.UnixMilli(unixMs)
}

func MarshalLineNoTime(name string, d []byte, wb *bytes.Buffer) []byte {
	return MarshalLine(name, time.Time{}, d, wb)
}

// MarshalLine serializes d as a record. If t is time.Zero(), it's not marshalled.
// If wb is given, it's re-used and the result is valid until next use of wb.
func MarshalLine(name string, t time.Time, d []byte, wb *bytes.Buffer) []byte {
	if wb == nil {
		wb = &bytes.Buffer{}
	} else {
		wb.Reset()
	}
	// it's ok to estimate more, estimating less will require an alloc
	wb.Grow(len(hdrPrefix) + len(name) + len(d) + 32)

	wb.Write(hdrPrefix)
	dataLen := len(d)
	wb.WriteString(strconv.Itoa(dataLen))
	if !t.IsZero() {
		wb.WriteByte(' ')
		wb.WriteString(strconv.FormatInt(TimeToUnixMillisecond(t), 10))
	}
	if name != "" {
		wb.WriteByte(' ')
		wb.WriteString(name)
	}
	wb.WriteByte('\n')
	if dataLen > 0 {
		wb.Write(d)
		if d[dataLen-1] != '\n' {
			wb.WriteByte('\n')
		}
	}
	return wb.Bytes()
}

// ParseHeader parses a header line (without the trailing newline).
// A name that looks like a number is ambiguous with a timestamp,
// so names should not start with a digit.
func ParseHeader(line string) (*Header, error) {
	rest, ok := strings.CutPrefix(line, string(hdrPrefix))
	if !ok {
		return nil, fmt.Errorf("invalid header '%s'", line)
	}
	parts := strings.SplitN(rest, " ", 3)
	size, err := strconv.Atoi(parts[0])
	if err != nil || size < 0 {
		return nil, fmt.Errorf("invalid size in header '%s'", line)
	}
	res := &Header{Size: size}
	parts = parts[1:]
	if len(parts) > 0 {
		if ms, err := strconv.ParseInt(parts[0], 10, 64); err == nil {
			res.Timestamp = TimeFromUnixMillisecond(ms)
			parts = parts[1:]
		}
	}
	res.Name = strings.Join(parts, " ")
	return res, nil
}
