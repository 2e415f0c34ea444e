package store

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Record is a single saying
type Record struct {
	ID      int
	Content string
	Author  string
}

var (
	rxID      = regexp.MustCompile(`(?m)^\s*"id"\s*:\s*(\d+)`)
	rxContent = regexp.MustCompile(`(?m)^\s*"content"\s*:\s*"(.*)"`)
	rxAuthor  = regexp.MustCompile(`(?m)^\s*"author"\s*:\s*"(.*)"`)
)

// Escape quotes s for a record file and escapes backslash,
// double quote, CR and LF
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\r':
			sb.WriteString(`\r`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteByte(c)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// Unescape reverses Escape for a value without the surrounding quotes.
// Unknown escape sequences are kept as-is.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	sb.Grow(len(s))
	n := len(s)
	for i := 0; i < n; i++ {
		c := s[i]
		if c != '\\' || i == n-1 {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case '\\':
			sb.WriteByte('\\')
		case '"':
			sb.WriteByte('"')
		case 'r':
			sb.WriteByte('\r')
		case 'n':
			sb.WriteByte('\n')
		default:
			sb.WriteByte('\\')
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}

// appendFields writes the three fields of r with a given indent
func appendFields(sb *strings.Builder, r Record, indent string) {
	sb.WriteString(indent)
	sb.WriteString(`"id": `)
	sb.WriteString(strconv.Itoa(r.ID))
	sb.WriteString(",\n")
	sb.WriteString(indent)
	sb.WriteString(`"content": `)
	sb.WriteString(Escape(r.Content))
	sb.WriteString(",\n")
	sb.WriteString(indent)
	sb.WriteString(`"author": `)
	sb.WriteString(Escape(r.Author))
	sb.WriteString("\n")
}

// FormatRecord serializes r in the format of a per-record file
func FormatRecord(r Record) []byte {
	var sb strings.Builder
	sb.WriteString("{\n")
	appendFields(&sb, r, "  ")
	sb.WriteString("}\n")
	return []byte(sb.String())
}

// ParseRecord parses the content of a per-record file.
// All three fields must be present.
func ParseRecord(d []byte) (Record, error) {
	var r Record
	s := string(d)
	m := rxID.FindStringSubmatch(s)
	if m == nil {
		return r, fmt.Errorf("missing id")
	}
	id, err := strconv.Atoi(m[1])
	if err != nil || id <= 0 {
		return r, fmt.Errorf("invalid id '%s'", m[1])
	}
	m = rxContent.FindStringSubmatch(s)
	if m == nil {
		return r, fmt.Errorf("missing content")
	}
	r.Content = Unescape(m[1])
	m = rxAuthor.FindStringSubmatch(s)
	if m == nil {
		return r, fmt.Errorf("missing author")
	}
	r.Author = Unescape(m[1])
	r.ID = id
	return r, nil
}

// FormatExport serializes records (expected to be sorted by id)
// as one array-like block
func FormatExport(records []Record) []byte {
	var sb strings.Builder
	sb.WriteString("[\n")
	last := len(records) - 1
	for i, r := range records {
		sb.WriteString("  {\n")
		appendFields(&sb, r, "    ")
		sb.WriteString("  }")
		if i != last {
			sb.WriteString(",")
		}
		sb.WriteString("\n")
	}
	sb.WriteString("]\n")
	return []byte(sb.String())
}
