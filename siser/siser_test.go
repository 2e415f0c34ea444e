package siser

import (
	"bytes"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalLine(t *testing.T) {
	fixedTime := time.Date(2024, 1, 15, 10, 30, 45, 123000000, time.UTC)
	fixedTimeMs := strconv.FormatInt(TimeToUnixMillisecond(fixedTime), 10)

	tests := []struct {
		name     string
		dataName string
		t        time.Time
		d        []byte
		expected string
	}{
		{"all fields", "saying.create", fixedTime, []byte("id: 1"), "--- 5 " + fixedTimeMs + " saying.create\nid: 1\n"},
		{"empty name", "", fixedTime, []byte("id: 1"), "--- 5 " + fixedTimeMs + "\nid: 1\n"},
		{"zero time", "saying.create", time.Time{}, []byte("id: 1"), "--- 5 saying.create\nid: 1\n"},
		{"nil data", "saying.export", fixedTime, nil, "--- 0 " + fixedTimeMs + " saying.export\n"},
		{"data with newline", "x", time.Time{}, []byte("id: 1\n"), "--- 6 x\nid: 1\n"},
		{"all empty", "", time.Time{}, []byte{}, "--- 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			got := MarshalLine(tt.dataName, tt.t, tt.d, &buf)
			assert.Equal(t, tt.expected, string(got))
			assert.Equal(t, buf.Bytes(), got)
		})
	}

	got := MarshalLineNoTime("saying.delete", []byte("id: 3"), nil)
	assert.Equal(t, "--- 5 saying.delete\nid: 3\n", string(got))
}

func TestParseHeader(t *testing.T) {
	fixedTime := time.Date(2024, 1, 15, 10, 30, 45, 123000000, time.UTC)
	line := MarshalLine("saying.create", fixedTime, []byte("id: 1"), nil)
	hdr, _, _ := bytes.Cut(line, []byte("\n"))

	h, err := ParseHeader(string(hdr))
	require.NoError(t, err)
	assert.Equal(t, 5, h.Size)
	assert.True(t, fixedTime.Equal(h.Timestamp))
	assert.Equal(t, "saying.create", h.Name)

	h, err = ParseHeader("--- 0 name with spaces")
	require.NoError(t, err)
	assert.True(t, h.Timestamp.IsZero())
	assert.Equal(t, "name with spaces", h.Name)

	_, err = ParseHeader("-- 0")
	assert.Error(t, err)
	_, err = ParseHeader("--- x")
	assert.Error(t, err)
}
