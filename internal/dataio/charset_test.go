package dataio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodePayload(t *testing.T) {
	utf16le := []byte{0xFF, 0xFE, 'a', 0x00, ',', 0x00, 'b', 0x00}
	utf16be := []byte{0xFE, 0xFF, 0x00, 'a', 0x00, ',', 0x00, 'b'}

	tests := []struct {
		name        string
		input       []byte
		wantText    string
		wantCharset string
	}{
		{"plain utf-8", []byte("a,b\n1,2\n"), "a,b\n1,2\n", "utf-8"},
		{"utf-8 with bom", append([]byte{0xEF, 0xBB, 0xBF}, []byte("a,b")...), "a,b", "utf-8"},
		{"utf-16 little endian", utf16le, "a,b", "utf-16le"},
		{"utf-16 big endian", utf16be, "a,b", "utf-16be"},
		{"windows-1252 high bytes", []byte{'c', 'a', 'f', 0xE9}, "café", "windows-1252"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, charset, err := decodePayload(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.wantText, string(decoded))
			assert.Equal(t, tt.wantCharset, charset)
		})
	}
}

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"semicolon", "a;b;c\n", ';'},
		{"tab", "a\tb\tc\n", '\t'},
		{"pipe", "a|b|c\n", '|'},
		{"tie goes to comma", "a,b;c;d,e\n", ','},
		{"single column", "alone\n", ','},
		{"only header line considered", "a;b\n1,2,3,4,5\n", ';'},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sniffDelimiter([]byte(tt.input)))
		})
	}
}
