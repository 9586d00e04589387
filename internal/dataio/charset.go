package dataio

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// decodePayload converts raw file bytes to UTF-8. UTF-16 is recognized
// by its byte order mark; payloads that are not valid UTF-8 are decoded
// as Windows-1252, which maps every byte and therefore cannot fail.
// Returns the decoded bytes and the charset name used.
func decodePayload(data []byte) ([]byte, string, error) {
	switch {
	case bytes.HasPrefix(data, bomUTF16LE):
		decoded, err := decodeUTF16(data, unicode.LittleEndian)
		return decoded, "utf-16le", err

	case bytes.HasPrefix(data, bomUTF16BE):
		decoded, err := decodeUTF16(data, unicode.BigEndian)
		return decoded, "utf-16be", err

	case bytes.HasPrefix(data, bomUTF8):
		return data[len(bomUTF8):], "utf-8", nil

	case utf8.Valid(data):
		return data, "utf-8", nil

	default:
		decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
		if err != nil {
			return nil, "", fmt.Errorf("failed to decode windows-1252 payload: %w", err)
		}
		return decoded, "windows-1252", nil
	}
}

func decodeUTF16(data []byte, endianness unicode.Endianness) ([]byte, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	decoded, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode utf-16 payload: %w", err)
	}
	return decoded, nil
}

// sniffDelimiter inspects the header line and picks the separator with
// the highest occurrence count. Comma wins ties and empty headers.
func sniffDelimiter(data []byte) rune {
	line := data
	if idx := bytes.IndexByte(data, '\n'); idx >= 0 {
		line = data[:idx]
	}

	best := ','
	bestCount := bytes.Count(line, []byte{','})
	for _, candidate := range []byte{';', '\t', '|'} {
		if count := bytes.Count(line, []byte{candidate}); count > bestCount {
			best = rune(candidate)
			bestCount = count
		}
	}
	return best
}
