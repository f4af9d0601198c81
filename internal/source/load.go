// Package source is the boundary that resolves §6's "the implementation
// fixes one" code-unit choice for calfront: NAV object export files are
// very commonly UTF-16LE, but the lexer operates on Go's native UTF-8
// strings/runes. Load detects the file's encoding from its BOM (or absence
// of one) and decodes it to UTF-8 before the lexer ever sees it.
//
// Grounded on CWBudde-go-dws's internal/interp/encoding.go
// detectAndDecodeFile/decodeUTF16, generalized from a single "read this one
// script file" helper into a small reusable loader.
package source

import (
	"bytes"
	"fmt"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding identifies the detected source encoding.
type Encoding int

const (
	UTF8 Encoding = iota
	UTF8BOM
	UTF16LE
	UTF16BE
)

func (e Encoding) String() string {
	switch e {
	case UTF8BOM:
		return "UTF-8 (BOM)"
	case UTF16LE:
		return "UTF-16LE"
	case UTF16BE:
		return "UTF-16BE"
	default:
		return "UTF-8"
	}
}

// File is a decoded source file ready for the lexer.
type File struct {
	Path     string
	Text     string
	Encoding Encoding
}

// Load reads the file at path and decodes it to UTF-8, detecting UTF-8
// (with or without BOM) and UTF-16 (LE/BE, with or without BOM) from its
// leading bytes. Without a BOM, UTF-16 is recognized when the data has an
// even length and exactly one of its first two bytes is zero.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("source: read %s: %w", path, err)
	}
	text, enc, err := Decode(data)
	if err != nil {
		return File{}, fmt.Errorf("source: decode %s: %w", path, err)
	}
	return File{Path: path, Text: text, Encoding: enc}, nil
}

// Decode detects data's encoding and returns the UTF-8 text it contains.
func Decode(data []byte) (string, Encoding, error) {
	switch {
	case len(data) >= 3 && data[0] == 0xEF && data[1] == 0xBB && data[2] == 0xBF:
		return string(data[3:]), UTF8BOM, nil

	case len(data) >= 2 && data[0] == 0xFF && data[1] == 0xFE:
		text, err := decodeUTF16(data, unicode.LittleEndian)
		return text, UTF16LE, err

	case len(data) >= 2 && data[0] == 0xFE && data[1] == 0xFF:
		text, err := decodeUTF16(data, unicode.BigEndian)
		return text, UTF16BE, err

	case len(data) >= 2 && len(data)%2 == 0 && data[0] != 0 && data[1] == 0:
		text, err := decodeUTF16(data, unicode.LittleEndian)
		return text, UTF16LE, err

	case len(data) >= 2 && len(data)%2 == 0 && data[0] == 0 && data[1] != 0:
		text, err := decodeUTF16(data, unicode.BigEndian)
		return text, UTF16BE, err

	case utf8.Valid(data):
		return string(data), UTF8, nil

	default:
		// No BOM, and not valid UTF-8 outright: NAV exports this small are
		// rare, but widen each byte to a rune rather than fail the load.
		runes := make([]rune, len(data))
		for i, b := range data {
			runes[i] = rune(b)
		}
		return string(runes), UTF8, nil
	}
}

func decodeUTF16(data []byte, endianness unicode.Endianness) (string, error) {
	decoder := unicode.UTF16(endianness, unicode.UseBOM).NewDecoder()
	utf8Data, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decode UTF-16: %w", err)
	}
	result := bytes.TrimPrefix(utf8Data, []byte{0xEF, 0xBB, 0xBF})
	result = bytes.TrimPrefix(result, []byte("﻿"))
	return string(result), nil
}
