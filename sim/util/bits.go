package util

import (
	"fmt"
	"strconv"
	"strings"
)

const BitsPerByte = 8

// FormatBits renders a byte as an 8-character binary string, MSB first.
func FormatBits(b byte) string {
	var out [BitsPerByte]byte
	for i := 0; i < BitsPerByte; i++ {
		if b&(1<<(BitsPerByte-1-i)) != 0 {
			out[i] = '1'
		} else {
			out[i] = '0'
		}
	}
	return string(out[:])
}

// ParseBits decodes an 8-character binary string produced by FormatBits.
func ParseBits(s string) (byte, error) {
	if len(s) != BitsPerByte {
		return 0, fmt.Errorf("invalid binary field length %d: %q", len(s), s)
	}
	u, err := strconv.ParseUint(s, 2, BitsPerByte)
	if err != nil {
		return 0, fmt.Errorf("invalid binary field %q: %w", s, err)
	}
	return byte(u), nil
}

// ParseBit decodes a single "0"/"1" column.
func ParseBit(s string) (bool, error) {
	switch s {
	case "0":
		return false, nil
	case "1":
		return true, nil
	default:
		return false, fmt.Errorf("invalid bit field %q", s)
	}
}

func FormatBit(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// StringBytes renders a byte slice as hex pairs for log lines.
func StringBytes(data []byte) string {
	var mid []string
	for _, b := range data {
		mid = append(mid, fmt.Sprintf("%02x", b))
	}
	return strings.Join(mid, " ")
}
