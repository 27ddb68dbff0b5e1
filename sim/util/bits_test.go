package util

import "testing"

func TestFormatBits(t *testing.T) {
	cases := []struct {
		b    byte
		want string
	}{
		{0x00, "00000000"},
		{0xFF, "11111111"},
		{0x03, "00000011"},
		{0x80, "10000000"},
		{0xA5, "10100101"},
	}
	for _, c := range cases {
		if got := FormatBits(c.b); got != c.want {
			t.Errorf("FormatBits(%#02x) = %q, want %q", c.b, got, c.want)
		}
		back, err := ParseBits(c.want)
		if err != nil {
			t.Errorf("ParseBits(%q) failed: %v", c.want, err)
		} else if back != c.b {
			t.Errorf("ParseBits(%q) = %#02x, want %#02x", c.want, back, c.b)
		}
	}
}

func TestParseBitsRejects(t *testing.T) {
	for _, s := range []string{"", "0000000", "000000000", "0000002x", "0000 000"} {
		if _, err := ParseBits(s); err == nil {
			t.Errorf("ParseBits(%q) unexpectedly succeeded", s)
		}
	}
}

func TestParseBit(t *testing.T) {
	if v, err := ParseBit("1"); err != nil || !v {
		t.Errorf("ParseBit(1) = %v, %v", v, err)
	}
	if v, err := ParseBit("0"); err != nil || v {
		t.Errorf("ParseBit(0) = %v, %v", v, err)
	}
	if _, err := ParseBit("2"); err == nil {
		t.Errorf("ParseBit(2) unexpectedly succeeded")
	}
}
