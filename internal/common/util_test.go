package common

import (
	"testing"
)

// ---------- WipeByteArray ----------

func TestWipeByteArray_ZerosBuffer(t *testing.T) {
	buf := []byte("s3cret!")
	WipeByteArray(buf)
	for i, v := range buf {
		if v != 0 {
			t.Fatalf("expected buf[%d]==0, got %d", i, v)
		}
	}
}

func TestWipeByteArray_NilSafe(t *testing.T) {
	WipeByteArray(nil)
}

// ---------- NormalizeIdentifier ----------

func TestNormalizeIdentifier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"a@b.com", "a@b.com"},
		{"  A@B.com\n", "A@b.com"},
		{"Ann.Lee@Example.COM", "Ann.Lee@example.com"},
		{"no-at-sign ", "no-at-sign"},
		{"", ""},
		{"   ", ""},
	}
	for _, tc := range tests {
		if got := NormalizeIdentifier(tc.in); got != tc.want {
			t.Fatalf("NormalizeIdentifier(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
