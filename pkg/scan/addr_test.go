package scan

import "testing"

func TestParseIPv4(t *testing.T) {
	tests := []struct {
		in   string
		want [4]byte
		ok   bool
	}{
		{"192.168.1.1", [4]byte{192, 168, 1, 1}, true},
		{"0.0.0.0", [4]byte{0, 0, 0, 0}, true},
		{"255.255.255.255", [4]byte{255, 255, 255, 255}, true},
		{"10.0.0.1", [4]byte{10, 0, 0, 1}, true},
		{"256.1.1.1", [4]byte{}, false},
		{"1.1.1", [4]byte{}, false},
		{"1.1.1.1.1", [4]byte{}, false},
		{"abc", [4]byte{}, false},
		{"", [4]byte{}, false},
		{"1..2.3", [4]byte{}, false},
		{"1.2.3.", [4]byte{}, false},
		{".1.2.3", [4]byte{}, false},
		{"1.2.3.4x", [4]byte{}, false},
		{"1234.1.1.1", [4]byte{}, false},
		{" 1.2.3.4", [4]byte{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseIPv4(tt.in)
		if ok != tt.ok {
			t.Errorf("ParseIPv4(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			continue
		}

		if ok && got != tt.want {
			t.Errorf("ParseIPv4(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func BenchmarkParseIPv4(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ParseIPv4("192.168.100.200")
	}
}
