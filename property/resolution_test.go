// property/resolution_test.go
package property

import "testing"

func TestResolutionDecodeTable(t *testing.T) {
	cases := []struct {
		r     Resolution
		coeff uint8
		shift int8
		scale float64
		name  string
	}{
		{ResX1, 1, 0, 1.0, "x1"},
		{ResX5, 5, 0, 5.0, "x5"},
		{ResX10, 1, 1, 10.0, "x10"},
		{ResX50, 5, 1, 50.0, "x50"},
		{ResX001, 1, -2, 0.01, "x0.01"},
		{ResX005, 5, -2, 0.05, "x0.05"},
		{ResX01, 1, -1, 0.1, "x0.1"},
		{ResX05, 5, -1, 0.5, "x0.5"},
	}
	for _, c := range cases {
		if got := c.r.Coefficient(); got != c.coeff {
			t.Errorf("%s: Coefficient() = %d, want %d", c.name, got, c.coeff)
		}
		if got := c.r.Shift(); got != c.shift {
			t.Errorf("%s: Shift() = %d, want %d", c.name, got, c.shift)
		}
		if got := c.r.ScaleFactor(); !closeEnough(got, c.scale) {
			t.Errorf("%s: ScaleFactor() = %v, want %v", c.name, got, c.scale)
		}
		if got := c.r.String(); got != c.name {
			t.Errorf("raw %d: String() = %q, want %q", c.r, got, c.name)
		}
	}
}

func closeEnough(a, b float64) bool {
	d := a - b
	if d < 0 {
		d = -d
	}
	return d < 1e-12
}

func TestResolutionFromRawMasks(t *testing.T) {
	if ResolutionFromRaw(0xFF) != ResX05 {
		t.Error("fromRaw must mask to the low 3 bits")
	}
	if ResolutionFromRaw(0b1000) != ResX1 {
		t.Error("fromRaw must ignore bit 3 and above")
	}
	for raw := 0; raw < 256; raw++ {
		r := ResolutionFromRaw(byte(raw))
		if r > 7 {
			t.Fatalf("fromRaw(%#x) out of range: %d", raw, r)
		}
	}
}

func TestPermissionTable(t *testing.T) {
	cases := []struct {
		p          Permission
		read, wrt  bool
		name       string
	}{
		{PermNone, false, false, "none"},
		{PermWriteOnly, false, true, "write-only"},
		{PermReadOnly, true, false, "read-only"},
		{PermReadWrite, true, true, "read-write"},
	}
	for _, c := range cases {
		if c.p.CanRead() != c.read {
			t.Errorf("%s: CanRead() = %v", c.name, c.p.CanRead())
		}
		if c.p.CanWrite() != c.wrt {
			t.Errorf("%s: CanWrite() = %v", c.name, c.p.CanWrite())
		}
		if c.p.String() != c.name {
			t.Errorf("raw %d: String() = %q, want %q", c.p, c.p.String(), c.name)
		}
	}
	if PermissionFromRaw(0b111) != PermReadWrite {
		t.Error("fromRaw must mask to the low 2 bits")
	}
}
