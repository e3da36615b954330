package dim

import (
	"image/color"
	"testing"
)

// Verify at compile time that RGBA implements color.Color.
var _ color.Color = RGBA{}

func diff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}
	return b - a
}

func TestRGBA_ColorInterface(t *testing.T) {
	tests := []struct {
		name                       string
		c                          RGBA
		wantR, wantG, wantB, wantA uint32
	}{
		{
			name:  "opaque black",
			c:     Black,
			wantR: 0, wantG: 0, wantB: 0, wantA: 65535,
		},
		{
			name:  "opaque white",
			c:     White,
			wantR: 65535, wantG: 65535, wantB: 65535, wantA: 65535,
		},
		{
			name:  "transparent",
			c:     Transparent,
			wantR: 0, wantG: 0, wantB: 0, wantA: 0,
		},
		{
			name:  "50% alpha red",
			c:     RGBA{1, 0, 0, 0.5},
			wantR: 32767, wantG: 0, wantB: 0, wantA: 32767,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, g, b, a := tt.c.RGBA()
			if diff(r, tt.wantR) > 1 || diff(g, tt.wantG) > 1 || diff(b, tt.wantB) > 1 || diff(a, tt.wantA) > 1 {
				t.Errorf("RGBA() = (%d, %d, %d, %d), want (%d, %d, %d, %d)",
					r, g, b, a, tt.wantR, tt.wantG, tt.wantB, tt.wantA)
			}
		})
	}
}

func TestHex(t *testing.T) {
	tests := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ffcc00", color.NRGBA{255, 204, 0, 255}},
		{"ffcc00", color.NRGBA{255, 204, 0, 255}},
		{"#FC0", color.NRGBA{255, 204, 0, 255}},
		{"#fc08", color.NRGBA{255, 204, 0, 136}},
		{"#00000080", color.NRGBA{0, 0, 0, 128}},
		{"", color.NRGBA{0, 0, 0, 255}},
		{"#12345", color.NRGBA{0, 0, 0, 255}},
	}
	for _, tt := range tests {
		if got := Hex(tt.in).Color(); got != tt.want {
			t.Errorf("Hex(%q).Color() = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFromColor(t *testing.T) {
	got := FromColor(color.NRGBA{255, 0, 0, 255})
	if got != RGB(1, 0, 0) {
		t.Errorf("FromColor(red) = %v", got)
	}
	if !FromColor(color.Transparent).IsTransparent() {
		t.Error("FromColor(transparent) is not transparent")
	}
}

func TestRGBA_CSS(t *testing.T) {
	tests := []struct {
		c    RGBA
		want string
	}{
		{Transparent, "transparent"},
		{RGBA{1, 1, 1, 0}, "transparent"},
		{Black, "black"},
		{White, "rgba(255,255,255,1)"},
		{RGBA{1, 0.8, 0, 0.5}, "rgba(255,204,0,0.5)"},
	}
	for _, tt := range tests {
		if got := tt.c.CSS(); got != tt.want {
			t.Errorf("%v.CSS() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestRGBA_Lerp(t *testing.T) {
	mid := Transparent.Lerp(Black, 0.5)
	if mid != (RGBA{0, 0, 0, 0.5}) {
		t.Errorf("Lerp(0.5) = %v", mid)
	}
	if Black.Lerp(White, 0) != Black || Black.Lerp(White, 1) != White {
		t.Error("Lerp endpoints mismatch")
	}
}
