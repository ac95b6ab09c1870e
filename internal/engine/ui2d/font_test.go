package ui2d

import "testing"

func TestGlyphAtlasLayout(t *testing.T) {
	a := newGlyphAtlas()
	w, h := a.GlyphSize()
	if w != 7 || h != 13 {
		t.Fatalf("GlyphSize = %dx%d, want 7x13", w, h)
	}
	if a.img.Rect.Dx() != atlasCols*7 || a.img.Rect.Dy() != a.rows*13 {
		t.Errorf("atlas size = %v", a.img.Rect)
	}

	u0, v0, u1, v1 := a.GetGlyphUV(' ')
	if u0 != 0 || v0 != 0 || u1 <= u0 || v1 <= v0 {
		t.Errorf("space UV = %v %v %v %v", u0, v0, u1, v1)
	}

	// Characters outside the atlas share the replacement cell.
	r := [4]float32{}
	r[0], r[1], r[2], r[3] = a.GetGlyphUV('é')
	q := [4]float32{}
	q[0], q[1], q[2], q[3] = a.GetGlyphUV('中')
	if r != q {
		t.Errorf("replacement UVs differ: %v vs %v", r, q)
	}
}

func TestGlyphAtlasHasInk(t *testing.T) {
	a := newGlyphAtlas()
	i := a.index('A')
	col, row := i%a.cols, i/a.cols
	var ink int
	for y := row * a.cellH; y < (row+1)*a.cellH; y++ {
		for x := col * a.cellW; x < (col+1)*a.cellW; x++ {
			if a.img.RGBAAt(x, y).A > 0 {
				ink++
			}
		}
	}
	if ink == 0 {
		t.Error("glyph A is blank")
	}

	i = a.index(' ')
	col, row = i%a.cols, i/a.cols
	for y := row * a.cellH; y < (row+1)*a.cellH; y++ {
		for x := col * a.cellW; x < (col+1)*a.cellW; x++ {
			if a.img.RGBAAt(x, y).A > 0 {
				t.Fatal("space glyph has ink")
			}
		}
	}
}

func TestMeasureText(t *testing.T) {
	a := newGlyphAtlas()
	tests := []struct {
		text string
		w, h float32
	}{
		{"", 0, 0},
		{"abc", 21 * 2, 13 * 2},
		{"ab\nabcd", 28 * 2, 26 * 2},
	}
	for _, tt := range tests {
		w, h := a.MeasureText(tt.text, 2)
		if w != tt.w || h != tt.h {
			t.Errorf("MeasureText(%q) = %v,%v want %v,%v", tt.text, w, h, tt.w, tt.h)
		}
	}
}
