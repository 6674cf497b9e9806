package source

import (
	"image/color"
	"testing"
)

func TestQuantizedRoundTrip(t *testing.T) {
	img := stripeImage(8, 4, color.NRGBA{R: 255, A: 255}, color.NRGBA{B: 255, A: 255})
	q, err := Quantize(img, 2)
	if err != nil {
		t.Fatalf("Quantize error: %v", err)
	}

	data, err := q.Encode()
	if err != nil {
		t.Fatalf("Encode error: %v", err)
	}

	restored, err := DecodeQuantized(data)
	if err != nil {
		t.Fatalf("DecodeQuantized error: %v", err)
	}

	w, h := restored.Bounds()
	if w != 8 || h != 4 {
		t.Errorf("restored bounds %dx%d, want 8x4", w, h)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if restored.ColorAt(x, y) != q.ColorAt(x, y) {
				t.Fatalf("color mismatch at (%d, %d)", x, y)
			}
		}
	}
}

func TestDecodeQuantizedRejectsCorrupt(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "garbage"},
		{"zero dimensions", `{"width":0,"height":4,"palette":[],"labels":[]}`},
		{"label count mismatch", `{"width":2,"height":2,"palette":[{"R":0,"G":0,"B":0}],"labels":[0,0]}`},
		{"label out of range", `{"width":1,"height":2,"palette":[{"R":0,"G":0,"B":0}],"labels":[0,5]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeQuantized([]byte(tt.data)); err == nil {
				t.Error("DecodeQuantized should reject corrupt snapshot")
			}
		})
	}
}
