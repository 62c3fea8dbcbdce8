package codec_test

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/ardnew/sngc/codec"
	"github.com/ardnew/sngc/lang"
)

func compilePNG(t *testing.T, src string) ([]byte, error) {
	t.Helper()

	var buf bytes.Buffer

	_, err := lang.Compile(context.Background(), strings.NewReader(src), codec.New(),
		lang.WithSource("test"), lang.WithOutput(&buf))

	return buf.Bytes(), err
}

func TestCompile_PNG(t *testing.T) {
	tests := []struct {
		name  string
		input string
		check func(t *testing.T, img image.Image)
	}{
		{
			name:  "gray",
			input: "HEADER { width 2 height 1 } IMAGE { ff00 }",
			check: func(t *testing.T, img image.Image) {
				t.Helper()

				if got := img.At(0, 0).(color.Gray).Y; got != 0xff {
					t.Errorf("pixel 0 = %d, want 255", got)
				}

				if got := img.At(1, 0).(color.Gray).Y; got != 0 {
					t.Errorf("pixel 1 = %d, want 0", got)
				}
			},
		},
		{
			name: "palette",
			input: `IHDR { width 2 height 2 bitdepth 1 using palette color }
sRGB { 0 }
PLTE { (255, 0, 0) (0, 0, 255) }
IMAGE {
  01
  10
}
`,
			check: func(t *testing.T, img image.Image) {
				t.Helper()

				blue := color.RGBA{0, 0, 255, 255}
				if got := color.RGBAModel.Convert(img.At(1, 0)); got != blue {
					t.Errorf("pixel (1, 0) = %v, want %v", got, blue)
				}
			},
		},
		{
			name: "interlaced color",
			input: `IHDR { width 3 height 3 bitdepth 8 using color with interlace }
gAMA { 0.45455 }
IMAGE {
  ff0000 00ff00 0000ff
  000000 808080 ffffff
  010203 040506 070809
}
`,
			check: func(t *testing.T, img image.Image) {
				t.Helper()

				want := color.RGBA{0x80, 0x80, 0x80, 0xff}
				if got := color.RGBAModel.Convert(img.At(1, 1)); got != want {
					t.Errorf("pixel (1, 1) = %v, want %v", got, want)
				}
			},
		},
		{
			name:  "raw data",
			input: "IHDR { width 1 height 1 }\nIDAT { 789c 6360 0000 0002 0001 }\n",
			check: func(t *testing.T, img image.Image) {
				t.Helper()

				if b := img.Bounds(); b.Dx() != 1 || b.Dy() != 1 {
					t.Errorf("bounds = %v", b)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := compilePNG(t, tt.input)
			if err != nil {
				t.Fatalf("compile: %v", err)
			}

			img, err := png.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("decode: %v", err)
			}

			tt.check(t, img)
		})
	}
}

func TestCompile_PNGRejects(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"bit depth", "IHDR { width 1 height 1 bitdepth 3 }\nIMAGE { 0 }\n", codec.ErrHeader},
		{"palette with alpha", "IHDR { width 1 height 1 using palette alpha }\n", codec.ErrHeader},
		{"intent", "IHDR { width 1 height 1 }\nsRGB { 4 }\n", codec.ErrColor},
		{"zero gamma", "IHDR { width 1 height 1 }\ngAMA { 0 }\n", codec.ErrColor},
		{
			"palette index",
			"IHDR { width 1 height 1 using palette }\nPLTE { (0, 0, 0) }\nIMAGE { 1 }\n",
			codec.ErrPixels,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compilePNG(t, tt.input)
			if !errors.Is(err, lang.ErrCodec) {
				t.Fatalf("error = %v, want codec error", err)
			}

			if !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
