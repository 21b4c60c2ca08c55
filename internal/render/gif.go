package render

import (
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"os"
	"path/filepath"

	"github.com/san-kum/cglsim/internal/analysis"
	"github.com/san-kum/cglsim/internal/cgl"
)

// Quantity selects which scalar view of the complex field gets rendered.
type Quantity string

const (
	QuantityReal      Quantity = "real"
	QuantityAmplitude Quantity = "amplitude"
	QuantityPhase     Quantity = "phase"
)

// Extract converts a frame to the requested real-valued grid.
func Extract(f cgl.Field, q Quantity) ([][]float64, error) {
	switch q {
	case QuantityReal:
		return analysis.RealField(f), nil
	case QuantityAmplitude:
		return analysis.AmplitudeField(f), nil
	case QuantityPhase:
		return analysis.PhaseField(f), nil
	default:
		return nil, fmt.Errorf("unknown render quantity: %s", q)
	}
}

func grayPalette() color.Palette {
	palette := make(color.Palette, 256)
	for i := 0; i < 256; i++ {
		palette[i] = color.Gray{Y: uint8(i)}
	}
	return palette
}

// FrameImage renders one real-valued grid as a grayscale paletted image,
// normalized to the frame's own min/max and scaled up by scale pixels per
// grid cell.
func FrameImage(grid [][]float64, scale int) *image.Paletted {
	n := len(grid)
	if scale < 1 {
		scale = 1
	}
	img := image.NewPaletted(image.Rect(0, 0, n*scale, n*scale), grayPalette())

	lo, hi := grid[0][0], grid[0][0]
	for i := range grid {
		for j := range grid[i] {
			if grid[i][j] < lo {
				lo = grid[i][j]
			}
			if grid[i][j] > hi {
				hi = grid[i][j]
			}
		}
	}
	span := hi - lo
	if span < 1e-12 {
		span = 1e-12
	}

	for i := range grid {
		for j := range grid[i] {
			idx := uint8(255 * (grid[i][j] - lo) / span)
			for py := i * scale; py < (i+1)*scale; py++ {
				for px := j * scale; px < (j+1)*scale; px++ {
					img.SetColorIndex(px, py, idx)
				}
			}
		}
	}
	return img
}

// WriteGIF renders every frame and assembles them into an animated GIF at
// the given frame rate.
func WriteGIF(path string, fields []cgl.Field, q Quantity, fps, scale int) error {
	if len(fields) == 0 {
		return fmt.Errorf("no frames to render")
	}
	if fps < 1 {
		fps = 1
	}

	delay := 100 / fps // GIF delay unit is 1/100 s
	if delay < 1 {
		delay = 1
	}

	frames := make([]*image.Paletted, 0, len(fields))
	delays := make([]int, 0, len(fields))
	for _, f := range fields {
		grid, err := Extract(f, q)
		if err != nil {
			return err
		}
		frames = append(frames, FrameImage(grid, scale))
		delays = append(delays, delay)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return gif.EncodeAll(file, &gif.GIF{Image: frames, Delay: delays})
}

// WritePNG renders a single frame as a grayscale PNG.
func WritePNG(path string, f cgl.Field, q Quantity, scale int) error {
	grid, err := Extract(f, q)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, FrameImage(grid, scale))
}
