package inspect

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"

	"golang.org/x/image/draw"

	"github.com/cursortools/cursorctl/internal/winctl"
)

// Capturer grabs a pixel rectangle of the screen into a PNG file.
type Capturer interface {
	CaptureRegion(ctx context.Context, x, y, width, height int, outPath string) error
}

// Screencapture shells out to the screencapture binary.
type Screencapture struct{}

func (Screencapture) CaptureRegion(ctx context.Context, x, y, width, height int, outPath string) error {
	region := fmt.Sprintf("%d,%d,%d,%d", x, y, width, height)
	cmd := exec.CommandContext(ctx, "screencapture", "-x", "-R", region, outPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("screencapture %s: %w: %s", region, err, out)
	}
	return nil
}

// CaptureWindowPNG captures win's on-screen region and writes a PNG to
// outPath, downscaled by scale when scale is in (0, 1). The window must have
// known position and size.
func CaptureWindowPNG(ctx context.Context, capturer Capturer, win winctl.Snapshot, outPath string, scale float64) error {
	if win.Position == nil || win.Size == nil {
		return fmt.Errorf("window %d has unknown bounds", win.Index)
	}

	if scale <= 0 || scale >= 1 {
		return capturer.CaptureRegion(ctx, win.Position.X, win.Position.Y,
			win.Size.Width, win.Size.Height, outPath)
	}

	tmp, err := os.CreateTemp("", "cursorctl-*.png")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	tmp.Close()
	defer os.Remove(tmpPath)

	if err := capturer.CaptureRegion(ctx, win.Position.X, win.Position.Y,
		win.Size.Width, win.Size.Height, tmpPath); err != nil {
		return err
	}

	img, err := readPNG(tmpPath)
	if err != nil {
		return err
	}

	scaled := scaleImage(img, scale)
	return writePNG(outPath, scaled)
}

func readPNG(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open capture: %w", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode capture: %w", err)
	}
	return img, nil
}

func scaleImage(img image.Image, scale float64) image.Image {
	b := img.Bounds()
	w := int(float64(b.Dx()) * scale)
	h := int(float64(b.Dy()) * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if err := png.Encode(f, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
