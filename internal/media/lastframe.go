// Package media holds small image helpers used by the CLI.
package media

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	"image/png"
	"io"
	"os"
)

// ErrNoFrames is returned for a GIF that decodes without any frame.
var ErrNoFrames = errors.New("media: gif has no frames")

// LastFrame decodes an animated GIF and returns what a viewer shows once the
// animation stops: the final frame composited over the earlier ones with
// each frame's disposal method applied.
func LastFrame(r io.Reader) (*image.RGBA, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, fmt.Errorf("media: decode gif: %w", err)
	}
	return composite(g)
}

func composite(g *gif.GIF) (*image.RGBA, error) {
	if len(g.Image) == 0 {
		return nil, ErrNoFrames
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	last := len(g.Image) - 1
	for i, frame := range g.Image {
		var saved *image.RGBA
		disposal := byte(gif.DisposalNone)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious && i != last {
			saved = image.NewRGBA(bounds)
			draw.Draw(saved, bounds, canvas, bounds.Min, draw.Src)
		}

		draw.Draw(canvas, frame.Bounds(), frame, frame.Bounds().Min, draw.Over)
		if i == last {
			break
		}

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, frame.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			draw.Draw(canvas, bounds, saved, bounds.Min, draw.Src)
		}
	}
	return canvas, nil
}

// WriteLastFramePNG extracts the last frame of the GIF at src and writes it
// to dst as PNG. It returns the number of frames in the source.
func WriteLastFramePNG(src, dst string) (int, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, fmt.Errorf("media: open %s: %w", src, err)
	}
	defer in.Close()

	g, err := gif.DecodeAll(in)
	if err != nil {
		return 0, fmt.Errorf("media: decode %s: %w", src, err)
	}
	img, err := composite(g)
	if err != nil {
		return 0, err
	}

	out, err := os.Create(dst)
	if err != nil {
		return 0, fmt.Errorf("media: create %s: %w", dst, err)
	}
	if err := png.Encode(out, img); err != nil {
		_ = out.Close()
		return 0, fmt.Errorf("media: encode png: %w", err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("media: close %s: %w", dst, err)
	}
	return len(g.Image), nil
}
