package overlay

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"streambuddy/internal/filesystem"
	"streambuddy/internal/logging"
	"streambuddy/internal/metrics"
)

// CardOptions controls the rendered lower-third.
type CardOptions struct {
	Width      int
	Height     int
	Scale      int // integer upscale of the 7x13 bitmap font
	Background color.NRGBA
	Foreground color.NRGBA
}

// DefaultCardOptions returns a 1280x96 semi-transparent black bar with white
// text.
func DefaultCardOptions() CardOptions {
	return CardOptions{
		Width:      1280,
		Height:     96,
		Scale:      4,
		Background: color.NRGBA{R: 0, G: 0, B: 0, A: 176},
		Foreground: color.NRGBA{R: 255, G: 255, B: 255, A: 255},
	}
}

// CardPublisher renders the current title to a PNG file.
type CardPublisher struct {
	path  string
	opts  CardOptions
	retry filesystem.RetryConfig
}

// NewCardPublisher creates a CardPublisher writing to path.
func NewCardPublisher(path string, opts CardOptions) *CardPublisher {
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	return &CardPublisher{
		path:  path,
		opts:  opts,
		retry: filesystem.DefaultRetryConfig(),
	}
}

// Publish renders titles.Current; an empty title produces a fully
// transparent card so the image source disappears.
func (p *CardPublisher) Publish(titles Titles) error {
	img := RenderCard(titles.Current, p.opts)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		metrics.OverlayWritesTotal.WithLabelValues("card", "error").Inc()
		return fmt.Errorf("encode title card: %w", err)
	}

	if err := filesystem.WriteFileAtomic(p.path, buf.Bytes(), 0o644, p.retry); err != nil {
		logging.Error("Error updating title card %s: %v", p.path, err)
		metrics.OverlayWritesTotal.WithLabelValues("card", "error").Inc()
		return fmt.Errorf("write %s: %w", p.path, err)
	}

	metrics.OverlayWritesTotal.WithLabelValues("card", "success").Inc()
	return nil
}

// RenderCard draws text centred on a bar of opts.Width x opts.Height.
func RenderCard(text string, opts CardOptions) *image.NRGBA {
	if opts.Scale < 1 {
		opts.Scale = 1
	}

	if text == "" {
		return imaging.New(opts.Width, opts.Height, color.NRGBA{})
	}

	// Draw at low resolution, then upscale with nearest-neighbour so the
	// bitmap font stays crisp.
	smallW := max(opts.Width/opts.Scale, 1)
	smallH := max(opts.Height/opts.Scale, 1)
	canvas := imaging.New(smallW, smallH, opts.Background)

	face := basicfont.Face7x13
	text = fitText(face, text, smallW-4)

	drawer := &font.Drawer{
		Dst:  canvas,
		Src:  image.NewUniform(opts.Foreground),
		Face: face,
	}
	textW := drawer.MeasureString(text).Ceil()
	metricsH := face.Metrics()
	textH := (metricsH.Ascent + metricsH.Descent).Ceil()

	x := (smallW - textW) / 2
	y := (smallH-textH)/2 + metricsH.Ascent.Ceil()
	drawer.Dot = fixed.P(x, y)
	drawer.DrawString(text)

	return imaging.Resize(canvas, opts.Width, opts.Height, imaging.NearestNeighbor)
}

// fitText trims text with an ellipsis until it fits in width pixels.
func fitText(face font.Face, text string, width int) string {
	if font.MeasureString(face, text).Ceil() <= width {
		return text
	}

	runes := []rune(text)
	for len(runes) > 0 {
		runes = runes[:len(runes)-1]
		candidate := string(runes) + "..."
		if font.MeasureString(face, candidate).Ceil() <= width {
			return candidate
		}
	}
	return ""
}
