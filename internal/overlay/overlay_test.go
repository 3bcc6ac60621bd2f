package overlay

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font/basicfont"
)

func testPaths(dir string) Paths {
	return Paths{
		Last:    filepath.Join(dir, "last.txt"),
		Current: filepath.Join(dir, "current.txt"),
		Next:    filepath.Join(dir, "next.txt"),
	}
}

func readTitles(t *testing.T, paths Paths) Titles {
	t.Helper()
	read := func(path string) string {
		data, err := os.ReadFile(path)
		if err != nil {
			t.Fatalf("ReadFile(%s): %v", path, err)
		}
		return string(data)
	}
	return Titles{Last: read(paths.Last), Current: read(paths.Current), Next: read(paths.Next)}
}

func TestFilePublisherRoundTrip(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(dir)
	pub := NewFilePublisher(paths)

	tests := []struct {
		name   string
		titles Titles
	}{
		{"Full triple", Titles{Last: "Show - Pilot", Current: "Show - Second", Next: "Show - Third"}},
		{"Greeting and farewell", Titles{Last: "Welcome", Current: "Show - Only", Next: "Goodbye"}},
		{"Clear", Clear},
		{"Unicode", Titles{Last: "Café", Current: "日本語", Next: "ünïcödé"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := pub.Publish(tt.titles); err != nil {
				t.Fatalf("Publish() error = %v", err)
			}
			if got := readTitles(t, paths); got != tt.titles {
				t.Errorf("round trip = %+v, want %+v", got, tt.titles)
			}
		})
	}
}

func TestFilePublisherSkipsUnsetPaths(t *testing.T) {
	dir := t.TempDir()
	current := filepath.Join(dir, "current.txt")
	pub := NewFilePublisher(Paths{Current: current})

	if err := pub.Publish(Titles{Last: "a", Current: "b", Next: "c"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	data, err := os.ReadFile(current)
	if err != nil || string(data) != "b" {
		t.Errorf("current = %q, %v", data, err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected one file, found %d", len(entries))
	}
}

func TestFilePublisherWriteFailure(t *testing.T) {
	dir := t.TempDir()
	paths := testPaths(dir)
	paths.Last = filepath.Join(dir, "missing-dir", "last.txt")
	pub := NewFilePublisher(paths)

	err := pub.Publish(Titles{Last: "a", Current: "b", Next: "c"})
	if err == nil {
		t.Fatal("expected error for unwritable path")
	}

	// The remaining files are still written.
	data, readErr := os.ReadFile(paths.Next)
	if readErr != nil || string(data) != "c" {
		t.Errorf("next = %q, %v; want the other files written despite the failure", data, readErr)
	}
}

func TestMemoryPublisher(t *testing.T) {
	pub := NewMemoryPublisher()

	if got := pub.Latest(); !got.IsClear() {
		t.Errorf("Latest() on empty publisher = %+v, want Clear", got)
	}

	first := Titles{Current: "one"}
	_ = pub.Publish(first)
	_ = pub.Publish(Clear)

	published := pub.Published()
	if len(published) != 2 || published[0] != first || !published[1].IsClear() {
		t.Errorf("Published() = %+v", published)
	}

	pub.Err = errors.New("disk full")
	if err := pub.Publish(first); err == nil {
		t.Error("expected configured error")
	}
	if len(pub.Published()) != 3 {
		t.Error("failing publish should still be recorded")
	}
}

func TestMultiPublisherContinuesAfterFailure(t *testing.T) {
	failing := NewMemoryPublisher()
	failing.Err = errors.New("boom")
	ok := NewMemoryPublisher()

	err := Multi(failing, ok).Publish(Titles{Current: "x"})
	if err == nil {
		t.Error("expected joined error")
	}
	if ok.Latest().Current != "x" {
		t.Error("second publisher should still receive the titles")
	}
}

func TestRenderCard(t *testing.T) {
	opts := DefaultCardOptions()

	img := RenderCard("Show - Pilot", opts)
	if img.Bounds().Dx() != opts.Width || img.Bounds().Dy() != opts.Height {
		t.Errorf("card size = %v, want %dx%d", img.Bounds(), opts.Width, opts.Height)
	}

	foundText := false
	for y := 0; y < opts.Height && !foundText; y++ {
		for x := 0; x < opts.Width; x++ {
			if img.NRGBAAt(x, y) == opts.Foreground {
				foundText = true
				break
			}
		}
	}
	if !foundText {
		t.Error("rendered card has no foreground pixels")
	}

	blank := RenderCard("", opts)
	if got := blank.NRGBAAt(opts.Width/2, opts.Height/2); got != (color.NRGBA{}) {
		t.Errorf("empty title pixel = %v, want transparent", got)
	}
}

func TestFitText(t *testing.T) {
	face := basicfont.Face7x13

	if got := fitText(face, "short", 100); got != "short" {
		t.Errorf("fitText short = %q", got)
	}

	got := fitText(face, "a very long episode title that cannot fit", 70)
	if len(got) > 10 || got[len(got)-3:] != "..." {
		t.Errorf("fitText long = %q, want a 10-character ellipsised string", got)
	}

	if got := fitText(face, "abc", 0); got != "" {
		t.Errorf("fitText zero width = %q, want empty", got)
	}
}

func TestCardPublisherWritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "card.png")
	opts := DefaultCardOptions()
	opts.Width, opts.Height = 320, 32
	pub := NewCardPublisher(path, opts)

	if err := pub.Publish(Titles{Current: "Show - Pilot"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	img, err := imaging.Open(path)
	if err != nil {
		t.Fatalf("imaging.Open() error = %v", err)
	}
	if img.Bounds().Dx() != 320 || img.Bounds().Dy() != 32 {
		t.Errorf("decoded size = %v", img.Bounds())
	}
}
