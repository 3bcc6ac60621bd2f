package title

import "testing"

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		expected string
	}{
		{"Three segments drop episode code", "Show - S01E02 - Pilot.mp4", "Show - Pilot"},
		{"Two segments kept", "Show - Pilot.mkv", "Show - Pilot"},
		{"Single segment", "RandomName.mp4", "RandomName"},
		{"Empty", "", ""},
		{"Four segments returned whole", "A - B - C - D.mp4", "A - B - C - D"},
		{"No extension", "Show - S01E01 - Pilot", "Show - Pilot"},
		{"Dots in name only last stripped", "Mr. Show - S01E01 - The.Pilot.avi", "Mr. Show - The.Pilot"},
		{"Hyphen without spaces is not a separator", "Show-S01E01-Pilot.mp4", "Show-S01E01-Pilot"},
		{"Empty trailing segment", "Show - S01E01 - .mp4", "Show - "},
		{"Only extension", ".mp4", ""},
		{"Real world", "Over the Garden Wall - S01E01 - The Old Grist Mill.mkv", "Over the Garden Wall - The Old Grist Mill"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.filename)
			if got != tt.expected {
				t.Errorf("Extract(%q) = %q, want %q", tt.filename, got, tt.expected)
			}
		})
	}
}

func TestExtractDeterministic(t *testing.T) {
	inputs := []string{
		"Show - S01E02 - Pilot.mp4",
		"weird name with . dots . everywhere",
		" - - - ",
		"...",
		"日本語 - 第1話 - タイトル.mkv",
	}

	for _, in := range inputs {
		first := Extract(in)
		for i := 0; i < 3; i++ {
			if got := Extract(in); got != first {
				t.Errorf("Extract(%q) not deterministic: %q then %q", in, first, got)
			}
		}
	}
}

func TestFromPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"/tv/Show/Show - S01E02 - Pilot.mp4", "Show - Pilot"},
		{`D:\TV\Show\Show - Pilot.mkv`, "Show - Pilot"},
		{"relative/RandomName.mp4", "RandomName"},
		{"NoDirectory.mov", "NoDirectory"},
		{"/trailing/", ""},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := FromPath(tt.path); got != tt.expected {
				t.Errorf("FromPath(%q) = %q, want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestStripExtension(t *testing.T) {
	tests := []struct {
		in, expected string
	}{
		{"a.mp4", "a"},
		{"a.b.c", "a.b"},
		{"noext", "noext"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := StripExtension(tt.in); got != tt.expected {
			t.Errorf("StripExtension(%q) = %q, want %q", tt.in, got, tt.expected)
		}
	}
}
