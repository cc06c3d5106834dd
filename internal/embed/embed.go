// Package embed provides embedded assets for vcsettings.
package embed

import (
	"embed"
	"fmt"
	"strings"
)

//go:embed assets/*

// Assets contains all embedded files.
var Assets embed.FS

// Artwork is one piece of donate card art.
type Artwork struct {
	Name string
	Art  string
	// Tilted art is drawn skewed in the card.
	Tilted bool
}

var artworkFiles = []struct {
	name   string
	file   string
	tilted bool
}{
	{name: "default", file: "assets/default-donate.txt", tilted: true},
	{name: "shiggy", file: "assets/shiggy-donate.txt"},
}

// Artworks returns the donate card artworks in a fixed order.
func Artworks() ([]Artwork, error) {
	out := make([]Artwork, 0, len(artworkFiles))
	for _, f := range artworkFiles {
		data, err := Assets.ReadFile(f.file)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", f.file, err)
		}
		out = append(out, Artwork{
			Name:   f.name,
			Art:    strings.TrimRight(string(data), "\n"),
			Tilted: f.tilted,
		})
	}
	return out, nil
}

// PickArtwork chooses one artwork from a random draw in [0, 1), mirroring a
// coin flip: draws above one half select the first artwork.
func PickArtwork(arts []Artwork, draw float64) Artwork {
	if len(arts) == 0 {
		return Artwork{}
	}
	if len(arts) == 1 || draw > 0.5 {
		return arts[0]
	}
	return arts[1]
}
