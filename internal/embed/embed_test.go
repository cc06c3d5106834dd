package embed

import "testing"

func TestArtworks(t *testing.T) {
	arts, err := Artworks()
	if err != nil {
		t.Fatalf("Artworks() error = %v", err)
	}
	if len(arts) != 2 {
		t.Fatalf("Artworks() len = %d, want 2", len(arts))
	}
	for _, a := range arts {
		if a.Art == "" {
			t.Errorf("artwork %q is empty", a.Name)
		}
	}
	if !arts[0].Tilted || arts[1].Tilted {
		t.Error("only the default artwork is tilted")
	}
}

func TestPickArtwork(t *testing.T) {
	arts, err := Artworks()
	if err != nil {
		t.Fatalf("Artworks() error = %v", err)
	}

	tests := []struct {
		draw float64
		want string
	}{
		{0.0, "shiggy"},
		{0.5, "shiggy"},
		{0.51, "default"},
		{0.99, "default"},
	}
	for _, tt := range tests {
		if got := PickArtwork(arts, tt.draw); got.Name != tt.want {
			t.Errorf("PickArtwork(%v) = %q, want %q", tt.draw, got.Name, tt.want)
		}
	}

	if got := PickArtwork(nil, 0.9); got.Name != "" {
		t.Errorf("PickArtwork(nil) = %+v, want zero", got)
	}
}
