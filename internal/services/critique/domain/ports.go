package domain

import "context"

// GeneratorPort runs a full critique generation cycle
type GeneratorPort interface {
	Evaluate(ctx context.Context, in EvaluateInput) (Artwork, error)
}

// GalleryPort persists finished artworks for share link retrieval
// owned by this package so the critique service does not import the gallery
type GalleryPort interface {
	SaveArtwork(ctx context.Context, a Artwork) error
}
