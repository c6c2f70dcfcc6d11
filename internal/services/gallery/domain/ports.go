// Package domain defines the gallery lookup contracts
// the gallery stores finished artworks so share links resolve for a while
package domain

import (
	"context"

	cdom "rakugaki/internal/services/critique/domain"
)

// QueryPort reads and removes stored artworks
type QueryPort interface {
	GetWork(ctx context.Context, id string) (cdom.Artwork, error)
	DeleteWork(ctx context.Context, id string) error
}

// Stats reports gallery occupancy
type Stats struct {
	Works    int `json:"works"`
	Capacity int `json:"capacity"`
}

// StatsPort reports current gallery occupancy
type StatsPort interface {
	Stats(ctx context.Context) Stats
}
