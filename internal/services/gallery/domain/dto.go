package domain

import (
	cdom "rakugaki/internal/services/critique/domain"
)

// WorkResponse is the payload for a gallery lookup
type WorkResponse struct {
	Success bool         `json:"success"`
	Artwork cdom.Artwork `json:"artwork"`
}

// DeleteResponse is the payload after removing a work
type DeleteResponse struct {
	Success bool `json:"success"`
}
