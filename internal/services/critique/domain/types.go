// Package domain defines the critique record types and their bounds
package domain

import "time"

// DefaultDimensions is used when the model omits the dimensions field
const DefaultDimensions = "variable, exists in digital space"

// PriceChange marks how a continuation moved the appraisal
type PriceChange string

// Price change values for continuation evaluations
const (
	PriceIncrease  PriceChange = "increase"
	PriceDecrease  PriceChange = "decrease"
	PriceUnchanged PriceChange = "unchanged"
)

// Price bounds in yen
const (
	PriceMin int64 = 1_000_000
	PriceMax int64 = 10_000_000_000
)

// Evaluation is the validated critique record
// bounds are enforced at the parser boundary, no partially valid
// Evaluation is ever handed to a caller
type Evaluation struct {
	Title             string      `json:"title" validate:"required,min=5,max=40"`
	Artist            string      `json:"artist" validate:"required,min=2,max=20"`
	Medium            string      `json:"medium" validate:"required,min=5,max=50"`
	Dimensions        string      `json:"dimensions" validate:"required"`
	Critique          string      `json:"critique" validate:"required,min=100,max=300"`
	Price             int64       `json:"price" validate:"required,min=1000000,max=10000000000"`
	PriceChange       PriceChange `json:"priceChange,omitempty" validate:"omitempty,oneof=increase decrease unchanged"`
	PriceChangeReason string      `json:"priceChangeReason,omitempty" validate:"omitempty,max=80"`
	NextExpectation   string      `json:"nextExpectation" validate:"required,min=20,max=100"`
}

// Artwork wraps an Evaluation with provenance
// created once when a critique cycle succeeds, never mutated after
type Artwork struct {
	ID             string     `json:"id"`
	Image          string     `json:"image"`
	Evaluation     Evaluation `json:"evaluation"`
	SeriesNumber   int        `json:"seriesNumber"`
	CreatedAt      time.Time  `json:"createdAt"`
	PreviousWorkID string     `json:"previousWorkId,omitempty"`
	PriceDisplay   string     `json:"priceDisplay"`
	PriceReadable  string     `json:"priceReadable"`
}

// PreviousWork is the client supplied projection of a prior Artwork
// used to request a continuation, it is not persisted itself
type PreviousWork struct {
	ID           string `json:"id,omitempty"`
	Title        string `json:"title" validate:"required"`
	Artist       string `json:"artist" validate:"required"`
	Critique     string `json:"critique" validate:"required"`
	Price        int64  `json:"price" validate:"required,min=1"`
	SeriesNumber int    `json:"seriesNumber" validate:"required,min=1"`
}
