package domain

// EvaluateInput is the inbound request for a critique cycle
// Image is base64 encoded, a data URI prefix is tolerated and stripped
type EvaluateInput struct {
	Image        string        `json:"image" validate:"required"`
	PreviousWork *PreviousWork `json:"previousWork,omitempty" validate:"omitempty"`
}

// EvaluateResponse is the success payload
type EvaluateResponse struct {
	Success bool    `json:"success"`
	Artwork Artwork `json:"artwork"`
}
