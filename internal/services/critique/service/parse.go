// Package service implements the critique generation pipeline
package service

import (
	"encoding/json"
	"regexp"
	"strings"

	perr "rakugaki/internal/platform/errors"
	"rakugaki/internal/platform/net/http/bind"
	"rakugaki/internal/services/critique/domain"
)

// model output commonly arrives wrapped in a markdown fence
var (
	fenceOpen  = regexp.MustCompile("(?i)^```(?:json)?\\s*")
	fenceClose = regexp.MustCompile("(?i)\\s*```$")
)

// Parse converts a raw model reply into a validated Evaluation.
// the reply is never guaranteed to be pure JSON, so it is cleaned in
// stages: strip noise, slice out the object, decode, then validate
func Parse(raw string) (domain.Evaluation, error) {
	var zero domain.Evaluation

	cleaned := strings.TrimSpace(raw)
	cleaned = fenceOpen.ReplaceAllString(cleaned, "")
	cleaned = fenceClose.ReplaceAllString(cleaned, "")

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start == -1 || end == -1 || end <= start {
		return zero, perr.New(perr.ErrorCodeInvalidStructure, "no JSON object found in model reply")
	}

	payload := cleaned[start : end+1]

	var ev domain.Evaluation
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return zero, perr.Wrap(err, perr.ErrorCodeDecode, "decoding model reply")
	}

	if ev.Dimensions == "" {
		ev.Dimensions = domain.DefaultDimensions
	}

	if field, msg, ok := bind.Struct(ev); !ok {
		return zero, perr.WithField(perr.Newf(perr.ErrorCodeSchema, "%s", msg), field)
	}

	return ev, nil
}
