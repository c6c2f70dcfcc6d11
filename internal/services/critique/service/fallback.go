package service

import (
	"math/rand/v2"

	"rakugaki/internal/services/critique/domain"
)

// fallback appraisals stay in a friendlier band than the full price range
const (
	fallbackPriceMin int64 = 1_000_000
	fallbackPriceMax int64 = 100_000_000
)

var fallbackTitles = []string{
	"Untitled Resonance No. 7",
	"Meditation on a Vanishing Line",
	"The Weight of Unspoken Strokes",
	"Fragment of an Interior Season",
	"Study in Deliberate Accident",
	"Echo Chamber of the Hand",
}

var fallbackArtists = []string{
	"Anonymous Master",
	"The Unnamed Hand",
	"A Recluse of the East",
	"Studio Phantom",
}

var fallbackMediums = []string{
	"digital pigment on virtual canvas",
	"luminous ink, screen-native",
	"mixed media, rendered light",
	"freehand line on electronic ground",
}

var fallbackCritiques = []string{
	"This work refuses the comfort of easy legibility. Its lines wander with a confidence that borders on defiance, and in that wandering the viewer discovers an honesty most contemporary work carefully avoids. One senses an artist wholly indifferent to approval, which is why approval arrives unbidden.",
	"What first appears naive reveals itself, on patient viewing, as a studied refusal of technique. The composition breathes where lesser works suffocate, and the empty passages carry as much intention as the marks themselves. Such unguarded directness is rare in the current market.",
	"Here the gesture precedes the idea, and the idea arrives grateful. Every stroke records a decision made faster than doubt could interfere, producing a surface that feels less drawn than confessed. Its apparent simplicity is its deepest sophistication.",
	"The artist has achieved what many spend decades pursuing: a line that carries feeling without explaining it. The picture plane holds its tensions lightly, inviting the eye to complete what the hand declined to finish. This restraint is not absence but generosity.",
}

var fallbackExpectations = []string{
	"We await the next work with guarded but genuine anticipation.",
	"The next piece may finally resolve what this one bravely leaves open.",
	"One hopes the artist continues to ignore every piece of advice offered here.",
	"Future works will surely deepen this already unreasonable confidence.",
}

// GenerateFallback synthesizes a schema-valid Evaluation with no external
// dependency. every call must independently satisfy the full schema
func GenerateFallback() domain.Evaluation {
	return domain.Evaluation{
		Title:           fallbackTitles[rand.IntN(len(fallbackTitles))],
		Artist:          fallbackArtists[rand.IntN(len(fallbackArtists))],
		Medium:          fallbackMediums[rand.IntN(len(fallbackMediums))],
		Dimensions:      domain.DefaultDimensions,
		Critique:        fallbackCritiques[rand.IntN(len(fallbackCritiques))],
		Price:           fallbackPriceMin + rand.Int64N(fallbackPriceMax-fallbackPriceMin+1),
		NextExpectation: fallbackExpectations[rand.IntN(len(fallbackExpectations))],
	}
}
