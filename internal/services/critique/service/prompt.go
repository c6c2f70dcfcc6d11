package service

import (
	"fmt"
	"strings"

	"rakugaki/internal/services/critique/domain"
)

// initialPrompt asks for a fresh critique of the submitted doodle
const initialPrompt = `You are a famously pretentious art critic reviewing a doodle submitted to the Rakugaki Gallery.
Look at the image and produce an extravagant, deadpan-serious critique of it as if it were a major contemporary artwork.

Respond with a single JSON object and nothing else. No markdown, no commentary. The object must have exactly these fields:
- "title": a poetic, symbolic title for the work (5 to 40 characters)
- "artist": an invented artist name (2 to 20 characters)
- "medium": an invented technique or medium (5 to 50 characters)
- "dimensions": invented dimensions, or omit to use the gallery default
- "critique": a lofty, overblown critique of the work (100 to 300 characters)
- "price": an integer appraisal in yen, between 1000000 and 10000000000
- "nextExpectation": what the critic expects from the artist's next work (20 to 100 characters)

Output raw JSON only.`

// retryWarning is appended when a previous attempt produced unusable output
const retryWarning = "\n\nIMPORTANT WARNING: your previous output was invalid. Output pure JSON only."

// buildContinuationPrompt embeds the prior work so the model can write a sequel
// critique that references it, including how the appraisal moved
func buildContinuationPrompt(prev domain.PreviousWork) string {
	var sb strings.Builder
	sb.WriteString(initialPrompt)
	sb.WriteString("\n\nThis submission is a continuation. The same artist previously exhibited:\n")
	fmt.Fprintf(&sb, "- title: %q\n", prev.Title)
	fmt.Fprintf(&sb, "- artist: %q (reuse this exact artist name)\n", prev.Artist)
	fmt.Fprintf(&sb, "- critique: %q\n", prev.Critique)
	fmt.Fprintf(&sb, "- price: %d yen\n", prev.Price)
	fmt.Fprintf(&sb, "- series number: %d (the new work is number %d in the series)\n", prev.SeriesNumber, prev.SeriesNumber+1)
	sb.WriteString(`
Write the critique as a sequel that references the previous work, and additionally include:
- "priceChange": one of "increase", "decrease" or "unchanged", describing how the new appraisal compares to the previous price
- "priceChangeReason": a short reason for the movement (at most 80 characters)`)
	return sb.String()
}

// buildPrompt selects the fresh or continuation prompt and appends the retry
// warning after a failed attempt
func buildPrompt(prev *domain.PreviousWork, attempt int) string {
	base := initialPrompt
	if prev != nil {
		base = buildContinuationPrompt(*prev)
	}
	if attempt > 0 {
		return base + retryWarning
	}
	return base
}
