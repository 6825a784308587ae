// Package vision asks a multimodal model about page screenshots when text
// pattern matching cannot settle an application's status.
package vision

import (
	"context"
	"strings"

	"github.com/smerajiapply/submission/pkg/models"
)

// StatusPrompt is the question put to the oracle when status patterns did
// not match the page text.
const StatusPrompt = "What is the application status? Look for offer status, decision, " +
	"acceptance, rejection, or pending status. Provide a concise summary."

// Oracle answers free-form questions about a screenshot.
type Oracle interface {
	Describe(ctx context.Context, image []byte, prompt string) (string, error)
}

// ClassifyStatus maps an oracle's description onto an application status.
// Buckets are checked in decision priority; an unrecognized description is
// treated as pending rather than unknown, since the page did load.
func ClassifyStatus(description string) models.ApplicationStatus {
	lower := strings.ToLower(description)

	switch {
	case containsAny(lower, "offer", "conditional", "unconditional", "acceptance"):
		return models.StatusOfferReady
	case containsAny(lower, "accepted", "enrolled", "deposit"):
		return models.StatusAccepted
	case containsAny(lower, "rejected", "declined", "not accepted"):
		return models.StatusRejected
	default:
		return models.StatusPending
	}
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}

	return false
}
