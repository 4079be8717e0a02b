package engine

import (
	"strings"

	"github.com/godilite/ticket-triage/internal/repository/models"
	"github.com/godilite/ticket-triage/internal/taxonomy"
)

// Priority tiers. Higher values are processed first by the allocator.
const (
	PriorityCritical = 10
	PriorityHigh     = 8
	PriorityDefault  = 6
	PriorityMedium   = 5
	PriorityLow      = 2

	// priorityBonusThreshold is the tier at or above which the scoring
	// function grants the urgency bonus.
	priorityBonusThreshold = 8
)

// ClassifyPriority derives the urgency tier for a ticket. An explicit
// priority on the ticket wins, clamped to [1,10]. Otherwise the cue lists are
// scanned from the critical tier down and the first hit decides; a ticket
// with no cues lands on the default tier. Total and deterministic.
func ClassifyPriority(ticket models.Ticket, cues taxonomy.PriorityCues) int {
	if ticket.Priority != 0 {
		return clampPriority(ticket.Priority)
	}

	lower := strings.ToLower(ticket.Text())

	tiers := []struct {
		terms []string
		value int
	}{
		{cues.Critical, PriorityCritical},
		{cues.High, PriorityHigh},
		{cues.Medium, PriorityMedium},
		{cues.Low, PriorityLow},
	}
	for _, tier := range tiers {
		for _, term := range tier.terms {
			if strings.Contains(lower, term) {
				return tier.value
			}
		}
	}
	return PriorityDefault
}

func clampPriority(p int) int {
	if p < 1 {
		return 1
	}
	if p > 10 {
		return 10
	}
	return p
}
