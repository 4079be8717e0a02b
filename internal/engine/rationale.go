package engine

import (
	"fmt"
	"strings"

	"github.com/godilite/ticket-triage/internal/repository/models"
)

const maxRationaleSkills = 3

// buildRationale renders the human-readable justification for one committed
// assignment. An assignment whose winning skill score is zero is labelled a
// generalist fallback so reviewers can spot tickets the taxonomy missed.
func buildRationale(agent models.Agent, matchedSkills []string, b ScoreBreakdown, priority int) string {
	var relevant []string
	for _, skill := range matchedSkills {
		if rating, ok := agent.Skills[skill]; ok && rating > 0 {
			relevant = append(relevant, fmt.Sprintf("'%s' (%g)", skill, rating))
		}
		if len(relevant) == maxRationaleSkills {
			break
		}
	}

	var parts []string
	if b.SkillScore > 0 {
		parts = append(parts, fmt.Sprintf(
			"Assigned to %s (%s) based on expertise in %s",
			agent.Name, agent.ID, strings.Join(relevant, ", ")))
	} else {
		parts = append(parts, fmt.Sprintf(
			"Assigned to %s (%s) as a generalist fallback: no agent skill matched this ticket, decided on experience level (%g) and capacity",
			agent.Name, agent.ID, agent.ExperienceLevel))
	}

	if b.WorkloadScore > 15 {
		parts = append(parts, "and lower current workload")
	}

	if priority >= priorityBonusThreshold {
		parts = append(parts, "High priority ticket requiring immediate attention")
	}

	return strings.Join(parts, ". ") + "."
}
