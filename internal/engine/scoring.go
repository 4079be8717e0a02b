package engine

import "github.com/godilite/ticket-triage/internal/repository/models"

const (
	skillScale        = 10.0
	experienceFactor  = 1.5
	experienceCap     = 20.0
	maxReasonableLoad = 5
	workloadFactor    = 6.0
	availabilityBonus = 10.0
	priorityFactor    = 0.5
)

// Score computes the desirability of assigning the given ticket skills to one
// candidate agent. It is pure: the agent is read, never written, and the same
// inputs always produce the same breakdown.
//
// The four base factors plus the urgency modifier:
//   - skill: average proficiency over the matched categories, scaled to
//     0-100; a category the agent lacks counts as zero, and no matched
//     categories at all score zero.
//   - experience: 1.5 per level, capped at 20.
//   - workload: (5 - load) * 6, floored at 0, so busy agents lose ground to
//     idle ones as the run progresses.
//   - availability: flat +10 bonus; unavailable agents stay candidates.
//   - priority bonus: +0.5 per priority point for tickets at tier 8 or above.
func Score(agent models.Agent, matchedSkills []string, priority, currentLoad int) ScoreBreakdown {
	var b ScoreBreakdown

	if len(matchedSkills) > 0 {
		var sum float64
		for _, skill := range matchedSkills {
			sum += agent.Skills[skill]
		}
		b.SkillScore = sum / float64(len(matchedSkills)) * skillScale
	}

	b.ExperienceScore = agent.ExperienceLevel * experienceFactor
	if b.ExperienceScore > experienceCap {
		b.ExperienceScore = experienceCap
	}

	b.WorkloadScore = float64(maxReasonableLoad-currentLoad) * workloadFactor
	if b.WorkloadScore < 0 {
		b.WorkloadScore = 0
	}

	if agent.Available {
		b.AvailabilityScore = availabilityBonus
	}

	if priority >= priorityBonusThreshold {
		b.PriorityBonus = float64(priority) * priorityFactor
	}

	b.TotalScore = b.SkillScore + b.ExperienceScore + b.WorkloadScore +
		b.AvailabilityScore + b.PriorityBonus
	return b
}
