package engine

import "time"

// ScoreBreakdown is the structured output of the scoring function: the four
// base factors, the priority modifier, and their sum.
type ScoreBreakdown struct {
	SkillScore        float64 `json:"skill_score"`
	ExperienceScore   float64 `json:"experience_score"`
	WorkloadScore     float64 `json:"workload_score"`
	AvailabilityScore float64 `json:"availability_score"`
	PriorityBonus     float64 `json:"priority_bonus"`
	TotalScore        float64 `json:"total_score"`
}

// Assignment records one committed ticket-to-agent decision. Records are
// created once and never mutated; their order is the allocator's processing
// order (descending priority, stable).
type Assignment struct {
	TicketID        string         `json:"ticket_id"`
	Title           string         `json:"title"`
	AssignedAgentID string         `json:"assigned_agent_id"`
	Priority        int            `json:"priority"`
	MatchedSkills   []string       `json:"matched_skills"`
	Rationale       string         `json:"rationale"`
	Score           ScoreBreakdown `json:"score_breakdown"`
}

// Result is the assembled output of one allocation run.
type Result struct {
	RunID        string         `json:"run_id"`
	GeneratedAt  time.Time      `json:"generated_at"`
	Assignments  []Assignment   `json:"assignments"`
	Distribution map[string]int `json:"assignment_distribution"`
}
