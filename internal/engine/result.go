package engine

import "time"

// BuildResult wraps the ordered assignment records into the run output,
// including the per-agent distribution summary. Pure assembly, no scoring.
func BuildResult(runID string, generatedAt time.Time, assignments []Assignment) Result {
	distribution := make(map[string]int, len(assignments))
	for _, a := range assignments {
		distribution[a.AssignedAgentID]++
	}
	return Result{
		RunID:        runID,
		GeneratedAt:  generatedAt.UTC(),
		Assignments:  assignments,
		Distribution: distribution,
	}
}
