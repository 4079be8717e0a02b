package engine

import (
	"errors"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/godilite/ticket-triage/internal/repository/models"
	"github.com/godilite/ticket-triage/internal/taxonomy"
)

var (
	// ErrValidation marks malformed input: a run-level failure, never a
	// per-ticket one.
	ErrValidation = errors.New("invalid dataset")

	// ErrNoAgents is returned when tickets exist but the roster is empty.
	ErrNoAgents = errors.New("empty agent roster")
)

// ticketState tracks each ticket through the allocation pass.
type ticketState int

const (
	statePending ticketState = iota
	stateScored
	stateAssigned
)

// workItem carries a ticket with its derived metadata through the run.
type workItem struct {
	ticket        models.Ticket
	priority      int
	matchedSkills []string
	state         ticketState
}

// Allocator performs the single deterministic allocation pass. It owns the
// mutable per-agent load counters for the duration of a run; input slices are
// never modified.
type Allocator struct {
	tax    *taxonomy.Taxonomy
	logger *zap.Logger
}

// NewAllocator creates an Allocator bound to one taxonomy.
func NewAllocator(tax *taxonomy.Taxonomy, logger *zap.Logger) *Allocator {
	if tax == nil {
		panic("taxonomy must not be nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Allocator{tax: tax, logger: logger}
}

// Assign produces exactly one assignment per ticket. Tickets are processed
// in descending priority order (ties keep input order) so urgent work claims
// the best-fitting agents while the pool is least depleted; each commit bumps
// the winner's load, which every later scoring round observes. The pass must
// therefore stay strictly sequential.
//
// An empty ticket set is a trivial success. Malformed agents or tickets, or
// an empty roster with tickets pending, abort the run with ErrValidation.
func (a *Allocator) Assign(agents []models.Agent, tickets []models.Ticket) ([]Assignment, error) {
	if err := validateSnapshot(agents, tickets); err != nil {
		return nil, err
	}
	if len(tickets) == 0 {
		return []Assignment{}, nil
	}

	loads := make(map[string]int, len(agents))
	for _, agent := range agents {
		loads[agent.ID] = agent.CurrentLoad
	}

	items := make([]*workItem, len(tickets))
	for i, t := range tickets {
		items[i] = &workItem{
			ticket:        t,
			priority:      ClassifyPriority(t, a.tax.Priorities),
			matchedSkills: a.tax.Match(t.Text()),
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].priority > items[j].priority
	})

	assignments := make([]Assignment, 0, len(items))
	for _, item := range items {
		winner, best := a.pickWinner(agents, item, loads)
		item.state = stateScored

		loads[winner.ID]++
		item.state = stateAssigned

		assignments = append(assignments, Assignment{
			TicketID:        item.ticket.ID,
			Title:           item.ticket.Title,
			AssignedAgentID: winner.ID,
			Priority:        item.priority,
			MatchedSkills:   item.matchedSkills,
			Rationale:       buildRationale(winner, item.matchedSkills, best, item.priority),
			Score:           best,
		})

		a.logger.Debug("ticket assigned",
			zap.String("ticket_id", item.ticket.ID),
			zap.String("agent_id", winner.ID),
			zap.Int("priority", item.priority),
			zap.Float64("total_score", best.TotalScore),
			zap.Strings("matched_skills", item.matchedSkills))
	}

	for _, item := range items {
		if item.state != stateAssigned {
			return nil, fmt.Errorf("%w: ticket %s left unassigned", ErrValidation, item.ticket.ID)
		}
	}
	return assignments, nil
}

// pickWinner scores every agent against the ticket using the live load map
// and applies the deterministic tie-break: highest total, then highest skill
// sub-score, then lowest current load, then lowest agent id. Unavailable
// agents are scored like everyone else; availability only costs them the
// bonus.
func (a *Allocator) pickWinner(agents []models.Agent, item *workItem, loads map[string]int) (models.Agent, ScoreBreakdown) {
	winner := agents[0]
	best := Score(winner, item.matchedSkills, item.priority, loads[winner.ID])

	for _, agent := range agents[1:] {
		b := Score(agent, item.matchedSkills, item.priority, loads[agent.ID])
		if beats(agent, b, winner, best, loads) {
			winner, best = agent, b
		}
	}
	return winner, best
}

func beats(agent models.Agent, b ScoreBreakdown, winner models.Agent, best ScoreBreakdown, loads map[string]int) bool {
	if b.TotalScore != best.TotalScore {
		return b.TotalScore > best.TotalScore
	}
	if b.SkillScore != best.SkillScore {
		return b.SkillScore > best.SkillScore
	}
	if loads[agent.ID] != loads[winner.ID] {
		return loads[agent.ID] < loads[winner.ID]
	}
	return agent.ID < winner.ID
}

func validateSnapshot(agents []models.Agent, tickets []models.Ticket) error {
	if len(tickets) > 0 && len(agents) == 0 {
		return fmt.Errorf("%w: %w", ErrValidation, ErrNoAgents)
	}

	seen := make(map[string]struct{}, len(agents))
	for i, agent := range agents {
		if agent.ID == "" {
			return fmt.Errorf("%w: agent at index %d has no id", ErrValidation, i)
		}
		if _, dup := seen[agent.ID]; dup {
			return fmt.Errorf("%w: duplicate agent id %s", ErrValidation, agent.ID)
		}
		seen[agent.ID] = struct{}{}
		if agent.ExperienceLevel < 0 {
			return fmt.Errorf("%w: agent %s has negative experience level", ErrValidation, agent.ID)
		}
		if agent.CurrentLoad < 0 {
			return fmt.Errorf("%w: agent %s has negative current load", ErrValidation, agent.ID)
		}
	}

	seenTickets := make(map[string]struct{}, len(tickets))
	for i, t := range tickets {
		if t.ID == "" {
			return fmt.Errorf("%w: ticket at index %d has no id", ErrValidation, i)
		}
		if _, dup := seenTickets[t.ID]; dup {
			return fmt.Errorf("%w: duplicate ticket id %s", ErrValidation, t.ID)
		}
		seenTickets[t.ID] = struct{}{}
		if t.Title == "" && t.Description == "" {
			return fmt.Errorf("%w: ticket %s has no title or description", ErrValidation, t.ID)
		}
	}
	return nil
}
