package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/godilite/ticket-triage/internal/engine"
	"github.com/godilite/ticket-triage/internal/repository/models"
)

// SQLiteDatasetRepository reads the snapshot from and persists assignments to
// a SQLite database. Tickets are ordered by creation timestamp (then id),
// which defines the allocator's stable input order for this source.
type SQLiteDatasetRepository struct {
	db *sql.DB
}

func NewSQLiteDatasetRepository(db *sql.DB) *SQLiteDatasetRepository {
	return &SQLiteDatasetRepository{db: db}
}

// EnsureSchema creates the dataset and result tables when missing.
func (r *SQLiteDatasetRepository) EnsureSchema(ctx context.Context) error {
	const schema = `
		CREATE TABLE IF NOT EXISTS agents (
			id               TEXT PRIMARY KEY,
			name             TEXT NOT NULL,
			skills           TEXT NOT NULL DEFAULT '{}',
			experience_level REAL NOT NULL DEFAULT 0,
			current_load     INTEGER NOT NULL DEFAULT 0,
			available        INTEGER NOT NULL DEFAULT 1
		);
		CREATE TABLE IF NOT EXISTS tickets (
			id                 TEXT PRIMARY KEY,
			title              TEXT NOT NULL,
			description        TEXT NOT NULL DEFAULT '',
			priority           INTEGER,
			creation_timestamp INTEGER
		);
		CREATE TABLE IF NOT EXISTS assignment_runs (
			run_id       TEXT PRIMARY KEY,
			generated_at TIMESTAMP NOT NULL
		);
		CREATE TABLE IF NOT EXISTS assignments (
			run_id      TEXT NOT NULL REFERENCES assignment_runs(run_id),
			position    INTEGER NOT NULL,
			ticket_id   TEXT NOT NULL,
			agent_id    TEXT NOT NULL,
			priority    INTEGER NOT NULL,
			total_score REAL NOT NULL,
			rationale   TEXT NOT NULL,
			breakdown   TEXT NOT NULL,
			PRIMARY KEY (run_id, position)
		);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// ListAgents fetches the full roster snapshot.
func (r *SQLiteDatasetRepository) ListAgents(ctx context.Context) ([]models.Agent, error) {
	const query = `
		SELECT id, name, skills, experience_level, current_load, available
		FROM agents
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListAgents: %w", err)
	}
	defer rows.Close()

	var agents []models.Agent
	for rows.Next() {
		var a models.Agent
		var skillsJSON string
		if err := rows.Scan(&a.ID, &a.Name, &skillsJSON, &a.ExperienceLevel, &a.CurrentLoad, &a.Available); err != nil {
			return nil, fmt.Errorf("scan ListAgents row: %w", err)
		}
		if err := json.Unmarshal([]byte(skillsJSON), &a.Skills); err != nil {
			return nil, fmt.Errorf("parse skills for agent %s: %w", a.ID, err)
		}
		agents = append(agents, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListAgents: %w", err)
	}
	return agents, nil
}

// ListTickets fetches the ticket queue in creation order.
func (r *SQLiteDatasetRepository) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	const query = `
		SELECT id, title, description, priority, creation_timestamp
		FROM tickets
		ORDER BY COALESCE(creation_timestamp, 0), id
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query ListTickets: %w", err)
	}
	defer rows.Close()

	var tickets []models.Ticket
	for rows.Next() {
		var t models.Ticket
		var priority sql.NullInt64
		var createdAt sql.NullInt64
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &priority, &createdAt); err != nil {
			return nil, fmt.Errorf("scan ListTickets row: %w", err)
		}
		if priority.Valid {
			t.Priority = int(priority.Int64)
		}
		if createdAt.Valid {
			t.CreatedAt = createdAt.Int64
		}
		tickets = append(tickets, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate ListTickets: %w", err)
	}
	return tickets, nil
}

// SaveResult persists one run and its assignments in a single transaction.
func (r *SQLiteDatasetRepository) SaveResult(ctx context.Context, result engine.Result) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin SaveResult tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO assignment_runs (run_id, generated_at) VALUES (?, ?)`,
		result.RunID, result.GeneratedAt,
	); err != nil {
		return fmt.Errorf("insert assignment run: %w", err)
	}

	const insert = `
		INSERT INTO assignments
			(run_id, position, ticket_id, agent_id, priority, total_score, rationale, breakdown)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("prepare assignment insert: %w", err)
	}
	defer stmt.Close()

	for i, a := range result.Assignments {
		breakdown, err := json.Marshal(a.Score)
		if err != nil {
			return fmt.Errorf("marshal breakdown for ticket %s: %w", a.TicketID, err)
		}
		if _, err := stmt.ExecContext(ctx,
			result.RunID, i, a.TicketID, a.AssignedAgentID, a.Priority,
			a.Score.TotalScore, a.Rationale, string(breakdown),
		); err != nil {
			return fmt.Errorf("insert assignment for ticket %s: %w", a.TicketID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit SaveResult tx: %w", err)
	}
	return nil
}
