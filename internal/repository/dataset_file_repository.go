package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/godilite/ticket-triage/internal/engine"
	"github.com/godilite/ticket-triage/internal/repository/models"
)

// datasetDocument is the on-disk shape of the input snapshot.
type datasetDocument struct {
	Agents  []models.Agent  `json:"agents"`
	Tickets []models.Ticket `json:"tickets"`
}

// FileDatasetRepository reads the agent/ticket snapshot from a single JSON
// dataset file and writes the run result to an output JSON file. Tickets are
// returned in file order, which the allocator treats as the stable input
// order.
type FileDatasetRepository struct {
	datasetPath string
	outputPath  string
}

// NewFileDatasetRepository creates a repository over the given input and
// output paths.
func NewFileDatasetRepository(datasetPath, outputPath string) *FileDatasetRepository {
	return &FileDatasetRepository{
		datasetPath: datasetPath,
		outputPath:  outputPath,
	}
}

func (r *FileDatasetRepository) load() (datasetDocument, error) {
	raw, err := os.ReadFile(r.datasetPath)
	if err != nil {
		return datasetDocument{}, fmt.Errorf("read dataset %s: %w", r.datasetPath, err)
	}

	var doc datasetDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return datasetDocument{}, fmt.Errorf("parse dataset %s: %w", r.datasetPath, err)
	}
	return doc, nil
}

// ListAgents returns the roster snapshot from the dataset file.
func (r *FileDatasetRepository) ListAgents(_ context.Context) ([]models.Agent, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Agents, nil
}

// ListTickets returns the ticket queue from the dataset file, in file order.
func (r *FileDatasetRepository) ListTickets(_ context.Context) ([]models.Ticket, error) {
	doc, err := r.load()
	if err != nil {
		return nil, err
	}
	return doc.Tickets, nil
}

// SaveResult writes the run result as pretty-printed JSON to the output path.
func (r *FileDatasetRepository) SaveResult(_ context.Context, result engine.Result) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	if err := os.WriteFile(r.outputPath, data, 0o644); err != nil {
		return fmt.Errorf("write result %s: %w", r.outputPath, err)
	}
	return nil
}
