package repository

import (
	"context"
	"time"

	"vocabgraph/internal/domain"

	"github.com/google/uuid"
)

// Run is one archived pipeline execution: the inputs it read and the full
// frequency record it produced
type Run struct {
	ID           string                  `json:"id"`
	CreatedAt    time.Time               `json:"created_at"`
	GlossaryPath string                  `json:"glossary_path"`
	ReportPath   string                  `json:"report_path"`
	TermCount    int                     `json:"term_count"`
	TotalHits    int                     `json:"total_hits"`
	Record       *domain.FrequencyRecord `json:"record,omitempty"`
}

// NewRun creates a run entry for a finished scan
func NewRun(glossaryPath, reportPath string, rec *domain.FrequencyRecord) *Run {
	return &Run{
		ID:           uuid.NewString(),
		CreatedAt:    time.Now().UTC(),
		GlossaryPath: glossaryPath,
		ReportPath:   reportPath,
		TermCount:    rec.Len(),
		TotalHits:    rec.Total(),
		Record:       rec,
	}
}

// Repository archives pipeline runs. Each run is write-once; the pipeline
// never reads the archive during a scan.
type Repository interface {
	// RecordRun persists a run and its full frequency record
	RecordRun(ctx context.Context, run *Run) error

	// GetRun loads a run with its record
	GetRun(ctx context.Context, id string) (*Run, error)

	// ListRuns returns the most recent runs, newest first, without records
	ListRuns(ctx context.Context, limit int) ([]*Run, error)

	// Close releases the underlying storage
	Close() error
}
