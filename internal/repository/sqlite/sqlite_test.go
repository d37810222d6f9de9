package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"vocabgraph/internal/domain"
	"vocabgraph/internal/repository"
)

func testRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := New(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("failed to open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testRecord() *domain.FrequencyRecord {
	return &domain.FrequencyRecord{Counts: []domain.TermCount{
		{Term: "generative ai", Count: 3},
		{Term: "latency", Count: 1},
		{Term: "hallucination", Count: 0},
	}}
}

func TestRecordRun(t *testing.T) {
	ctx := context.Background()

	t.Run("round trips a run with its record", func(t *testing.T) {
		repo := testRepo(t)
		run := repository.NewRun("vocabulary.md", "research.md", testRecord())

		if err := repo.RecordRun(ctx, run); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		got, err := repo.GetRun(ctx, run.ID)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got.GlossaryPath != "vocabulary.md" || got.ReportPath != "research.md" {
			t.Errorf("unexpected paths %q, %q", got.GlossaryPath, got.ReportPath)
		}
		if got.TermCount != 3 || got.TotalHits != 4 {
			t.Errorf("unexpected aggregates term_count=%d total_hits=%d", got.TermCount, got.TotalHits)
		}
		if got.Record.Len() != 3 {
			t.Fatalf("expected 3 record entries, got %d", got.Record.Len())
		}
		if !got.CreatedAt.Equal(run.CreatedAt) {
			t.Errorf("expected timestamp %v, got %v", run.CreatedAt, got.CreatedAt)
		}
	})

	t.Run("record order preserved", func(t *testing.T) {
		repo := testRepo(t)
		run := repository.NewRun("v.md", "r.md", testRecord())
		if err := repo.RecordRun(ctx, run); err != nil {
			t.Fatal(err)
		}

		got, err := repo.GetRun(ctx, run.ID)
		if err != nil {
			t.Fatal(err)
		}
		want := []string{"generative ai", "latency", "hallucination"}
		for i, term := range got.Record.Terms() {
			if term != want[i] {
				t.Errorf("position %d: expected %q, got %q", i, want[i], term)
			}
		}
	})

	t.Run("zero counts survive the archive", func(t *testing.T) {
		repo := testRepo(t)
		run := repository.NewRun("v.md", "r.md", testRecord())
		if err := repo.RecordRun(ctx, run); err != nil {
			t.Fatal(err)
		}

		got, _ := repo.GetRun(ctx, run.ID)
		if count, ok := got.Record.Get("hallucination"); !ok || count != 0 {
			t.Errorf("expected zero-count term present, got %d (present=%t)", count, ok)
		}
	})

	t.Run("duplicate run ID rejected", func(t *testing.T) {
		repo := testRepo(t)
		run := repository.NewRun("v.md", "r.md", testRecord())
		if err := repo.RecordRun(ctx, run); err != nil {
			t.Fatal(err)
		}
		if err := repo.RecordRun(ctx, run); err == nil {
			t.Error("expected error for duplicate run ID")
		}
	})
}

func TestGetRun(t *testing.T) {
	t.Run("missing run errors", func(t *testing.T) {
		repo := testRepo(t)
		if _, err := repo.GetRun(context.Background(), "no-such-run"); err == nil {
			t.Error("expected error for missing run")
		}
	})
}

func TestListRuns(t *testing.T) {
	ctx := context.Background()

	t.Run("newest first", func(t *testing.T) {
		repo := testRepo(t)

		older := repository.NewRun("v.md", "r.md", testRecord())
		older.CreatedAt = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		newer := repository.NewRun("v.md", "r.md", testRecord())
		newer.CreatedAt = time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

		if err := repo.RecordRun(ctx, older); err != nil {
			t.Fatal(err)
		}
		if err := repo.RecordRun(ctx, newer); err != nil {
			t.Fatal(err)
		}

		runs, err := repo.ListRuns(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].ID != newer.ID {
			t.Errorf("expected newest run first, got %s", runs[0].ID)
		}
	})

	t.Run("fractional timestamps sort chronologically", func(t *testing.T) {
		repo := testRepo(t)

		// .5s trims shorter than .52s in RFC 3339 text and would mis-sort
		// under string comparison
		older := repository.NewRun("v.md", "r.md", testRecord())
		older.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 500_000_000, time.UTC)
		newer := repository.NewRun("v.md", "r.md", testRecord())
		newer.CreatedAt = time.Date(2026, 3, 1, 10, 0, 0, 520_000_000, time.UTC)

		if err := repo.RecordRun(ctx, older); err != nil {
			t.Fatal(err)
		}
		if err := repo.RecordRun(ctx, newer); err != nil {
			t.Fatal(err)
		}

		runs, err := repo.ListRuns(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 2 || runs[0].ID != newer.ID {
			t.Errorf("expected newest run first, got %v", runs)
		}
	})

	t.Run("respects limit", func(t *testing.T) {
		repo := testRepo(t)
		for i := 0; i < 5; i++ {
			if err := repo.RecordRun(ctx, repository.NewRun("v.md", "r.md", testRecord())); err != nil {
				t.Fatal(err)
			}
		}

		runs, err := repo.ListRuns(ctx, 3)
		if err != nil {
			t.Fatal(err)
		}
		if len(runs) != 3 {
			t.Errorf("expected 3 runs, got %d", len(runs))
		}
	})

	t.Run("list omits records", func(t *testing.T) {
		repo := testRepo(t)
		if err := repo.RecordRun(ctx, repository.NewRun("v.md", "r.md", testRecord())); err != nil {
			t.Fatal(err)
		}

		runs, _ := repo.ListRuns(ctx, 1)
		if len(runs) == 1 && runs[0].Record != nil {
			t.Error("expected list entries without records")
		}
	})

	t.Run("empty archive", func(t *testing.T) {
		repo := testRepo(t)
		runs, err := repo.ListRuns(ctx, 10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 0 {
			t.Errorf("expected no runs, got %d", len(runs))
		}
	})
}
