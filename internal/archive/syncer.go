package archive

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Invoker2025/lotofacil-api/internal/draw"
)

// Collector is the slice of the collector the syncer needs.
type Collector interface {
	LastN(ctx context.Context, limit int) []draw.Draw
}

// SyncResult summarizes one archive sync run.
type SyncResult struct {
	Collected int
	Archived  int
	Skipped   int
}

// Syncer bulk-imports recently collected draws into the archive.
type Syncer struct {
	collector Collector
	repo      Repository
	logger    *slog.Logger
}

func NewSyncer(collector Collector, repo Repository, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Syncer{collector: collector, repo: repo, logger: logger}
}

// Sync collects the most recent limit draws and upserts each into the
// archive. Draws that fail to convert are skipped, not fatal; upstream data
// occasionally carries junk and one bad row should not abort a batch.
func (s *Syncer) Sync(ctx context.Context, limit int) (*SyncResult, error) {
	draws := s.collector.LastN(ctx, limit)
	result := &SyncResult{Collected: len(draws)}
	for _, d := range draws {
		record, err := FromDraw(d)
		if err != nil {
			s.logger.Warn("skipping unarchivable draw", "contest", d.Contest, "error", err)
			result.Skipped++
			continue
		}
		if err := s.repo.Upsert(ctx, &record); err != nil {
			return result, fmt.Errorf("repo.Upsert > %w", err)
		}
		result.Archived++
	}
	s.logger.Info("archive sync finished",
		"collected", result.Collected, "archived", result.Archived, "skipped", result.Skipped)
	return result, nil
}
