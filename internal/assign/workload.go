package assign

import (
	"context"

	"go.uber.org/zap"

	"github.com/buckeye-it/ticket-autopilot/internal/ticketing"
)

// WorkloadUnknown is returned when a live workload lookup fails. It is
// higher than any sane workload limit, so a technician with an unknown
// workload is never selected.
const WorkloadUnknown = 999

// WorkloadFunc reports a technician's current counted-status ticket count.
type WorkloadFunc func(ctx context.Context, technicianID int) int

// WorkloadSnapshot is a per-run read-through cache over live workload
// queries. Workload does not change from within a run, so a hit is served
// from cache; lookup failures are not cached and retry on the next ask.
type WorkloadSnapshot struct {
	client   ticketing.Client
	statuses []string
	logger   *zap.Logger
	counts   map[int]int
}

// NewWorkloadSnapshot builds an empty snapshot for one pipeline run.
func NewWorkloadSnapshot(client ticketing.Client, countedStatuses []string, logger *zap.Logger) *WorkloadSnapshot {
	return &WorkloadSnapshot{
		client:   client,
		statuses: countedStatuses,
		logger:   logger,
		counts:   make(map[int]int),
	}
}

// Count returns the technician's live workload, or WorkloadUnknown when
// the platform cannot answer.
func (s *WorkloadSnapshot) Count(ctx context.Context, technicianID int) int {
	if count, ok := s.counts[technicianID]; ok {
		return count
	}
	count, err := s.client.FetchWorkload(ctx, technicianID, s.statuses)
	if err != nil {
		s.logger.Warn("workload lookup failed, excluding technician",
			zap.Int("technician_id", technicianID),
			zap.Error(err))
		return WorkloadUnknown
	}
	s.counts[technicianID] = count
	return count
}
