package repo

import (
	"context"

	"github.com/hamed0406/netwatchdog/internal/domain"
)

// ResultStore receives every monitor cycle. Implementations are process-local;
// nothing here survives a restart.
type ResultStore interface {
	// Append stores r and returns it as stored, with its sequence number set.
	Append(ctx context.Context, r domain.ProbeResult) (domain.ProbeResult, error)
	Recent(ctx context.Context, limit int) ([]domain.ProbeResult, error)
}

// StatusStore holds the latest snapshot of the monitor.
type StatusStore interface {
	SetStatus(ctx context.Context, s domain.Status) error
	Status(ctx context.Context) (domain.Status, error)
}
