// api/audit/service.go
package audit

import (
	"context"
	"time"
)

type Service interface {
	Record(ctx context.Context, entry Entry) error
	QueryLogs(ctx context.Context, from, to time.Time, actorID, resourceID string) ([]Entry, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Record(ctx context.Context, entry Entry) error {
	return s.repo.Record(ctx, entry)
}

func (s *service) QueryLogs(ctx context.Context, from, to time.Time, actorID, resourceID string) ([]Entry, error) {
	return s.repo.QueryLogs(ctx, from, to, actorID, resourceID)
}
