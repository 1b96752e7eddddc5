// test/mock/audit.go
package mock

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/alcaldia-digital/ausentismo/api/audit"
)

// MockAuditService is a mock implementation of audit.Service
type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockAuditService) QueryLogs(ctx context.Context, from, to time.Time, actorID, resourceID string) ([]audit.Entry, error) {
	args := m.Called(ctx, from, to, actorID, resourceID)
	return args.Get(0).([]audit.Entry), args.Error(1)
}
