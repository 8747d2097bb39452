package httpapi

import (
	"context"
	"time"

	"github.com/schoolfit/fitness-server/internal/service"
	"github.com/schoolfit/fitness-server/pkg/cache"
)

// Cacher defines the interface for response cache operations.
type Cacher interface {
	Close() error
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, expiration time.Duration) error
}

type StatisticsService interface {
	GetGradeStatistics(ctx context.Context, gradeID string, year int) (*service.GradeAggregate, error)
	GetStudentComposite(ctx context.Context, studentID string, year int) (*service.CompositeRecord, error)
	GetStudentHistory(ctx context.Context, studentID string) (*service.StudentHistory, error)
	GetGradeHistory(ctx context.Context, gradeID string) (*service.GradeHistory, error)
	InvalidateCache(scope string) int
	CacheStats() cache.Stats
}
