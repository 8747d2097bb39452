package mocks

import (
	"context"
	"errors"

	"github.com/schoolfit/fitness-server/internal/service"
	"github.com/schoolfit/fitness-server/pkg/cache"
)

// MockStatisticsService is a mock implementation of the StatisticsService
// interface for testing the handler layer. It uses function-based mocking
// for flexibility.
type MockStatisticsService struct {
	GetGradeStatisticsFunc  func(ctx context.Context, gradeID string, year int) (*service.GradeAggregate, error)
	GetStudentCompositeFunc func(ctx context.Context, studentID string, year int) (*service.CompositeRecord, error)
	GetStudentHistoryFunc   func(ctx context.Context, studentID string) (*service.StudentHistory, error)
	GetGradeHistoryFunc     func(ctx context.Context, gradeID string) (*service.GradeHistory, error)
	InvalidateCacheFunc     func(scope string) int
	CacheStatsFunc          func() cache.Stats
}

// GetGradeStatistics implements the StatisticsService interface
func (m *MockStatisticsService) GetGradeStatistics(ctx context.Context, gradeID string, year int) (*service.GradeAggregate, error) {
	if m.GetGradeStatisticsFunc != nil {
		return m.GetGradeStatisticsFunc(ctx, gradeID, year)
	}
	return nil, errors.New("GetGradeStatisticsFunc not implemented")
}

// GetStudentComposite implements the StatisticsService interface
func (m *MockStatisticsService) GetStudentComposite(ctx context.Context, studentID string, year int) (*service.CompositeRecord, error) {
	if m.GetStudentCompositeFunc != nil {
		return m.GetStudentCompositeFunc(ctx, studentID, year)
	}
	return nil, errors.New("GetStudentCompositeFunc not implemented")
}

// GetStudentHistory implements the StatisticsService interface
func (m *MockStatisticsService) GetStudentHistory(ctx context.Context, studentID string) (*service.StudentHistory, error) {
	if m.GetStudentHistoryFunc != nil {
		return m.GetStudentHistoryFunc(ctx, studentID)
	}
	return nil, errors.New("GetStudentHistoryFunc not implemented")
}

// GetGradeHistory implements the StatisticsService interface
func (m *MockStatisticsService) GetGradeHistory(ctx context.Context, gradeID string) (*service.GradeHistory, error) {
	if m.GetGradeHistoryFunc != nil {
		return m.GetGradeHistoryFunc(ctx, gradeID)
	}
	return nil, errors.New("GetGradeHistoryFunc not implemented")
}

// InvalidateCache implements the StatisticsService interface
func (m *MockStatisticsService) InvalidateCache(scope string) int {
	if m.InvalidateCacheFunc != nil {
		return m.InvalidateCacheFunc(scope)
	}
	return 0
}

// CacheStats implements the StatisticsService interface
func (m *MockStatisticsService) CacheStats() cache.Stats {
	if m.CacheStatsFunc != nil {
		return m.CacheStatsFunc()
	}
	return cache.Stats{}
}
