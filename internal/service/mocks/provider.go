package mocks

import (
	"context"
	"errors"

	"github.com/schoolfit/fitness-server/internal/repository/models"
)

// MockDataProvider is a mock implementation of the DataProvider interface
// for testing the service layer.
type MockDataProvider struct {
	AvailableYearsFunc        func(ctx context.Context, gradeID string) ([]int, error)
	StudentAvailableYearsFunc func(ctx context.Context, studentID string) ([]int, error)
	FetchPageFunc             func(ctx context.Context, gradeID string, year, page, pageSize int) (models.Page, error)
	StudentByIDFunc           func(ctx context.Context, studentID string, year int) (*models.RawStudentRecord, error)
}

// AvailableYears implements the DataProvider interface.
func (m *MockDataProvider) AvailableYears(ctx context.Context, gradeID string) ([]int, error) {
	if m.AvailableYearsFunc != nil {
		return m.AvailableYearsFunc(ctx, gradeID)
	}
	return nil, errors.New("AvailableYearsFunc not implemented")
}

// StudentAvailableYears implements the DataProvider interface.
func (m *MockDataProvider) StudentAvailableYears(ctx context.Context, studentID string) ([]int, error) {
	if m.StudentAvailableYearsFunc != nil {
		return m.StudentAvailableYearsFunc(ctx, studentID)
	}
	return nil, errors.New("StudentAvailableYearsFunc not implemented")
}

// FetchPage implements the DataProvider interface.
func (m *MockDataProvider) FetchPage(ctx context.Context, gradeID string, year, page, pageSize int) (models.Page, error) {
	if m.FetchPageFunc != nil {
		return m.FetchPageFunc(ctx, gradeID, year, page, pageSize)
	}
	return models.Page{}, errors.New("FetchPageFunc not implemented")
}

// StudentByID implements the DataProvider interface.
func (m *MockDataProvider) StudentByID(ctx context.Context, studentID string, year int) (*models.RawStudentRecord, error) {
	if m.StudentByIDFunc != nil {
		return m.StudentByIDFunc(ctx, studentID, year)
	}
	return nil, errors.New("StudentByIDFunc not implemented")
}
