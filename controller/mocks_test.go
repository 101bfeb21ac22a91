package controller

import (
	"context"
	"droboapp-panel/models"
	"droboapp-panel/utils/logger"
	"html/template"

	"github.com/stretchr/testify/mock"
)

// MockControllerLogger implements the logger interface for testing
type MockControllerLogger struct {
	mock.Mock
}

func (m *MockControllerLogger) Debug(args ...interface{}) {
	m.Called(args...)
}

func (m *MockControllerLogger) Debugf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockControllerLogger) Info(args ...interface{}) {
	m.Called(args...)
}

func (m *MockControllerLogger) Infof(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockControllerLogger) Warn(args ...interface{}) {
	m.Called(args...)
}

func (m *MockControllerLogger) Warnf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockControllerLogger) Error(args ...interface{}) {
	m.Called(args...)
}

func (m *MockControllerLogger) Errorf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockControllerLogger) Fatal(args ...interface{}) {
	m.Called(args...)
}

func (m *MockControllerLogger) Fatalf(format string, args ...interface{}) {
	m.Called(format, args)
}

func (m *MockControllerLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return m
}

func newMockControllerLogger() *MockControllerLogger {
	l := &MockControllerLogger{}
	l.On("Debug", mock.Anything).Return().Maybe()
	l.On("Debugf", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	l.On("Info", mock.Anything).Return().Maybe()
	l.On("Infof", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	l.On("Warn", mock.Anything).Return().Maybe()
	l.On("Warnf", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	l.On("Error", mock.Anything).Return().Maybe()
	l.On("Errorf", mock.AnythingOfType("string"), mock.Anything).Return().Maybe()
	return l
}

// MockAppControlService implements services.AppControlServiceInterface
type MockAppControlService struct {
	mock.Mock
}

func (m *MockAppControlService) Dispatch(ctx context.Context, op models.Operation) *models.OperationOutcome {
	args := m.Called(ctx, op)
	return args.Get(0).(*models.OperationOutcome)
}

func (m *MockAppControlService) IsRunning(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockAppControlService) Identity() models.AppIdentity {
	args := m.Called()
	return args.Get(0).(models.AppIdentity)
}

// MockContentService implements services.ContentServiceInterface
type MockContentService struct {
	mock.Mock
}

func (m *MockContentService) ConfigView() models.ConfigView {
	args := m.Called()
	return args.Get(0).(models.ConfigView)
}

func (m *MockContentService) Fragments() map[string]template.HTML {
	args := m.Called()
	return args.Get(0).(map[string]template.HTML)
}

func (m *MockContentService) Logs() []models.LogExcerpt {
	args := m.Called()
	return args.Get(0).([]models.LogExcerpt)
}

// MockStateService implements services.StateServiceInterface
type MockStateService struct {
	mock.Mock
}

func (m *MockStateService) Snapshot(ctx context.Context) (*models.StateSnapshot, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StateSnapshot), args.Error(1)
}
