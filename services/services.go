package services

import (
	"droboapp-panel/models"
	"droboapp-panel/utils/logger"
)

// ServiceContainerInterface exposes the services behind the control panel
type ServiceContainerInterface interface {
	GetAppControlService() *AppControlService
	GetContentService() ContentServiceInterface
}

// Service implements ServiceContainerInterface
type Service struct {
	appControlService *AppControlService
	contentService    ContentServiceInterface
}

// NewService creates a new service container with all dependencies injected
func NewService(config *models.Config, runner ProcessRunner, recorder OperationRecorder, logger logger.Logger) ServiceContainerInterface {
	return &Service{
		appControlService: NewAppControlService(config, runner, recorder, logger),
		contentService:    NewContentService(config, logger),
	}
}

// GetAppControlService returns the app control service
func (s *Service) GetAppControlService() *AppControlService {
	return s.appControlService
}

// GetContentService returns the content service interface
func (s *Service) GetContentService() ContentServiceInterface {
	return s.contentService
}
