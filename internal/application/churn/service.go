package churn

import (
	"context"
	"time"

	"github.com/hearth-labs/hearth/internal/application/churn/usecases"
	churndomain "github.com/hearth-labs/hearth/internal/domain/churn"
	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// AssessmentStore caches recent assessments so repeated reads for the same
// customer do not re-query engagement data. A nil store disables caching.
type AssessmentStore interface {
	Get(ctx context.Context, userID uint) (*churndomain.RiskAssessment, error)
	Set(ctx context.Context, userID uint, assessment churndomain.RiskAssessment) error
}

// Service is the application facade for churn scoring.
type Service struct {
	assessSubscriber *usecases.AssessSubscriberUseCase
	rescore          *usecases.RescoreSubscriptionsUseCase
	generateReport   *usecases.GenerateReportUseCase
	assessments      AssessmentStore
	logger           logger.Interface
}

func NewService(
	subscriptionRepo subscription.Repository,
	engagement churndomain.EngagementReader,
	attemptRepo retention.AttemptRepository,
	assessments AssessmentStore,
	bookingWindow time.Duration,
	logger logger.Interface,
) *Service {
	return &Service{
		assessSubscriber: usecases.NewAssessSubscriberUseCase(subscriptionRepo, engagement, bookingWindow, logger),
		rescore:          usecases.NewRescoreSubscriptionsUseCase(subscriptionRepo, engagement, bookingWindow, logger),
		generateReport:   usecases.NewGenerateReportUseCase(subscriptionRepo, attemptRepo, logger),
		assessments:      assessments,
		logger:           logger,
	}
}

// AssessSubscriber scores one customer on demand, serving a cached assessment
// when one is fresh enough. Cache failures degrade to a direct computation.
func (s *Service) AssessSubscriber(ctx context.Context, userID uint) (churndomain.RiskAssessment, error) {
	if s.assessments != nil {
		cached, err := s.assessments.Get(ctx, userID)
		if err != nil {
			s.logger.Warnw("Failed to read assessment cache", "user_id", userID, "error", err)
		} else if cached != nil {
			return *cached, nil
		}
	}

	assessment, err := s.assessSubscriber.Execute(ctx, userID)
	if err != nil {
		return churndomain.RiskAssessment{}, err
	}

	if s.assessments != nil {
		if err := s.assessments.Set(ctx, userID, assessment); err != nil {
			s.logger.Warnw("Failed to cache assessment", "user_id", userID, "error", err)
		}
	}
	return assessment, nil
}

// RescoreAll re-scores every active subscription.
func (s *Service) RescoreAll(ctx context.Context) (usecases.RescoreSummary, error) {
	return s.rescore.Execute(ctx)
}

// GenerateReport builds the churn prevention report.
func (s *Service) GenerateReport(ctx context.Context) (usecases.PreventionReport, error) {
	return s.generateReport.Execute(ctx)
}
