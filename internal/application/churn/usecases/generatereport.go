package usecases

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/hearth-labs/hearth/internal/domain/churn"
	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/domain/subscription"
	"github.com/hearth-labs/hearth/internal/shared/biztime"
	"github.com/hearth-labs/hearth/internal/shared/logger"
)

// reportAttemptWindowDays is the trailing window for the attempt count.
const reportAttemptWindowDays = 30

// ReportEntry is one high-risk account in the report.
type ReportEntry struct {
	UserID         uint            `json:"user_id"`
	SubscriptionID uint            `json:"subscription_id"`
	Score          float64         `json:"score"`
	Level          churn.RiskLevel `json:"level"`
}

// PreventionReport summarizes the current churn risk posture.
type PreventionReport struct {
	GeneratedAt         time.Time               `json:"generated_at"`
	ActiveSubscriptions int                     `json:"active_subscriptions"`
	AverageScore        float64                 `json:"average_score"`
	Distribution        map[churn.RiskLevel]int `json:"distribution"`
	HighestRisk         []ReportEntry           `json:"highest_risk"`
	RecentAttempts      int64                   `json:"recent_attempts"`
}

// GenerateReportUseCase builds a churn prevention report from stored scores
// and the retention audit trail. Sub-queries are not individually recovered:
// any failing read aborts the whole report.
type GenerateReportUseCase struct {
	subscriptionRepo subscription.Repository
	attemptRepo      retention.AttemptRepository
	logger           logger.Interface
}

func NewGenerateReportUseCase(
	subscriptionRepo subscription.Repository,
	attemptRepo retention.AttemptRepository,
	logger logger.Interface,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		subscriptionRepo: subscriptionRepo,
		attemptRepo:      attemptRepo,
		logger:           logger,
	}
}

// Execute generates the report.
func (uc *GenerateReportUseCase) Execute(ctx context.Context) (PreventionReport, error) {
	subs, err := uc.subscriptionRepo.FindActive(ctx)
	if err != nil {
		return PreventionReport{}, fmt.Errorf("failed to load active subscriptions: %w", err)
	}

	attemptCount, err := uc.attemptRepo.CountSince(ctx, biztime.DaysAgoUTC(reportAttemptWindowDays))
	if err != nil {
		return PreventionReport{}, fmt.Errorf("failed to count retention attempts: %w", err)
	}

	distribution := map[churn.RiskLevel]int{
		churn.LevelMinimal:  0,
		churn.LevelLow:      0,
		churn.LevelMedium:   0,
		churn.LevelHigh:     0,
		churn.LevelCritical: 0,
	}

	var total float64
	entries := make([]ReportEntry, 0, len(subs))
	for _, sub := range subs {
		score := sub.ChurnRiskScore()
		level := churn.LevelForScore(score)
		distribution[level]++
		total += score
		entries = append(entries, ReportEntry{
			UserID:         sub.UserID(),
			SubscriptionID: sub.ID(),
			Score:          score,
			Level:          level,
		})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > 10 {
		entries = entries[:10]
	}

	average := 0.0
	if len(subs) > 0 {
		average = math.Round(total/float64(len(subs))*100) / 100
	}

	report := PreventionReport{
		GeneratedAt:         biztime.NowUTC(),
		ActiveSubscriptions: len(subs),
		AverageScore:        average,
		Distribution:        distribution,
		HighestRisk:         entries,
		RecentAttempts:      attemptCount,
	}

	uc.logger.Debugw("churn prevention report generated",
		"active_subscriptions", report.ActiveSubscriptions,
		"average_score", report.AverageScore,
	)

	return report, nil
}
