package mappers

import (
	"fmt"

	"github.com/hearth-labs/hearth/internal/domain/subscription"
	vo "github.com/hearth-labs/hearth/internal/domain/subscription/valueobjects"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/models"
)

type SubscriptionMapper interface {
	ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error)
	ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error)
	ToEntities(models []*models.SubscriptionModel) ([]*subscription.Subscription, error)
}

type subscriptionMapperImpl struct{}

func NewSubscriptionMapper() SubscriptionMapper {
	return &subscriptionMapperImpl{}
}

func (m *subscriptionMapperImpl) ToEntity(model *models.SubscriptionModel) (*subscription.Subscription, error) {
	if model == nil {
		return nil, nil
	}

	tier, err := vo.NewTier(model.Tier)
	if err != nil {
		return nil, fmt.Errorf("failed to parse tier: %w", err)
	}

	frequency, err := vo.NewPaymentFrequency(model.Frequency)
	if err != nil {
		return nil, fmt.Errorf("failed to parse payment frequency: %w", err)
	}

	entity, err := subscription.Reconstruct(subscription.ReconstructParams{
		ID:               model.ID,
		UserID:           model.UserID,
		Tier:             tier,
		Frequency:        frequency,
		Status:           vo.SubscriptionStatus(model.Status),
		StartDate:        model.StartDate,
		ChurnRiskScore:   model.ChurnRiskScore,
		AvailableCredits: model.AvailableCredits,
		CancelledAt:      model.CancelledAt,
		CancelReason:     model.CancelReason,
		Version:          model.Version,
		CreatedAt:        model.CreatedAt,
		UpdatedAt:        model.UpdatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct subscription: %w", err)
	}

	return entity, nil
}

func (m *subscriptionMapperImpl) ToModel(entity *subscription.Subscription) (*models.SubscriptionModel, error) {
	if entity == nil {
		return nil, nil
	}

	return &models.SubscriptionModel{
		ID:               entity.ID(),
		UserID:           entity.UserID(),
		Tier:             entity.Tier().String(),
		Frequency:        entity.Frequency().String(),
		Status:           string(entity.Status()),
		StartDate:        entity.StartDate(),
		ChurnRiskScore:   entity.ChurnRiskScore(),
		AvailableCredits: entity.AvailableCredits(),
		CancelledAt:      entity.CancelledAt(),
		CancelReason:     entity.CancelReason(),
		Version:          entity.Version(),
		CreatedAt:        entity.CreatedAt(),
		UpdatedAt:        entity.UpdatedAt(),
	}, nil
}

func (m *subscriptionMapperImpl) ToEntities(subscriptionModels []*models.SubscriptionModel) ([]*subscription.Subscription, error) {
	entities := make([]*subscription.Subscription, 0, len(subscriptionModels))
	for _, model := range subscriptionModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
