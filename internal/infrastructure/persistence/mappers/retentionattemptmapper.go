package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"github.com/hearth-labs/hearth/internal/domain/retention"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/models"
)

type RetentionAttemptMapper interface {
	ToEntity(model *models.RetentionAttemptModel) (*retention.Attempt, error)
	ToModel(entity *retention.Attempt) (*models.RetentionAttemptModel, error)
	ToEntities(models []*models.RetentionAttemptModel) ([]*retention.Attempt, error)
}

type retentionAttemptMapperImpl struct{}

func NewRetentionAttemptMapper() RetentionAttemptMapper {
	return &retentionAttemptMapperImpl{}
}

func (m *retentionAttemptMapperImpl) ToEntity(model *models.RetentionAttemptModel) (*retention.Attempt, error) {
	if model == nil {
		return nil, nil
	}

	var metadata map[string]interface{}
	if model.Metadata != nil {
		if err := json.Unmarshal(model.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("failed to unmarshal attempt metadata: %w", err)
		}
	}

	entity, err := retention.ReconstructAttempt(
		model.ID,
		model.UserID,
		retention.Action(model.Action),
		retention.Workflow(model.Workflow),
		retention.AttemptStatus(model.Status),
		model.ErrorMessage,
		metadata,
		model.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct retention attempt: %w", err)
	}
	return entity, nil
}

func (m *retentionAttemptMapperImpl) ToModel(entity *retention.Attempt) (*models.RetentionAttemptModel, error) {
	if entity == nil {
		return nil, nil
	}

	var metadata datatypes.JSON
	if len(entity.Metadata()) > 0 {
		raw, err := json.Marshal(entity.Metadata())
		if err != nil {
			return nil, fmt.Errorf("failed to marshal attempt metadata: %w", err)
		}
		metadata = raw
	}

	return &models.RetentionAttemptModel{
		ID:           entity.ID(),
		UserID:       entity.UserID(),
		Action:       entity.Action().String(),
		Workflow:     string(entity.Workflow()),
		Status:       string(entity.Status()),
		ErrorMessage: entity.ErrorMessage(),
		Metadata:     metadata,
		CreatedAt:    entity.CreatedAt(),
	}, nil
}

func (m *retentionAttemptMapperImpl) ToEntities(attemptModels []*models.RetentionAttemptModel) ([]*retention.Attempt, error) {
	entities := make([]*retention.Attempt, 0, len(attemptModels))
	for _, model := range attemptModels {
		entity, err := m.ToEntity(model)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}
	return entities, nil
}
