package mappers

import (
	"fmt"

	"github.com/hearth-labs/hearth/internal/domain/user"
	"github.com/hearth-labs/hearth/internal/infrastructure/persistence/models"
)

type UserMapper interface {
	ToEntity(model *models.UserModel) (*user.User, error)
}

type userMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &userMapperImpl{}
}

func (m *userMapperImpl) ToEntity(model *models.UserModel) (*user.User, error) {
	if model == nil {
		return nil, nil
	}

	entity, err := user.Reconstruct(model.ID, model.Email, model.Name, model.Phone, model.LifetimeValue, model.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to reconstruct user: %w", err)
	}
	return entity, nil
}
