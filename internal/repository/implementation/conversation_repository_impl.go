package implementation

import (
	"context"

	"telemed-be/internal/entity"
	"telemed-be/internal/mapper"
	"telemed-be/internal/model"
	"telemed-be/internal/repository/contract"
	"telemed-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ConversationRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ConversationMapper
}

func NewConversationRepository(db *gorm.DB) contract.ConversationRepository {
	return &ConversationRepositoryImpl{
		db:     db,
		mapper: mapper.NewConversationMapper(),
	}
}

func (r *ConversationRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ConversationRepositoryImpl) Append(ctx context.Context, turn *entity.ConversationTurn) error {
	m := r.mapper.TurnToModel(turn)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*turn = *r.mapper.TurnToEntity(m)
	return nil
}

func (r *ConversationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ConversationTurn, error) {
	var models []model.ConversationLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	entities := make([]*entity.ConversationTurn, len(models))
	for i := range models {
		entities[i] = r.mapper.TurnToEntity(&models[i])
	}
	return entities, nil
}

func (r *ConversationRepositoryImpl) FindLastN(ctx context.Context, sessionId string, n int) ([]*entity.ConversationTurn, error) {
	var models []model.ConversationLog
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionId).
		Order("timestamp DESC").
		Limit(n).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	// Reverse back to chronological order.
	entities := make([]*entity.ConversationTurn, len(models))
	for i := range models {
		entities[len(models)-1-i] = r.mapper.TurnToEntity(&models[i])
	}
	return entities, nil
}

func (r *ConversationRepositoryImpl) AnnotateFeedback(ctx context.Context, turnId uuid.UUID, value int) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.ConversationLog{}).
		Where("id = ?", turnId).
		Update("feedback", value)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *ConversationRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ConversationLog{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
