package eventrepo

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderEventRepository implements OrderEventRepository using GORM.
type GormOrderEventRepository struct {
	db *gorm.DB
}

// NewGormOrderEventRepository creates a new GORM outbox repository.
func NewGormOrderEventRepository(db *gorm.DB) *GormOrderEventRepository {
	return &GormOrderEventRepository{db: db}
}

// Add saves a new unpublished event and assigns the database-generated id
// back onto the entity.
func (r *GormOrderEventRepository) Add(ctx context.Context, event *order.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	dto := fromDomain(event)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	return event.AssignID(dto.ID)
}

// Update persists the published flag of an existing event. The guard on the
// stored flag makes the flip first-writer-wins: if another transaction
// already published this event, zero rows match and the call fails instead
// of silently double-flipping.
func (r *GormOrderEventRepository) Update(ctx context.Context, event *order.Event) error {
	if err := event.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id = ? AND published = ?", event.ID(), false).
		Update("published", event.Published())
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewStateConflictError("markEventPublished", "unpublished", "published or missing")
	}

	return nil
}

// FindUnpublished returns all unpublished events ordered by insertion id,
// locked FOR UPDATE in the caller's transaction. A concurrent publish cycle
// blocks here until the claiming transaction finishes.
func (r *GormOrderEventRepository) FindUnpublished(ctx context.Context) ([]*order.Event, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("published = ?", false).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

// FindByOrderID returns the event history of one order, ordered by insertion
// id. Read-only; takes no lock.
func (r *GormOrderEventRepository) FindByOrderID(ctx context.Context, orderID int64) ([]*order.Event, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	return toDomainSlice(dtos)
}

func toDomainSlice(dtos []EventDTO) ([]*order.Event, error) {
	events := make([]*order.Event, 0, len(dtos))
	for _, dto := range dtos {
		event, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	return events, nil
}
