package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/vikram110703/booking-airbnb-backend/internal/model"
)

// PlaceRepository defines listing persistence operations.
type PlaceRepository interface {
	Create(ctx context.Context, place *model.Place) error
	Update(ctx context.Context, place *model.Place) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Place, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Place, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Place, error)
	List(ctx context.Context) ([]model.Place, error)
}

type placeRepository struct {
	db *gorm.DB
}

// NewPlaceRepository creates a new place repository.
func NewPlaceRepository(db *gorm.DB) PlaceRepository {
	return &placeRepository{db: db}
}

// Create creates a new place.
func (r *placeRepository) Create(ctx context.Context, place *model.Place) error {
	return r.db.WithContext(ctx).Create(place).Error
}

// Update overwrites the editable columns of an existing place.
// owner_id is never written after creation.
func (r *placeRepository) Update(ctx context.Context, place *model.Place) error {
	return r.db.WithContext(ctx).Model(place).
		Select("title", "address", "photos", "description", "perks", "extra_info",
			"check_in", "check_out", "max_guests", "price", "updated_at").
		Updates(place).Error
}

// FindByID finds a place by ID.
func (r *placeRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Place, error) {
	var place model.Place
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&place).Error; err != nil {
		return nil, err
	}
	return &place, nil
}

// FindByIDs loads every place whose ID is in ids. Missing IDs are skipped.
func (r *placeRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]model.Place, error) {
	var places []model.Place
	if len(ids) == 0 {
		return places, nil
	}
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// ListByOwner lists the places of one owner in creation order.
func (r *placeRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Place, error) {
	var places []model.Place
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).
		Order("created_at ASC").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}

// List lists all places in creation order.
func (r *placeRepository) List(ctx context.Context) ([]model.Place, error) {
	var places []model.Place
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&places).Error; err != nil {
		return nil, err
	}
	return places, nil
}
