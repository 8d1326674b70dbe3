package offerletter

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	Create(ctx context.Context, o *OfferLetter) error
	FindAll(ctx context.Context) ([]OfferLetter, error)
	FindByID(ctx context.Context, id string) (*OfferLetter, error)
	UpdatePDFURL(ctx context.Context, id, url string) error
	UpdateStatus(ctx context.Context, id, status string) error
	Delete(ctx context.Context, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, o *OfferLetter) error {
	return r.db.WithContext(ctx).Create(o).Error
}

func (r *repository) FindAll(ctx context.Context) ([]OfferLetter, error) {
	var offers []OfferLetter
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&offers).Error
	return offers, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*OfferLetter, error) {
	var o OfferLetter
	err := r.db.WithContext(ctx).First(&o, "id = ?", id).Error
	return &o, err
}

func (r *repository) UpdatePDFURL(ctx context.Context, id, url string) error {
	res := r.db.WithContext(ctx).
		Model(&OfferLetter{}).
		Where("id = ?", id).
		UpdateColumn("pdf_url", url)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) UpdateStatus(ctx context.Context, id, status string) error {
	res := r.db.WithContext(ctx).
		Model(&OfferLetter{}).
		Where("id = ?", id).
		UpdateColumn("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&OfferLetter{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
