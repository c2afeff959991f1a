package repository

import (
	"errors"
	"fmt"
	"time"

	"trackbase/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TrackListRepository defines the interface for track list persistence.
type TrackListRepository interface {
	CreateList(ownerID int64, name string) (*model.TrackList, error)
	GetList(listID string) (*model.TrackList, error)
	GetListsByOwner(ownerID int64) ([]*model.TrackList, error)
	DeleteList(listID string) error
	AddEntry(listID string, trackID int64) (*model.TrackListEntry, error)
	RemoveEntry(listID string, trackID int64) error
}

// gormTrackListRepository implements TrackListRepository on GORM.
type gormTrackListRepository struct {
	db *gorm.DB
}

// NewGormTrackListRepository creates a new track list repository.
func NewGormTrackListRepository(db *gorm.DB) TrackListRepository {
	return &gormTrackListRepository{db: db}
}

// CreateList inserts a new empty list with a fresh UUID.
func (r *gormTrackListRepository) CreateList(ownerID int64, name string) (*model.TrackList, error) {
	list := &model.TrackList{
		ID:        uuid.NewString(),
		OwnerID:   ownerID,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := r.db.Create(list).Error; err != nil {
		return nil, fmt.Errorf("failed to create track list: %w", err)
	}
	return list, nil
}

// GetList loads a list with its entries ordered by position.
func (r *gormTrackListRepository) GetList(listID string) (*model.TrackList, error) {
	var list model.TrackList
	err := r.db.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&list, "id = ?", listID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load track list %s: %w", listID, err)
	}
	return &list, nil
}

// GetListsByOwner returns all lists belonging to ownerID.
func (r *gormTrackListRepository) GetListsByOwner(ownerID int64) ([]*model.TrackList, error) {
	var lists []*model.TrackList
	if err := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC").Find(&lists).Error; err != nil {
		return nil, fmt.Errorf("failed to load track lists for owner %d: %w", ownerID, err)
	}
	return lists, nil
}

// DeleteList removes a list and its entries. The entries go first so no
// membership row outlives its list.
func (r *gormTrackListRepository) DeleteList(listID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", listID).Delete(&model.TrackListEntry{}).Error; err != nil {
			return fmt.Errorf("failed to delete entries of list %s: %w", listID, err)
		}
		if err := tx.Delete(&model.TrackList{}, "id = ?", listID).Error; err != nil {
			return fmt.Errorf("failed to delete track list %s: %w", listID, err)
		}
		return nil
	})
}

// AddEntry appends a track at the end of the list.
func (r *gormTrackListRepository) AddEntry(listID string, trackID int64) (*model.TrackListEntry, error) {
	var entry *model.TrackListEntry
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var maxPos int
		row := tx.Model(&model.TrackListEntry{}).
			Where("list_id = ?", listID).
			Select("COALESCE(MAX(position), -1)").
			Row()
		if err := row.Scan(&maxPos); err != nil {
			return fmt.Errorf("failed to compute list position: %w", err)
		}

		entry = &model.TrackListEntry{
			ListID:   listID,
			TrackID:  trackID,
			Position: maxPos + 1,
		}
		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to add track %d to list %s: %w", trackID, listID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// RemoveEntry deletes a track from the list and compacts positions.
func (r *gormTrackListRepository) RemoveEntry(listID string, trackID int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ? AND track_id = ?", listID, trackID).
			Delete(&model.TrackListEntry{}).Error; err != nil {
			return fmt.Errorf("failed to remove track %d from list %s: %w", trackID, listID, err)
		}

		var entries []model.TrackListEntry
		if err := tx.Where("list_id = ?", listID).Order("position ASC").Find(&entries).Error; err != nil {
			return fmt.Errorf("failed to reload entries of list %s: %w", listID, err)
		}
		for i := range entries {
			if entries[i].Position != i {
				if err := tx.Model(&entries[i]).Update("position", i).Error; err != nil {
					return fmt.Errorf("failed to compact positions in list %s: %w", listID, err)
				}
			}
		}
		return nil
	})
}
