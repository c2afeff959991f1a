package model

import "time"

// TrackList is a named, ordered collection of tracks. Stored via GORM.
type TrackList struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	OwnerID   int64     `gorm:"index" json:"ownerId"`
	Name      string    `gorm:"size:255" json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Entries []TrackListEntry `gorm:"foreignKey:ListID" json:"entries,omitempty"`
}

// TableName maps TrackList to the track_lists table.
func (TrackList) TableName() string { return "track_lists" }

// TrackListEntry is one position in a track list.
type TrackListEntry struct {
	ID       int64     `gorm:"primaryKey;autoIncrement" json:"-"`
	ListID   string    `gorm:"index;size:36" json:"listId"`
	TrackID  int64     `gorm:"index" json:"trackId"`
	Position int       `json:"position"`
	AddedAt  time.Time `gorm:"autoCreateTime" json:"addedAt"`
}

// TableName maps TrackListEntry to the track_list_entries table.
func (TrackListEntry) TableName() string { return "track_list_entries" }
