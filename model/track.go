package model

import "time"

// Track is the persisted representation of a registered media track.
type Track struct {
	ID            int64     `json:"id"`
	PublicID      string    `json:"publicId"`      // Stable external id, derived from SourceTrackID when not given
	SourceTrackID uint64    `json:"sourceTrackId"` // Numeric identifier assigned by the media source
	Type          string    `json:"type"`          // audio, video or text
	Kind          string    `json:"kind"`
	Label         string    `json:"label"`
	Language      string    `json:"language"`      // Raw language tag as set by the caller
	ValidLanguage string    `json:"validLanguage"` // Empty or a syntactically valid BCP 47 tag
	SidecarKey    string    `json:"sidecarKey,omitempty"` // Object key of the uploaded sidecar file, if any
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
