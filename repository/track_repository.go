package repository

import (
	"database/sql"
	"fmt"
	"time"

	"trackbase/db"
	"trackbase/logger"
	"trackbase/model"
)

// TrackRepository defines the interface for track data operations.
type TrackRepository interface {
	CreateTrack(track *model.Track) (int64, error)
	GetTrackByID(id int64) (*model.Track, error)
	GetTrackByPublicID(publicID string) (*model.Track, error)
	GetAllTracks() ([]*model.Track, error)
	UpdateTrackLabel(trackID int64, label string) error
	UpdateTrackLanguage(trackID int64, language, validLanguage string) error
	UpdateTrackKind(trackID int64, kind string) error
	UpdateTrackSidecarKey(trackID int64, sidecarKey string) error
	DeleteTrack(trackID int64) error
}

// mysqlTrackRepository implements TrackRepository for MySQL.
type mysqlTrackRepository struct {
	DB *sql.DB
}

// NewMySQLTrackRepository creates a new instance of mysqlTrackRepository.
func NewMySQLTrackRepository() TrackRepository {
	return &mysqlTrackRepository{DB: db.DB}
}

const trackColumns = `id, public_id, source_track_id, type, kind, label, language, valid_language, sidecar_key, created_at, updated_at`

func scanTrack(row interface{ Scan(...any) error }) (*model.Track, error) {
	track := &model.Track{}
	err := row.Scan(&track.ID, &track.PublicID, &track.SourceTrackID, &track.Type, &track.Kind,
		&track.Label, &track.Language, &track.ValidLanguage, &track.SidecarKey,
		&track.CreatedAt, &track.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return track, nil
}

// CreateTrack adds a new track to the database.
func (r *mysqlTrackRepository) CreateTrack(track *model.Track) (int64, error) {
	query := `INSERT INTO tracks (public_id, source_track_id, type, kind, label, language, valid_language, sidecar_key, created_at, updated_at)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement for CreateTrack: %w", err)
	}
	defer stmt.Close()

	now := time.Now()
	res, err := stmt.Exec(track.PublicID, track.SourceTrackID, track.Type, track.Kind,
		track.Label, track.Language, track.ValidLanguage, track.SidecarKey, now, now)
	if err != nil {
		return 0, fmt.Errorf("failed to execute CreateTrack: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID for CreateTrack: %w", err)
	}
	logger.Info("Track created", logger.Int64("trackID", id), logger.String("publicID", track.PublicID))
	return id, nil
}

// GetTrackByID retrieves a track by its ID.
func (r *mysqlTrackRepository) GetTrackByID(id int64) (*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE id = ?`
	track, err := scanTrack(r.DB.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil // Track not found
		}
		return nil, fmt.Errorf("failed to scan track by ID %d: %w", id, err)
	}
	return track, nil
}

// GetTrackByPublicID retrieves a track by its stable external id.
func (r *mysqlTrackRepository) GetTrackByPublicID(publicID string) (*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks WHERE public_id = ?`
	track, err := scanTrack(r.DB.QueryRow(query, publicID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan track by public ID %s: %w", publicID, err)
	}
	return track, nil
}

// GetAllTracks retrieves all tracks ordered by creation time.
func (r *mysqlTrackRepository) GetAllTracks() ([]*model.Track, error) {
	query := `SELECT ` + trackColumns + ` FROM tracks ORDER BY created_at DESC`
	rows, err := r.DB.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer rows.Close()

	tracks := make([]*model.Track, 0)
	for rows.Next() {
		track, err := scanTrack(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan track in GetAllTracks: %w", err)
		}
		tracks = append(tracks, track)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during rows iteration in GetAllTracks: %w", err)
	}
	return tracks, nil
}

// UpdateTrackLabel updates the label for a given track ID.
func (r *mysqlTrackRepository) UpdateTrackLabel(trackID int64, label string) error {
	return r.update(trackID, `UPDATE tracks SET label = ?, updated_at = ? WHERE id = ?`, label)
}

// UpdateTrackLanguage stores both the raw and the validated language.
func (r *mysqlTrackRepository) UpdateTrackLanguage(trackID int64, language, validLanguage string) error {
	query := `UPDATE tracks SET language = ?, valid_language = ?, updated_at = ? WHERE id = ?`
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for UpdateTrackLanguage: %w", err)
	}
	defer stmt.Close()

	if _, err = stmt.Exec(language, validLanguage, time.Now(), trackID); err != nil {
		return fmt.Errorf("failed to execute UpdateTrackLanguage for track ID %d: %w", trackID, err)
	}
	return nil
}

// UpdateTrackKind updates the kind for a given track ID.
func (r *mysqlTrackRepository) UpdateTrackKind(trackID int64, kind string) error {
	return r.update(trackID, `UPDATE tracks SET kind = ?, updated_at = ? WHERE id = ?`, kind)
}

// UpdateTrackSidecarKey records the object key of an uploaded sidecar file.
func (r *mysqlTrackRepository) UpdateTrackSidecarKey(trackID int64, sidecarKey string) error {
	return r.update(trackID, `UPDATE tracks SET sidecar_key = ?, updated_at = ? WHERE id = ?`, sidecarKey)
}

func (r *mysqlTrackRepository) update(trackID int64, query string, value string) error {
	stmt, err := r.DB.Prepare(query)
	if err != nil {
		return fmt.Errorf("failed to prepare track update: %w", err)
	}
	defer stmt.Close()

	if _, err = stmt.Exec(value, time.Now(), trackID); err != nil {
		return fmt.Errorf("failed to update track ID %d: %w", trackID, err)
	}
	return nil
}

// DeleteTrack removes a track row.
func (r *mysqlTrackRepository) DeleteTrack(trackID int64) error {
	if _, err := r.DB.Exec(`DELETE FROM tracks WHERE id = ?`, trackID); err != nil {
		return fmt.Errorf("failed to delete track ID %d: %w", trackID, err)
	}
	logger.Info("Track deleted", logger.Int64("trackID", trackID))
	return nil
}
