package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"trackbase/core/track"
	"trackbase/logger"
	"trackbase/model"
	"trackbase/storage"

	"github.com/gorilla/mux"
)

// CreateTrackRequest is the body for registering a track.
type CreateTrackRequest struct {
	Type          string `json:"type"`
	PublicID      string `json:"publicId,omitempty"`
	SourceTrackID uint64 `json:"sourceTrackId"`
	Kind          string `json:"kind,omitempty"`
	Label         string `json:"label,omitempty"`
	Language      string `json:"language,omitempty"`
}

// CreateTrackHandler registers a new track. The initial language is
// normalized silently; only later language changes report diagnostics.
func (h *APIHandler) CreateTrackHandler(w http.ResponseWriter, r *http.Request) {
	var req CreateTrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	typ, ok := trackTypeFromString(req.Type)
	if !ok {
		writeError(w, http.StatusBadRequest, "type must be audio, video or text")
		return
	}

	opts := track.Options{
		Context:  h.console,
		ID:       req.PublicID,
		TrackID:  req.SourceTrackID,
		Label:    req.Label,
		Language: req.Language,
	}

	var mt *track.MediaTrack
	switch typ {
	case track.TypeAudio:
		mt = &track.NewAudioTrack(opts).MediaTrack
	case track.TypeVideo:
		mt = &track.NewVideoTrack(opts).MediaTrack
	default:
		mt = &track.NewTextTrack(opts).MediaTrack
	}
	mt.SetKind(req.Kind)
	mt.BindLogger(logger.L())

	rec := &model.Track{
		PublicID:      mt.ID(),
		SourceTrackID: mt.TrackID(),
		Type:          mt.Type().String(),
		Kind:          mt.Kind(),
		Label:         mt.Label(),
		Language:      mt.Language(),
		ValidLanguage: mt.ValidBCP47Language(),
	}

	id, err := h.trackRepo.CreateTrack(rec)
	if err != nil {
		logger.Error("Failed to create track", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to create track")
		return
	}
	rec.ID = id

	mt.Logger().Info("track registered")
	writeJSON(w, http.StatusCreated, rec)
}

// loadTrack resolves the {id} route variable to a stored track.
func (h *APIHandler) loadTrack(w http.ResponseWriter, r *http.Request) (*model.Track, bool) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid track id")
		return nil, false
	}

	rec, err := h.trackRepo.GetTrackByID(id)
	if err != nil {
		logger.Error("Failed to load track", logger.Int64("trackID", id), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load track")
		return nil, false
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "track not found")
		return nil, false
	}
	return rec, true
}

// GetTrackHandler returns one track.
func (h *APIHandler) GetTrackHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadTrack(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// ListTracksHandler returns all registered tracks.
func (h *APIHandler) ListTracksHandler(w http.ResponseWriter, r *http.Request) {
	tracks, err := h.trackRepo.GetAllTracks()
	if err != nil {
		logger.Error("Failed to list tracks", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to list tracks")
		return
	}
	writeJSON(w, http.StatusOK, tracks)
}

// UpdateLanguageHandler changes a track's language. The raw value is stored
// regardless; an invalid tag clears the validated language and emits the
// standard diagnostic through the console.
func (h *APIHandler) UpdateLanguageHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadTrack(w, r)
	if !ok {
		return
	}

	var req struct {
		Language string `json:"language"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mt, ok := h.rehydrate(rec)
	if !ok {
		writeError(w, http.StatusInternalServerError, "corrupt track record")
		return
	}

	mt.SetLanguage(req.Language)

	if err := h.trackRepo.UpdateTrackLanguage(rec.ID, mt.Language(), mt.ValidBCP47Language()); err != nil {
		logger.Error("Failed to update track language", logger.Int64("trackID", rec.ID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to update track")
		return
	}

	rec.Language = mt.Language()
	rec.ValidLanguage = mt.ValidBCP47Language()
	writeJSON(w, http.StatusOK, rec)
}

// UpdateKindHandler changes a track's kind. An invalid kind resets it to
// empty without any diagnostic.
func (h *APIHandler) UpdateKindHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadTrack(w, r)
	if !ok {
		return
	}

	var req struct {
		Kind string `json:"kind"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mt, ok := h.rehydrate(rec)
	if !ok {
		writeError(w, http.StatusInternalServerError, "corrupt track record")
		return
	}

	mt.SetKind(req.Kind)

	if err := h.trackRepo.UpdateTrackKind(rec.ID, mt.Kind()); err != nil {
		logger.Error("Failed to update track kind", logger.Int64("trackID", rec.ID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to update track")
		return
	}

	rec.Kind = mt.Kind()
	writeJSON(w, http.StatusOK, rec)
}

// UpdateLabelHandler changes a track's label.
func (h *APIHandler) UpdateLabelHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadTrack(w, r)
	if !ok {
		return
	}

	var req struct {
		Label string `json:"label"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.trackRepo.UpdateTrackLabel(rec.ID, req.Label); err != nil {
		logger.Error("Failed to update track label", logger.Int64("trackID", rec.ID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to update track")
		return
	}

	rec.Label = req.Label
	writeJSON(w, http.StatusOK, rec)
}

// DeleteTrackHandler removes a track and its stored sidecar, if any.
func (h *APIHandler) DeleteTrackHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadTrack(w, r)
	if !ok {
		return
	}

	if rec.SidecarKey != "" {
		if err := storage.DeleteSidecar(r.Context(), rec.SidecarKey); err != nil {
			logger.Warn("Failed to delete sidecar object", logger.String("key", rec.SidecarKey), logger.ErrorField(err))
		}
	}

	if err := h.trackRepo.DeleteTrack(rec.ID); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to delete track")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UploadSidecarHandler stores a subtitle/caption file for a track.
func (h *APIHandler) UploadSidecarHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadTrack(w, r)
	if !ok {
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file field")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key, err := storage.UploadSidecar(r.Context(), rec.ID, header.Filename, file, header.Size, contentType)
	if err != nil {
		logger.Error("Failed to upload sidecar", logger.Int64("trackID", rec.ID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to store sidecar")
		return
	}

	if err := h.trackRepo.UpdateTrackSidecarKey(rec.ID, key); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to record sidecar")
		return
	}

	rec.SidecarKey = key
	writeJSON(w, http.StatusOK, rec)
}

// DownloadSidecarHandler streams a stored sidecar file.
func (h *APIHandler) DownloadSidecarHandler(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.loadTrack(w, r)
	if !ok {
		return
	}
	if rec.SidecarKey == "" {
		writeError(w, http.StatusNotFound, "track has no sidecar")
		return
	}

	obj, err := storage.GetSidecar(r.Context(), rec.SidecarKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to open sidecar")
		return
	}
	defer obj.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	if _, err := io.Copy(w, obj); err != nil {
		logger.Warn("Sidecar download interrupted", logger.Int64("trackID", rec.ID), logger.ErrorField(err))
	}
}

// RegisterTrack implements ingest.Registrar so the watcher can persist
// discovered tracks through the same repository as the API.
func (h *APIHandler) RegisterTrack(_ context.Context, rec *model.Track) (int64, error) {
	return h.trackRepo.CreateTrack(rec)
}
