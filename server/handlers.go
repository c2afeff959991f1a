package server

import (
	"encoding/json"
	"net/http"

	"trackbase/config"
	"trackbase/core/track"
	"trackbase/logger"
	"trackbase/model"
	"trackbase/repository"
)

// APIHandler carries the dependencies of all HTTP handlers.
type APIHandler struct {
	trackRepo repository.TrackRepository
	listRepo  repository.TrackListRepository
	userRepo  repository.UserRepository
	console   *Console
	cfg       *config.Config
}

// NewAPIHandler creates the handler set.
func NewAPIHandler(
	trackRepo repository.TrackRepository,
	listRepo repository.TrackListRepository,
	userRepo repository.UserRepository,
	cons *Console,
	cfg *config.Config,
) *APIHandler {
	return &APIHandler{
		trackRepo: trackRepo,
		listRepo:  listRepo,
		userRepo:  userRepo,
		console:   cons,
		cfg:       cfg,
	}
}

// writeJSON writes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", logger.ErrorField(err))
	}
}

// writeError writes a JSON error body.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// trackTypeFromString maps the API type string to the core discriminant.
func trackTypeFromString(s string) (track.Type, bool) {
	switch s {
	case "audio":
		return track.TypeAudio, true
	case "video":
		return track.TypeVideo, true
	case "text":
		return track.TypeText, true
	default:
		return 0, false
	}
}

// rehydrate rebuilds the core track object for a stored record, attaching the
// server console as its owning context so mutations report diagnostics. The
// unique id is per-process and not persisted.
func (h *APIHandler) rehydrate(rec *model.Track) (*track.MediaTrack, bool) {
	typ, ok := trackTypeFromString(rec.Type)
	if !ok {
		return nil, false
	}

	opts := track.Options{
		Context:  h.console,
		ID:       rec.PublicID,
		TrackID:  rec.SourceTrackID,
		Label:    rec.Label,
		Language: rec.Language,
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
	mt.SetKind(rec.Kind)
	mt.BindLogger(logger.L())
	return mt, true
}
