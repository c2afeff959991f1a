package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"trackbase/cache"
	"trackbase/logger"
	"trackbase/model"

	"github.com/gorilla/mux"
)

// CreateListHandler creates an empty track list owned by the caller.
func (h *APIHandler) CreateListHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}

	list, err := h.listRepo.CreateList(claims.UserID, req.Name)
	if err != nil {
		logger.Error("Failed to create track list", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to create list")
		return
	}
	writeJSON(w, http.StatusCreated, list)
}

// GetListsHandler returns the caller's track lists.
func (h *APIHandler) GetListsHandler(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	lists, err := h.listRepo.GetListsByOwner(claims.UserID)
	if err != nil {
		logger.Error("Failed to list track lists", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to list track lists")
		return
	}
	writeJSON(w, http.StatusOK, lists)
}

// ListContentsResponse is the cached view of one list.
type ListContentsResponse struct {
	ID    string           `json:"id"`
	Name  string           `json:"name"`
	Items []cache.ListItem `json:"items"`
}

// GetListHandler returns a list's ordered contents, from cache when warm.
func (h *APIHandler) GetListHandler(w http.ResponseWriter, r *http.Request) {
	listID := mux.Vars(r)["id"]

	list, err := h.listRepo.GetList(listID)
	if err != nil {
		logger.Error("Failed to load track list", logger.String("listID", listID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to load list")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	items, found, err := cache.GetList(r.Context(), listID)
	if err != nil {
		logger.Warn("Track list cache read failed", logger.String("listID", listID), logger.ErrorField(err))
		found = false
	}

	if !found {
		items, err = h.buildListItems(list)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to load list contents")
			return
		}
		if err := cache.PutList(r.Context(), listID, items); err != nil {
			logger.Warn("Track list cache write failed", logger.String("listID", listID), logger.ErrorField(err))
		}
	}

	writeJSON(w, http.StatusOK, ListContentsResponse{ID: list.ID, Name: list.Name, Items: items})
}

// buildListItems resolves list entries against the track table.
func (h *APIHandler) buildListItems(list *model.TrackList) ([]cache.ListItem, error) {
	items := make([]cache.ListItem, 0, len(list.Entries))
	for _, entry := range list.Entries {
		rec, err := h.trackRepo.GetTrackByID(entry.TrackID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			// Track deleted after being listed; skip the dangling entry.
			continue
		}
		items = append(items, cache.ListItem{
			TrackID:       rec.ID,
			PublicID:      rec.PublicID,
			Type:          rec.Type,
			Kind:          rec.Kind,
			Label:         rec.Label,
			ValidLanguage: rec.ValidLanguage,
			Position:      entry.Position,
		})
	}
	return items, nil
}

// DeleteListHandler removes a list and drops its cache.
func (h *APIHandler) DeleteListHandler(w http.ResponseWriter, r *http.Request) {
	listID := mux.Vars(r)["id"]

	if err := h.listRepo.DeleteList(listID); err != nil {
		logger.Error("Failed to delete track list", logger.String("listID", listID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to delete list")
		return
	}
	if err := cache.InvalidateList(r.Context(), listID); err != nil {
		logger.Warn("Track list cache invalidation failed", logger.String("listID", listID), logger.ErrorField(err))
	}
	w.WriteHeader(http.StatusNoContent)
}

// AddTrackToListHandler appends a track to a list.
func (h *APIHandler) AddTrackToListHandler(w http.ResponseWriter, r *http.Request) {
	listID := mux.Vars(r)["id"]

	var req struct {
		TrackID int64 `json:"trackId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	list, err := h.listRepo.GetList(listID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load list")
		return
	}
	if list == nil {
		writeError(w, http.StatusNotFound, "list not found")
		return
	}

	rec, err := h.trackRepo.GetTrackByID(req.TrackID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load track")
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, "track not found")
		return
	}

	entry, err := h.listRepo.AddEntry(listID, req.TrackID)
	if err != nil {
		logger.Error("Failed to add track to list",
			logger.String("listID", listID), logger.Int64("trackID", req.TrackID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to add track to list")
		return
	}

	if err := cache.InvalidateList(r.Context(), listID); err != nil {
		logger.Warn("Track list cache invalidation failed", logger.String("listID", listID), logger.ErrorField(err))
	}
	writeJSON(w, http.StatusCreated, entry)
}

// RemoveTrackFromListHandler removes a track from a list.
func (h *APIHandler) RemoveTrackFromListHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	listID := vars["id"]
	trackID, err := strconv.ParseInt(vars["trackId"], 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid track id")
		return
	}

	if err := h.listRepo.RemoveEntry(listID, trackID); err != nil {
		logger.Error("Failed to remove track from list",
			logger.String("listID", listID), logger.Int64("trackID", trackID), logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "failed to remove track from list")
		return
	}

	if err := cache.InvalidateList(r.Context(), listID); err != nil {
		logger.Warn("Track list cache invalidation failed", logger.String("listID", listID), logger.ErrorField(err))
	}
	w.WriteHeader(http.StatusNoContent)
}
