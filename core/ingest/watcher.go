// Package ingest watches a drop directory and registers sidecar files
// (subtitles, captions) as text tracks.
package ingest

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"trackbase/core/track"
	"trackbase/logger"
	"trackbase/model"

	"github.com/fsnotify/fsnotify"
)

// sidecarExts lists the file extensions treated as text track sidecars.
var sidecarExts = map[string]string{
	".vtt": "text/vtt",
	".srt": "application/x-subrip",
	".ass": "text/x-ssa",
}

// ParseSidecarName splits a sidecar filename of the form <base>.<lang>.<ext>
// into its parts. The language segment is optional: "movie.vtt" yields an
// empty language. The extension is returned without the leading dot. ok is
// false when the extension is not a known sidecar type.
func ParseSidecarName(filename string) (base, lang, ext string, ok bool) {
	dotExt := strings.ToLower(filepath.Ext(filename))
	if _, known := sidecarExts[dotExt]; !known {
		return "", "", "", false
	}
	ext = strings.TrimPrefix(dotExt, ".")

	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	if i := strings.LastIndex(stem, "."); i >= 0 {
		base = stem[:i]
		lang = stem[i+1:]
	} else {
		base = stem
	}
	return base, lang, ext, true
}

// ContentType returns the MIME type for a sidecar extension (without dot).
func ContentType(ext string) string {
	if ct, ok := sidecarExts["."+ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Registrar persists tracks discovered by the watcher.
type Registrar interface {
	RegisterTrack(ctx context.Context, rec *model.Track) (int64, error)
}

// Watcher turns files dropped into a directory into registered text tracks.
// Discovered tracks are also kept in a live track list so their language
// handling runs through the standard track machinery.
type Watcher struct {
	dir       string
	registrar Registrar
	diag      track.DiagnosticPoster
	ids       *track.IDAllocator

	live *track.List
}

// NewWatcher creates a watcher for dir. diag receives language diagnostics
// for discovered files and may be nil. ids may be nil to use the shared
// allocator.
func NewWatcher(dir string, registrar Registrar, diag track.DiagnosticPoster, ids *track.IDAllocator) *Watcher {
	w := &Watcher{
		dir:       dir,
		registrar: registrar,
		diag:      diag,
		ids:       ids,
	}
	w.live = track.NewList(w)
	return w
}

// Live returns the list of tracks discovered during this run.
func (w *Watcher) Live() *track.List { return w.live }

// Run watches the directory until ctx is done. It returns the context error
// on cancellation or the watcher error otherwise.
func (w *Watcher) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(w.dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.dir, err)
	}
	logger.Info("Watching ingest directory", logger.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			w.live.Close()
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create == 0 {
				continue
			}
			w.handleFile(ctx, event.Name)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Ingest watcher error", logger.ErrorField(err))
		}
	}
}

// handleFile registers a single discovered sidecar file. Errors are logged,
// not fatal; the watcher keeps running.
func (w *Watcher) handleFile(ctx context.Context, path string) {
	filename := filepath.Base(path)
	base, lang, ext, ok := ParseSidecarName(filename)
	if !ok {
		logger.Debug("Ignoring non-sidecar file", logger.String("file", filename))
		return
	}

	// Build the live track first so the language goes through SetLanguage and
	// its diagnostics before anything is persisted.
	tt := track.NewTextTrack(track.Options{
		Context: w.diag,
		ID:      filename,
		Label:   base,
		IDs:     w.ids,
	})
	tt.SetKind("subtitles")
	tt.SetLanguage(lang)
	w.live.Add(&tt.Track)

	rec := &model.Track{
		PublicID:      tt.ID(),
		Type:          tt.Type().String(),
		Kind:          tt.Kind(),
		Label:         tt.Label(),
		Language:      tt.Language(),
		ValidLanguage: tt.ValidBCP47Language(),
	}

	id, err := w.registrar.RegisterTrack(ctx, rec)
	if err != nil {
		logger.Error("Failed to register discovered track",
			logger.String("file", filename), logger.ErrorField(err))
		w.live.Remove(&tt.Track)
		return
	}

	logger.Info("Registered discovered track",
		logger.Int64("trackID", id),
		logger.String("file", filename),
		logger.String("language", tt.ValidBCP47Language()),
		logger.String("ext", ext))
}
