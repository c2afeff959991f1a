// Package track implements the base representation for media tracks: identity,
// label, BCP 47 language handling and the non-owning back-reference to the
// enclosing track list.
package track

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Type discriminates the track variant. It is fixed at construction.
type Type int

const (
	TypeAudio Type = iota + 1
	TypeVideo
	TypeText
)

// String returns the lowercase name of the type.
func (t Type) String() string {
	switch t {
	case TypeAudio:
		return "audio"
	case TypeVideo:
		return "video"
	case TypeText:
		return "text"
	default:
		return "unknown"
	}
}

// Options configures a new track.
type Options struct {
	// Context receives diagnostics. May be nil.
	Context DiagnosticPoster
	// Type of the track. Required.
	Type Type
	// ID is the stable external id. When empty it is derived from TrackID.
	ID string
	// TrackID is the numeric identifier assigned by the media source.
	TrackID uint64
	// Label is the human-readable label.
	Label string
	// Language is the initial language tag.
	Language string
	// IDs allocates the unique id. Defaults to the shared process allocator.
	IDs *IDAllocator
}

// Track is the base state shared by all track variants. It is not safe for
// concurrent use; like the rest of the media object graph it has single-owner
// affinity.
type Track struct {
	uniqueID int64
	id       string
	trackID  uint64
	typ      Type

	label              string
	language           string
	validBCP47Language string

	// Non-owning. Mutated only by the list itself when the track is added to
	// or removed from it; the list clears it before its own teardown.
	list *List

	ctx    DiagnosticPoster
	logger *zap.Logger
}

// New constructs a track. The unique id is drawn from opts.IDs, or from the
// shared process-wide allocator when opts.IDs is nil. An invalid initial
// language leaves the validated language empty without posting a diagnostic;
// only SetLanguage reports.
func New(opts Options) *Track {
	ids := opts.IDs
	if ids == nil {
		ids = &defaultIDs
	}

	id := opts.ID
	if id == "" {
		id = strconv.FormatUint(opts.TrackID, 10)
	}

	t := &Track{
		uniqueID: ids.Next(),
		id:       id,
		trackID:  opts.TrackID,
		typ:      opts.Type,
		label:    opts.Label,
		language: opts.Language,
		ctx:      opts.Context,
		logger:   zap.NewNop(),
	}
	if IsValidBCP47LanguageTag(opts.Language) {
		t.validBCP47Language = opts.Language
	}
	return t
}

// UniqueID returns the process-unique id assigned at construction.
func (t *Track) UniqueID() int64 { return t.uniqueID }

// ID returns the stable external id.
func (t *Track) ID() string { return t.id }

// TrackID returns the numeric identifier from the media source.
func (t *Track) TrackID() uint64 { return t.trackID }

// Type returns the variant discriminant.
func (t *Track) Type() Type { return t.typ }

// Label returns the human-readable label.
func (t *Track) Label() string { return t.label }

// SetLabel replaces the label.
func (t *Track) SetLabel(label string) { t.label = label }

// Language returns the raw language tag as last set.
func (t *Track) Language() string { return t.language }

// ValidBCP47Language returns the validated language: the raw tag when it is
// empty or syntactically valid BCP 47, otherwise empty.
func (t *Track) ValidBCP47Language() string { return t.validBCP47Language }

// SetLanguage stores language unconditionally and recomputes the validated
// language. An invalid non-empty tag clears the validated language and posts
// a warning through the attached context, if any.
func (t *Track) SetLanguage(language string) {
	t.language = language
	if language == "" || IsValidBCP47LanguageTag(language) {
		t.validBCP47Language = language
		return
	}

	t.validBCP47Language = ""

	if t.ctx == nil {
		return
	}

	var message string
	if strings.ContainsRune(language, 0) {
		message = "The language contains a null character and is not a valid BCP 47 language tag."
	} else {
		message = fmt.Sprintf("The language '%s' is not a valid BCP 47 language tag.", language)
	}
	t.ctx.PostDiagnostic(CategoryRendering, LevelWarning, message)
}

// SetTrackList points the back-reference at list, replacing any previous one.
// Called by the list when it adds the track.
func (t *Track) SetTrackList(list *List) { t.list = list }

// ClearTrackList nulls the back-reference. Called by the list when it removes
// the track or tears down.
func (t *Track) ClearTrackList() { t.list = nil }

// TrackList returns the enclosing list, or nil.
func (t *Track) TrackList() *List { return t.list }

// OwnershipRoot returns the object through which this track is kept
// reachable: the root of its list when it belongs to one, else the track
// itself.
func (t *Track) OwnershipRoot() any {
	if list := t.list; list != nil {
		return list.OwnershipRoot()
	}
	return t
}

// ObserveContext rebinds the owning context, e.g. when the track moves to a
// new document. A nil context detaches it and suppresses diagnostics.
func (t *Track) ObserveContext(ctx DiagnosticPoster) { t.ctx = ctx }

// Context returns the attached context, or nil.
func (t *Track) Context() DiagnosticPoster { return t.ctx }

// BindLogger derives this track's logger from parent, tagged with the unique
// id so log lines are attributable to one track.
func (t *Track) BindLogger(parent *zap.Logger) {
	if parent == nil {
		t.logger = zap.NewNop()
		return
	}
	t.logger = parent.With(zap.Int64("trackUID", t.uniqueID))
}

// Logger returns the bound logger. Never nil; defaults to a no-op logger.
func (t *Track) Logger() *zap.Logger { return t.logger }
