package track

// KindPredicate reports whether a kind value is valid for a concrete track
// variant.
type KindPredicate func(kind string) bool

// MediaTrack extends the base track with a kind, constrained by the variant's
// kind predicate.
type MediaTrack struct {
	Track

	kind      string
	validKind KindPredicate
}

// NewMediaTrack constructs a kind-bearing track. isValid decides which kind
// values the variant accepts; a nil predicate rejects everything.
func NewMediaTrack(opts Options, isValid KindPredicate) *MediaTrack {
	if isValid == nil {
		isValid = func(string) bool { return false }
	}
	return &MediaTrack{
		Track:     *New(opts),
		validKind: isValid,
	}
}

// Kind returns the current kind, possibly empty.
func (t *MediaTrack) Kind() string { return t.kind }

// SetKind sets the kind if the variant's predicate accepts it, otherwise
// resets it to empty. Unlike SetLanguage this never posts a diagnostic.
func (t *MediaTrack) SetKind(kind string) {
	if t.validKind(kind) {
		t.kind = kind
	} else {
		t.kind = ""
	}
}

// KindIn builds a predicate accepting exactly the given values.
func KindIn(kinds ...string) KindPredicate {
	set := make(map[string]struct{}, len(kinds))
	for _, k := range kinds {
		set[k] = struct{}{}
	}
	return func(kind string) bool {
		_, ok := set[kind]
		return ok
	}
}

// Kind vocabularies of the HTML media track variants.
var (
	audioKinds = KindIn("alternative", "description", "main", "main-desc", "translation", "commentary", "")
	videoKinds = KindIn("alternative", "captions", "main", "sign", "subtitles", "commentary", "")
	textKinds  = KindIn("subtitles", "captions", "descriptions", "chapters", "metadata", "forced", "")
)

// AudioTrack is an audio rendition descriptor.
type AudioTrack struct {
	MediaTrack
}

// NewAudioTrack constructs an audio track. opts.Type is forced to TypeAudio.
func NewAudioTrack(opts Options) *AudioTrack {
	opts.Type = TypeAudio
	return &AudioTrack{MediaTrack: *NewMediaTrack(opts, audioKinds)}
}

// VideoTrack is a video rendition descriptor.
type VideoTrack struct {
	MediaTrack
}

// NewVideoTrack constructs a video track. opts.Type is forced to TypeVideo.
func NewVideoTrack(opts Options) *VideoTrack {
	opts.Type = TypeVideo
	return &VideoTrack{MediaTrack: *NewMediaTrack(opts, videoKinds)}
}

// TextTrack is a timed-text track descriptor (subtitles, captions, chapters).
type TextTrack struct {
	MediaTrack
}

// NewTextTrack constructs a text track. opts.Type is forced to TypeText.
func NewTextTrack(opts Options) *TextTrack {
	opts.Type = TypeText
	return &TextTrack{MediaTrack: *NewMediaTrack(opts, textKinds)}
}
