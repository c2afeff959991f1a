package track

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type postedDiagnostic struct {
	category Category
	level    Level
	message  string
}

type recordingPoster struct {
	posted []postedDiagnostic
}

func (p *recordingPoster) PostDiagnostic(category Category, level Level, message string) {
	p.posted = append(p.posted, postedDiagnostic{category, level, message})
}

func TestNewTrackIdentity(t *testing.T) {
	var ids IDAllocator

	tr := New(Options{Type: TypeAudio, TrackID: 7, Label: "Main", Language: "en", IDs: &ids})
	require.Equal(t, int64(1), tr.UniqueID())
	require.Equal(t, "7", tr.ID())
	require.Equal(t, uint64(7), tr.TrackID())
	require.Equal(t, TypeAudio, tr.Type())
	require.Equal(t, "Main", tr.Label())
	require.Equal(t, "en", tr.Language())
	require.Equal(t, "en", tr.ValidBCP47Language())

	explicit := New(Options{Type: TypeText, ID: "captions-1", TrackID: 3, IDs: &ids})
	require.Equal(t, int64(2), explicit.UniqueID())
	require.Equal(t, "captions-1", explicit.ID())
}

func TestNewTrackInvalidInitialLanguage(t *testing.T) {
	poster := &recordingPoster{}
	tr := New(Options{Context: poster, Type: TypeVideo, TrackID: 1, Language: "bad tag", IDs: &IDAllocator{}})

	// Construction normalizes silently; only SetLanguage reports.
	require.Equal(t, "bad tag", tr.Language())
	require.Equal(t, "", tr.ValidBCP47Language())
	require.Empty(t, poster.posted)
}

func TestUniqueIDsStrictlyIncrease(t *testing.T) {
	var ids IDAllocator
	var last int64
	for i := 0; i < 10; i++ {
		tr := New(Options{Type: TypeAudio, TrackID: uint64(i), IDs: &ids})
		require.Greater(t, tr.UniqueID(), last)
		last = tr.UniqueID()
	}
}

func TestSetLanguage(t *testing.T) {
	t.Run("valid tag", func(t *testing.T) {
		poster := &recordingPoster{}
		tr := New(Options{Context: poster, Type: TypeAudio, TrackID: 1, IDs: &IDAllocator{}})

		tr.SetLanguage("en-US")
		require.Equal(t, "en-US", tr.Language())
		require.Equal(t, "en-US", tr.ValidBCP47Language())
		require.Empty(t, poster.posted)
	})

	t.Run("empty is valid and silent", func(t *testing.T) {
		poster := &recordingPoster{}
		tr := New(Options{Context: poster, Type: TypeAudio, TrackID: 1, Language: "en", IDs: &IDAllocator{}})

		tr.SetLanguage("")
		require.Equal(t, "", tr.Language())
		require.Equal(t, "", tr.ValidBCP47Language())
		require.Empty(t, poster.posted)
	})

	t.Run("invalid tag posts warning", func(t *testing.T) {
		poster := &recordingPoster{}
		tr := New(Options{Context: poster, Type: TypeAudio, TrackID: 1, IDs: &IDAllocator{}})

		tr.SetLanguage("not valid!!")
		require.Equal(t, "not valid!!", tr.Language())
		require.Equal(t, "", tr.ValidBCP47Language())
		require.Len(t, poster.posted, 1)
		require.Equal(t, CategoryRendering, poster.posted[0].category)
		require.Equal(t, LevelWarning, poster.posted[0].level)
		require.Equal(t, "The language 'not valid!!' is not a valid BCP 47 language tag.", poster.posted[0].message)
	})

	t.Run("null character gets its own message", func(t *testing.T) {
		poster := &recordingPoster{}
		tr := New(Options{Context: poster, Type: TypeAudio, TrackID: 1, IDs: &IDAllocator{}})

		tr.SetLanguage("en-\x00S")
		require.Equal(t, "", tr.ValidBCP47Language())
		require.Len(t, poster.posted, 1)
		require.Equal(t, "The language contains a null character and is not a valid BCP 47 language tag.", poster.posted[0].message)
	})

	t.Run("no context drops diagnostics", func(t *testing.T) {
		tr := New(Options{Type: TypeAudio, TrackID: 1, IDs: &IDAllocator{}})

		tr.SetLanguage("not valid!!")
		require.Equal(t, "", tr.ValidBCP47Language())
	})

	t.Run("invalid then valid recovers", func(t *testing.T) {
		tr := New(Options{Type: TypeAudio, TrackID: 1, IDs: &IDAllocator{}})

		tr.SetLanguage("not valid!!")
		tr.SetLanguage("fr")
		require.Equal(t, "fr", tr.Language())
		require.Equal(t, "fr", tr.ValidBCP47Language())
	})
}

func TestValidatedLanguageInvariant(t *testing.T) {
	tr := New(Options{Type: TypeText, TrackID: 1, IDs: &IDAllocator{}})

	for i, lang := range []string{"en", "x", "", "pt-BR", "1n", "i-klingon", "en_US"} {
		tr.SetLanguage(lang)
		got := tr.ValidBCP47Language()
		if got != "" {
			require.True(t, IsValidBCP47LanguageTag(got), fmt.Sprintf("case %d: %q", i, lang))
		}
		if tr.Language() == "" {
			require.Equal(t, "", got)
		}
	}
}

func TestObserveContext(t *testing.T) {
	first := &recordingPoster{}
	second := &recordingPoster{}
	tr := New(Options{Context: first, Type: TypeAudio, TrackID: 1, IDs: &IDAllocator{}})

	tr.ObserveContext(second)
	tr.SetLanguage("!!")
	require.Empty(t, first.posted)
	require.Len(t, second.posted, 1)

	tr.ObserveContext(nil)
	tr.SetLanguage("??")
	require.Len(t, second.posted, 1)
}

func TestSetLabel(t *testing.T) {
	tr := New(Options{Type: TypeAudio, TrackID: 1, Label: "original", IDs: &IDAllocator{}})
	tr.SetLabel("renamed")
	require.Equal(t, "renamed", tr.Label())
}
