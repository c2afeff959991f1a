package track

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetKindValid(t *testing.T) {
	at := NewAudioTrack(Options{TrackID: 1, IDs: &IDAllocator{}})
	at.SetKind("main")
	require.Equal(t, "main", at.Kind())
	require.Equal(t, TypeAudio, at.Type())
}

func TestSetKindInvalidResetsSilently(t *testing.T) {
	poster := &recordingPoster{}
	at := NewAudioTrack(Options{Context: poster, TrackID: 1, IDs: &IDAllocator{}})

	at.SetKind("main")
	at.SetKind("bogus")
	require.Equal(t, "", at.Kind())
	// Kind validation never posts, unlike language validation.
	require.Empty(t, poster.posted)
}

func TestKindVocabularies(t *testing.T) {
	cases := []struct {
		name   string
		build  func() *MediaTrack
		preset string
		ok     []string
		bad    []string
	}{
		{
			name:  "audio",
			build:  func() *MediaTrack { return &NewAudioTrack(Options{TrackID: 1, IDs: &IDAllocator{}}).MediaTrack },
			preset: "main",
			ok:    []string{"alternative", "description", "main", "main-desc", "translation", "commentary", ""},
			bad:   []string{"captions", "sign", "Main"},
		},
		{
			name:  "video",
			build:  func() *MediaTrack { return &NewVideoTrack(Options{TrackID: 1, IDs: &IDAllocator{}}).MediaTrack },
			preset: "main",
			ok:    []string{"alternative", "captions", "main", "sign", "subtitles", "commentary", ""},
			bad:   []string{"description", "metadata"},
		},
		{
			name:  "text",
			build:  func() *MediaTrack { return &NewTextTrack(Options{TrackID: 1, IDs: &IDAllocator{}}).MediaTrack },
			preset: "subtitles",
			ok:    []string{"subtitles", "captions", "descriptions", "chapters", "metadata", "forced", ""},
			bad:   []string{"main", "sign"},
		},
	}

	for _, ca := range cases {
		t.Run(ca.name, func(t *testing.T) {
			for _, kind := range ca.ok {
				mt := ca.build()
				mt.SetKind(kind)
				require.Equal(t, kind, mt.Kind(), kind)
			}
			for _, kind := range ca.bad {
				mt := ca.build()
				mt.SetKind(ca.preset)
				mt.SetKind(kind)
				require.Equal(t, "", mt.Kind(), kind)
			}
		})
	}
}

func TestNilKindPredicateRejectsAll(t *testing.T) {
	mt := NewMediaTrack(Options{Type: TypeAudio, TrackID: 1, IDs: &IDAllocator{}}, nil)
	mt.SetKind("main")
	require.Equal(t, "", mt.Kind())
}

func TestMediaTrackInList(t *testing.T) {
	var ids IDAllocator
	l := NewList(nil)
	at := NewAudioTrack(Options{TrackID: 4, IDs: &ids})

	l.Add(&at.Track)
	require.Same(t, l, at.TrackList())
	l.Close()
	require.Nil(t, at.TrackList())
}
