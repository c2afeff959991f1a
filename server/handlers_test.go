package server

import (
	"testing"

	"trackbase/core/track"
	"trackbase/model"

	"github.com/stretchr/testify/require"
)

func TestTrackTypeFromString(t *testing.T) {
	for s, want := range map[string]track.Type{
		"audio": track.TypeAudio,
		"video": track.TypeVideo,
		"text":  track.TypeText,
	} {
		typ, ok := trackTypeFromString(s)
		require.True(t, ok, s)
		require.Equal(t, want, typ)
	}

	_, ok := trackTypeFromString("subtitle")
	require.False(t, ok)
	_, ok = trackTypeFromString("")
	require.False(t, ok)
}

func TestRehydrate(t *testing.T) {
	hub := &fakeBroadcaster{}
	h := &APIHandler{console: NewConsole(hub)}

	rec := &model.Track{
		ID:            12,
		PublicID:      "aud-1",
		SourceTrackID: 5,
		Type:          "audio",
		Kind:          "main",
		Label:         "Stereo",
		Language:      "en-US",
		ValidLanguage: "en-US",
	}

	mt, ok := h.rehydrate(rec)
	require.True(t, ok)
	require.Equal(t, "aud-1", mt.ID())
	require.Equal(t, uint64(5), mt.TrackID())
	require.Equal(t, track.TypeAudio, mt.Type())
	require.Equal(t, "main", mt.Kind())
	require.Equal(t, "Stereo", mt.Label())
	require.Equal(t, "en-US", mt.ValidBCP47Language())

	// Mutations on the rehydrated track report through the console.
	mt.SetLanguage("nope!")
	require.Len(t, hub.sent, 1)
}

func TestRehydrateCorruptType(t *testing.T) {
	h := &APIHandler{console: NewConsole(nil)}
	_, ok := h.rehydrate(&model.Track{Type: "hologram"})
	require.False(t, ok)
}

func TestRehydrateStoredKindOutsideVocabularyResets(t *testing.T) {
	h := &APIHandler{console: NewConsole(nil)}
	mt, ok := h.rehydrate(&model.Track{Type: "text", Kind: "main"})
	require.True(t, ok)
	require.Equal(t, "", mt.Kind())
}
