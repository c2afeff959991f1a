package server

import (
	"testing"

	"trackbase/core/track"
	"trackbase/server/console"

	"github.com/stretchr/testify/require"
)

type fakeBroadcaster struct {
	sent []console.Diagnostic
}

func (f *fakeBroadcaster) Broadcast(d console.Diagnostic) {
	f.sent = append(f.sent, d)
}

func TestConsoleBroadcastsDiagnostics(t *testing.T) {
	hub := &fakeBroadcaster{}
	cons := NewConsole(hub)

	cons.PostDiagnostic(track.CategoryRendering, track.LevelWarning, "something looks off")

	require.Len(t, hub.sent, 1)
	require.Equal(t, "rendering", hub.sent[0].Category)
	require.Equal(t, "warning", hub.sent[0].Level)
	require.Equal(t, "something looks off", hub.sent[0].Message)
	require.False(t, hub.sent[0].Time.IsZero())
}

func TestConsoleWithoutHubOnlyLogs(t *testing.T) {
	cons := NewConsole(nil)
	// Must not panic with no hub attached.
	cons.PostDiagnostic(track.CategoryMedia, track.LevelError, "dropped")
}

func TestConsoleAsTrackContext(t *testing.T) {
	hub := &fakeBroadcaster{}
	cons := NewConsole(hub)

	tr := track.New(track.Options{Context: cons, Type: track.TypeText, TrackID: 1, IDs: &track.IDAllocator{}})
	tr.SetLanguage("!!bad!!")

	require.Len(t, hub.sent, 1)
	require.Equal(t, "The language '!!bad!!' is not a valid BCP 47 language tag.", hub.sent[0].Message)
}
