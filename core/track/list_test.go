package track

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestListAddRemove(t *testing.T) {
	var ids IDAllocator
	l := NewList(nil)
	tr := New(Options{Type: TypeAudio, TrackID: 1, IDs: &ids})

	l.Add(tr)
	require.Same(t, l, tr.TrackList())
	require.Equal(t, 1, l.Len())
	require.Same(t, tr, l.Get(0))

	require.True(t, l.Remove(tr))
	require.Nil(t, tr.TrackList())
	require.Equal(t, 0, l.Len())

	require.False(t, l.Remove(tr))
}

func TestListAddReplacesPreviousMembership(t *testing.T) {
	var ids IDAllocator
	first := NewList(nil)
	second := NewList(nil)
	tr := New(Options{Type: TypeVideo, TrackID: 2, IDs: &ids})

	first.Add(tr)
	second.Add(tr)
	require.Same(t, second, tr.TrackList())
	require.Equal(t, 0, first.Len())
	require.Equal(t, 1, second.Len())
}

func TestListCloseClearsBackReferences(t *testing.T) {
	var ids IDAllocator
	l := NewList(nil)
	a := New(Options{Type: TypeAudio, TrackID: 1, IDs: &ids})
	b := New(Options{Type: TypeText, TrackID: 2, IDs: &ids})
	l.Add(a)
	l.Add(b)

	l.Close()
	require.Nil(t, a.TrackList())
	require.Nil(t, b.TrackList())
	require.Equal(t, 0, l.Len())
}

func TestOwnershipRoot(t *testing.T) {
	var ids IDAllocator
	tr := New(Options{Type: TypeAudio, TrackID: 1, IDs: &ids})

	// Without a list the track is its own root.
	require.Same(t, tr, tr.OwnershipRoot())

	owner := &struct{ name string }{"media element"}
	l := NewList(owner)
	l.Add(tr)
	require.Same(t, owner, tr.OwnershipRoot())

	// An ownerless list is itself the root.
	anon := NewList(nil)
	anon.Add(tr)
	require.Same(t, anon, tr.OwnershipRoot())

	anon.Remove(tr)
	require.Same(t, tr, tr.OwnershipRoot())
}

func TestListIdentity(t *testing.T) {
	a := NewList(nil)
	b := NewList(nil)
	require.NotEmpty(t, a.ID())
	require.NotEqual(t, a.ID(), b.ID())
}

func TestListGetOutOfRange(t *testing.T) {
	l := NewList(nil)
	require.Nil(t, l.Get(0))
	require.Nil(t, l.Get(-1))
}

func TestListTracksIsACopy(t *testing.T) {
	var ids IDAllocator
	l := NewList(nil)
	l.Add(New(Options{Type: TypeAudio, TrackID: 1, IDs: &ids}))

	got := l.Tracks()
	got[0] = nil
	require.NotNil(t, l.Get(0))
}
