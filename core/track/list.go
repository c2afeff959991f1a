package track

import "github.com/google/uuid"

// List is an ordered container of tracks belonging to one owner (typically a
// media element). The list, never the track, manages the back-reference: Add
// sets it, Remove and Close clear it. Like Track it has single-owner affinity
// and is not safe for concurrent use.
type List struct {
	id     string
	owner  any
	tracks []*Track
}

// NewList constructs a list with a fresh UUID. owner is the object reported
// as the ownership root for every contained track; it may be nil, in which
// case the list itself is the root.
func NewList(owner any) *List {
	return &List{
		id:    uuid.NewString(),
		owner: owner,
	}
}

// ID returns the list's identifier.
func (l *List) ID() string { return l.id }

// Len returns the number of contained tracks.
func (l *List) Len() int { return len(l.tracks) }

// Get returns the track at position i, or nil when out of range.
func (l *List) Get(i int) *Track {
	if i < 0 || i >= len(l.tracks) {
		return nil
	}
	return l.tracks[i]
}

// Tracks returns the contained tracks in order. The slice is a copy.
func (l *List) Tracks() []*Track {
	out := make([]*Track, len(l.tracks))
	copy(out, l.tracks)
	return out
}

// Add appends t and points its back-reference at this list, replacing any
// previous membership.
func (l *List) Add(t *Track) {
	if prev := t.TrackList(); prev != nil && prev != l {
		prev.Remove(t)
	}
	l.tracks = append(l.tracks, t)
	t.SetTrackList(l)
}

// Remove deletes t from the list and clears its back-reference. It reports
// whether t was present.
func (l *List) Remove(t *Track) bool {
	for i, cur := range l.tracks {
		if cur == t {
			l.tracks = append(l.tracks[:i], l.tracks[i+1:]...)
			t.ClearTrackList()
			return true
		}
	}
	return false
}

// Close clears the back-reference of every contained track and empties the
// list. Must run before the list's owner releases it so no track is left
// pointing at a dead list.
func (l *List) Close() {
	for _, t := range l.tracks {
		t.ClearTrackList()
	}
	l.tracks = nil
}

// OwnershipRoot returns the object keeping this list's tracks reachable: the
// owner when set, else the list itself.
func (l *List) OwnershipRoot() any {
	if l.owner != nil {
		return l.owner
	}
	return l
}
