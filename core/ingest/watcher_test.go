package ingest

import (
	"context"
	"testing"

	"trackbase/core/track"
	"trackbase/model"

	"github.com/stretchr/testify/require"
)

func TestParseSidecarName(t *testing.T) {
	cases := []struct {
		name     string
		filename string
		base     string
		lang     string
		ext      string
		ok       bool
	}{
		{"language segment", "movie.en.vtt", "movie", "en", "vtt", true},
		{"region subtag", "movie.pt-BR.srt", "movie", "pt-BR", "srt", true},
		{"no language", "movie.vtt", "movie", "", "vtt", true},
		{"dots in base", "my.movie.en.vtt", "my.movie", "en", "vtt", true},
		{"ass subtitle", "show.ja.ass", "show", "ja", "ass", true},
		{"uppercase extension", "movie.en.VTT", "movie", "en", "vtt", true},
		{"unknown extension", "movie.en.mp4", "", "", "", false},
		{"no extension", "movie", "", "", "", false},
	}

	for _, ca := range cases {
		t.Run(ca.name, func(t *testing.T) {
			base, lang, ext, ok := ParseSidecarName(ca.filename)
			require.Equal(t, ca.ok, ok)
			require.Equal(t, ca.base, base)
			require.Equal(t, ca.lang, lang)
			require.Equal(t, ca.ext, ext)
		})
	}
}

func TestContentType(t *testing.T) {
	require.Equal(t, "text/vtt", ContentType("vtt"))
	require.Equal(t, "application/x-subrip", ContentType("srt"))
	require.Equal(t, "application/octet-stream", ContentType("bin"))
}

type fakeRegistrar struct {
	registered []*model.Track
	nextID     int64
	fail       bool
}

func (f *fakeRegistrar) RegisterTrack(_ context.Context, rec *model.Track) (int64, error) {
	if f.fail {
		return 0, context.DeadlineExceeded
	}
	f.nextID++
	f.registered = append(f.registered, rec)
	return f.nextID, nil
}

type capturePoster struct {
	messages []string
}

func (p *capturePoster) PostDiagnostic(_ track.Category, _ track.Level, message string) {
	p.messages = append(p.messages, message)
}

func TestHandleFileRegistersTextTrack(t *testing.T) {
	reg := &fakeRegistrar{}
	poster := &capturePoster{}
	w := NewWatcher(t.TempDir(), reg, poster, &track.IDAllocator{})

	w.handleFile(context.Background(), "/drop/movie.en.vtt")

	require.Len(t, reg.registered, 1)
	rec := reg.registered[0]
	require.Equal(t, "movie.en.vtt", rec.PublicID)
	require.Equal(t, "text", rec.Type)
	require.Equal(t, "subtitles", rec.Kind)
	require.Equal(t, "movie", rec.Label)
	require.Equal(t, "en", rec.Language)
	require.Equal(t, "en", rec.ValidLanguage)
	require.Empty(t, poster.messages)

	require.Equal(t, 1, w.Live().Len())
	require.Same(t, w, w.Live().Get(0).OwnershipRoot())
}

func TestHandleFileInvalidLanguagePostsDiagnostic(t *testing.T) {
	reg := &fakeRegistrar{}
	poster := &capturePoster{}
	w := NewWatcher(t.TempDir(), reg, poster, &track.IDAllocator{})

	w.handleFile(context.Background(), "/drop/movie.12!.vtt")

	require.Len(t, reg.registered, 1)
	rec := reg.registered[0]
	require.Equal(t, "12!", rec.Language)
	require.Equal(t, "", rec.ValidLanguage)
	require.Equal(t, []string{"The language '12!' is not a valid BCP 47 language tag."}, poster.messages)
}

func TestHandleFileIgnoresUnknownExtensions(t *testing.T) {
	reg := &fakeRegistrar{}
	w := NewWatcher(t.TempDir(), reg, nil, &track.IDAllocator{})

	w.handleFile(context.Background(), "/drop/movie.mkv")
	require.Empty(t, reg.registered)
	require.Equal(t, 0, w.Live().Len())
}

func TestHandleFileRegistrarFailureRollsBackLiveList(t *testing.T) {
	reg := &fakeRegistrar{fail: true}
	w := NewWatcher(t.TempDir(), reg, nil, &track.IDAllocator{})

	w.handleFile(context.Background(), "/drop/movie.en.vtt")
	require.Equal(t, 0, w.Live().Len())
}
