package dispatch

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/crispy-lang/crispy/internal/duration"
	"github.com/crispy-lang/crispy/internal/pattern"
)

func withTestServer(t *testing.T, handler http.HandlerFunc) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	original := BaseURL
	BaseURL = server.URL
	t.Cleanup(func() { BaseURL = original })
}

func samplePattern(name string) pattern.Pattern {
	return pattern.New(name, []pattern.Event{
		{Action: pattern.Note{NoteNum: 60, Velocity: 0.5, Dur: duration.Half}, Dur: duration.Bar},
	}, duration.Bar)
}

func TestStartPostsToStartEndpoint(t *testing.T) {
	var gotPath string
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	})
	err := Start(samplePattern("foo"))
	assert.NoError(t, err)
	assert.Equal(t, "/start/foo", gotPath)
	assert.Contains(t, LiveNames(), "foo")
}

func TestStartPropagatesServerError(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	err := Start(samplePattern("bar"))
	assert.Error(t, err)
}

func TestStopRemovesFromLiveNames(t *testing.T) {
	withTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	assert.NoError(t, Start(samplePattern("baz")))
	assert.NoError(t, Stop("baz"))
	assert.NotContains(t, LiveNames(), "baz")
}

func TestDebugHexRendersOneLinePerNoteOrCtrl(t *testing.T) {
	p := pattern.New("foo", []pattern.Event{
		{Action: pattern.Note{NoteNum: 60, Velocity: 0.5, Dur: duration.Half}, Dur: duration.Bar},
		{Action: pattern.Rest{}, Dur: duration.Bar},
		{Action: pattern.Ctrl{CC: 1, Value: 1}, Dur: duration.Bar},
	}, duration.Bar)
	lines := DebugHex(p)
	assert.Len(t, lines, 2)
}
