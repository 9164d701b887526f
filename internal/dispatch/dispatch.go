// Package dispatch sends a compiled pattern.Pattern to the external
// plugin over HTTP and tracks which pattern names are currently live,
// the way the teacher's internal/midiplayer tracked which MIDI notes
// were currently sounding.
package dispatch

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	jsoniter "github.com/json-iterator/go"
	"gitlab.com/gomidi/midi/v2"

	"github.com/crispy-lang/crispy/internal/pattern"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultBaseURL = "http://127.0.0.1:3000"

var httpClient = &http.Client{Timeout: 5 * time.Second}

// BaseURL is the plugin endpoint root; overridable for tests.
var BaseURL = defaultBaseURL

var (
	registryOnce sync.Once
	registryMu   sync.Mutex
	registry     map[string]bool
)

func liveNames() map[string]bool {
	registryOnce.Do(func() { registry = make(map[string]bool) })
	return registry
}

// Start POSTs pattern's envelope to /start/<name> and records the name
// as live.
func Start(p pattern.Pattern) error {
	body, err := json.Marshal(p.Envelope())
	if err != nil {
		return fmt.Errorf("dispatch: encode %s: %w", p.Name, err)
	}
	url := fmt.Sprintf("%s/start/%s", BaseURL, p.Name)
	resp, err := httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("dispatch: start %s: %w", p.Name, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("dispatch: start %s: plugin returned %s", p.Name, resp.Status)
	}

	registryMu.Lock()
	liveNames()[p.Name] = true
	registryMu.Unlock()

	log.Printf("dispatch: started %s (%d events, channel %d)", p.Name, len(p.Events), p.Envelope().Channel)
	return nil
}

// Stop POSTs to /stop/<name> and drops name from the live registry
// regardless of whether the plugin still recognizes it.
func Stop(name string) error {
	url := fmt.Sprintf("%s/stop/%s", BaseURL, name)
	resp, err := httpClient.Post(url, "application/json", nil)
	if err != nil {
		return fmt.Errorf("dispatch: stop %s: %w", name, err)
	}
	defer resp.Body.Close()

	registryMu.Lock()
	delete(liveNames(), name)
	registryMu.Unlock()

	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("dispatch: stop %s: plugin returned %s", name, resp.Status)
	}
	log.Printf("dispatch: stopped %s", name)
	return nil
}

// LiveNames returns every pattern name Start has sent without a
// matching Stop.
func LiveNames() []string {
	registryMu.Lock()
	defer registryMu.Unlock()
	names := make([]string, 0, len(liveNames()))
	for name := range liveNames() {
		names = append(names, name)
	}
	return names
}

// DebugHex renders each of a pattern's Note and Ctrl events as MIDI
// NoteOn/ControlChange wire bytes via gitlab.com/gomidi/midi/v2's message
// constructors, for --debug logging only; no MIDI output port is opened.
func DebugHex(p pattern.Pattern) []string {
	lines := make([]string, 0, len(p.Events))
	channel := uint8(p.Envelope().Channel - 1)
	for _, ev := range p.Events {
		switch action := ev.Action.(type) {
		case pattern.Note:
			velocity := uint8(action.Velocity * 127)
			msg := midi.NoteOn(channel, uint8(action.NoteNum), velocity)
			lines = append(lines, fmt.Sprintf("% X", msg))
		case pattern.Ctrl:
			msg := midi.ControlChange(channel, uint8(action.CC), uint8(action.Value*127))
			lines = append(lines, fmt.Sprintf("% X", msg))
		}
	}
	return lines
}
