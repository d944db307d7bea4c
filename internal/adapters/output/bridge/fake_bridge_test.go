package bridge

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/amimof/huego"
)

type recordedRequest struct {
	Method      string
	Path        string
	Body        string
	ContentType string
}

type cannedResponse struct {
	status int
	body   string
}

// fakeBridge serves the v1 lights endpoints for one whitelisted user.
type fakeBridge struct {
	user   string
	lights map[string]*huego.Light

	mu       sync.Mutex
	delay    time.Duration
	requests []recordedRequest
	canned   map[string]cannedResponse
	inFlight int
	maxSeen  int
}

func newFakeBridge(t *testing.T) (*fakeBridge, *httptest.Server) {
	t.Helper()
	fb := &fakeBridge{
		user: "user",
		lights: map[string]*huego.Light{
			"1": {
				Name:      "Hue color lamp 1",
				Type:      "Extended color light",
				ModelID:   "LCT001",
				SwVersion: "66009461",
				State: &huego.State{
					On:        true,
					Bri:       144,
					Hue:       13088,
					Sat:       212,
					Xy:        []float32{0.5128, 0.4147},
					Ct:        467,
					Alert:     "none",
					Effect:    "none",
					ColorMode: "xy",
					Reachable: true,
				},
			},
			"2": {
				Name:      "Hue white lamp",
				Type:      "Dimmable light",
				ModelID:   "LWB004",
				SwVersion: "5.38.1.14378",
				State: &huego.State{
					On:        false,
					Bri:       254,
					Alert:     "none",
					Reachable: true,
				},
			},
		},
		canned: make(map[string]cannedResponse),
	}
	srv := httptest.NewServer(http.HandlerFunc(fb.handleAPI))
	t.Cleanup(srv.Close)
	return fb, srv
}

func hostOf(srv *httptest.Server) string {
	return strings.TrimPrefix(srv.URL, "http://")
}

func (fb *fakeBridge) setDelay(d time.Duration) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.delay = d
}

// respond makes the next requests to "METHOD /path" return a fixed reply.
func (fb *fakeBridge) respond(method, path string, status int, body string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	fb.canned[method+" "+path] = cannedResponse{status: status, body: body}
}

func (fb *fakeBridge) recorded() []recordedRequest {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	return slices.Clone(fb.requests)
}

func (fb *fakeBridge) handleAPI(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	fb.mu.Lock()
	fb.requests = append(fb.requests, recordedRequest{
		Method:      r.Method,
		Path:        r.URL.Path,
		Body:        string(body),
		ContentType: r.Header.Get("Content-Type"),
	})
	fb.inFlight++
	fb.maxSeen = max(fb.maxSeen, fb.inFlight)
	canned, hasCanned := fb.canned[r.Method+" "+r.URL.Path]
	delay := fb.delay
	fb.mu.Unlock()

	time.Sleep(delay)

	// Leave before writing so the client cannot see the reply first.
	fb.mu.Lock()
	fb.inFlight--
	fb.mu.Unlock()

	if hasCanned {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(canned.status)
		fmt.Fprint(w, canned.body)
		return
	}

	path := strings.TrimPrefix(r.URL.Path, "/api")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) < 1 || parts[0] != fb.user {
		writeJSON(w, []map[string]any{{
			"error": map[string]any{"type": 1, "address": "/", "description": "unauthorized user"},
		}})
		return
	}

	subPath := parts[1:]
	if len(subPath) == 0 || subPath[0] != "lights" {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}

	switch {
	case len(subPath) == 1 && r.Method == http.MethodGet:
		fb.handleGetLights(w)
	case len(subPath) == 1 && r.Method == http.MethodPost:
		writeJSON(w, []map[string]any{{"success": map[string]any{"/lights": "Searching for new devices"}}})
	case len(subPath) == 2 && r.Method == http.MethodGet:
		fb.handleGetLight(w, subPath[1])
	case len(subPath) == 2 && r.Method == http.MethodPut:
		fb.handleRename(w, subPath[1], body)
	case len(subPath) == 3 && subPath[2] == "state" && r.Method == http.MethodPut:
		fb.handleSetLightState(w, subPath[1], body)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (fb *fakeBridge) handleGetLights(w http.ResponseWriter) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	writeJSON(w, fb.lights)
}

func (fb *fakeBridge) handleGetLight(w http.ResponseWriter, id string) {
	fb.mu.Lock()
	defer fb.mu.Unlock()
	l, ok := fb.lights[id]
	if !ok {
		http.Error(w, fmt.Sprintf("light %s not found", id), http.StatusNotFound)
		return
	}
	writeJSON(w, l)
}

func (fb *fakeBridge) handleRename(w http.ResponseWriter, id string, body []byte) {
	var update struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &update); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	l, ok := fb.lights[id]
	if !ok {
		http.Error(w, fmt.Sprintf("light %s not found", id), http.StatusNotFound)
		return
	}
	l.Name = update.Name
	writeJSON(w, []map[string]any{{"success": map[string]any{"/lights/" + id + "/name": update.Name}}})
}

func (fb *fakeBridge) handleSetLightState(w http.ResponseWriter, id string, body []byte) {
	var stateUpdate map[string]any
	if err := json.Unmarshal(body, &stateUpdate); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	fb.mu.Lock()
	defer fb.mu.Unlock()
	l, ok := fb.lights[id]
	if !ok {
		http.Error(w, fmt.Sprintf("light %s not found", id), http.StatusNotFound)
		return
	}
	if on, ok := stateUpdate["on"].(bool); ok {
		l.State.On = on
	}
	if bri, ok := stateUpdate["bri"].(float64); ok {
		l.State.Bri = uint8(bri)
	}

	keys := make([]string, 0, len(stateUpdate))
	for k := range stateUpdate {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	resp := []map[string]any{}
	for _, k := range keys {
		resp = append(resp, map[string]any{
			"success": map[string]any{
				fmt.Sprintf("/lights/%s/state/%s", id, k): stateUpdate[k],
			},
		})
	}
	writeJSON(w, resp)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
