package board

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/Shivanand-hulikatti/activity-board/internal/client"
	"github.com/go-chi/chi/v5"
)

type activityRecord struct {
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

type cannedResponse struct {
	status int
	body   string
}

// fakeUpstream is an in-memory activities API with hooks to force answers.
type fakeUpstream struct {
	mu         sync.Mutex
	order      []string
	activities map[string]*activityRecord
	listCalls  int
	requests   []string

	listOverride       *cannedResponse
	signupOverride     *cannedResponse
	unregisterOverride *cannedResponse
}

func newFakeUpstream() *fakeUpstream {
	return &fakeUpstream{activities: map[string]*activityRecord{}}
}

func (f *fakeUpstream) add(name string, rec activityRecord) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec.Participants == nil {
		rec.Participants = []string{}
	}
	f.order = append(f.order, name)
	f.activities[name] = &rec
}

// set applies fn under the upstream lock.
func (f *fakeUpstream) set(fn func(f *fakeUpstream)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(f)
}

func (f *fakeUpstream) listCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeUpstream) requestURIs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.requests)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeCanned(w http.ResponseWriter, c *cannedResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(c.status)
	_, _ = w.Write([]byte(c.body))
}

func (f *fakeUpstream) router() http.Handler {
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			f.mu.Lock()
			f.requests = append(f.requests, req.Method+" "+req.RequestURI)
			f.mu.Unlock()
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/activities", f.list)
	r.Post("/activities/{name}/signup", f.signup)
	r.Delete("/activities/{name}/unregister", f.unregister)
	return r
}

func (f *fakeUpstream) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listOverride != nil {
		writeCanned(w, f.listOverride)
		return
	}
	// Hand-built so the object keys keep insertion order.
	body := []byte("{")
	for i, name := range f.order {
		if i > 0 {
			body = append(body, ',')
		}
		k, _ := json.Marshal(name)
		v, _ := json.Marshal(f.activities[name])
		body = append(body, k...)
		body = append(body, ':')
		body = append(body, v...)
	}
	body = append(body, '}')
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func activityParam(r *http.Request) string {
	name, _ := url.PathUnescape(chi.URLParam(r, "name"))
	return name
}

func (f *fakeUpstream) signup(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.signupOverride != nil {
		writeCanned(w, f.signupOverride)
		return
	}
	name, email := activityParam(r), r.URL.Query().Get("email")
	rec, ok := f.activities[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Activity not found"})
		return
	}
	if slices.Contains(rec.Participants, email) {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Student is already signed up"})
		return
	}
	rec.Participants = append(rec.Participants, email)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Signed up " + email + " for " + name})
}

func (f *fakeUpstream) unregister(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.unregisterOverride != nil {
		writeCanned(w, f.unregisterOverride)
		return
	}
	name, email := activityParam(r), r.URL.Query().Get("email")
	rec, ok := f.activities[name]
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Activity not found"})
		return
	}
	i := slices.Index(rec.Participants, email)
	if i < 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"detail": "Student is not signed up for this activity"})
		return
	}
	rec.Participants = slices.Delete(rec.Participants, i, i+1)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Unregistered " + email + " from " + name})
}

// manualTimers captures banner hide callbacks so tests decide when they fire.
type manualTimers struct {
	mu    sync.Mutex
	fns   []func()
	delay []time.Duration
}

func (m *manualTimers) afterFunc(d time.Duration, fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fns = append(m.fns, fn)
	m.delay = append(m.delay, d)
}

func (m *manualTimers) pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fns)
}

// fire runs the i-th scheduled callback.
func (m *manualTimers) fire(i int) {
	m.mu.Lock()
	fn := m.fns[i]
	m.mu.Unlock()
	fn()
}

type harness struct {
	upstream *fakeUpstream
	timers   *manualTimers
	board    *Board
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	up := newFakeUpstream()
	srv := httptest.NewServer(up.router())
	t.Cleanup(srv.Close)

	timers := &manualTimers{}
	b := New(client.New(srv.URL), WithAfterFunc(timers.afterFunc))
	return &harness{upstream: up, timers: timers, board: b}
}
