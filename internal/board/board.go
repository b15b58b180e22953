// Package board implements the activity board controller: it owns the page
// regions (activities list, activity select, signup form, message banner),
// fetches the catalog, and runs the signup and remove-participant flows
// against the upstream API.
//
// Every render discards the previous regions and rebuilds them from the
// latest catalog. There is no incremental diffing.
package board

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/Shivanand-hulikatti/activity-board/internal/client"
	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/Shivanand-hulikatti/activity-board/internal/view"
	"github.com/a-h/templ"
)

// DefaultHideDelay is how long the banner stays visible after an outcome.
const DefaultHideDelay = 5 * time.Second

// Banner messages used when the upstream gives no detail.
const (
	SignupFallback     = "An error occurred"
	SignupFailed       = "Failed to sign up. Please try again."
	UnregisterFallback = "Failed to unregister participant"
	UnregisterFailed   = "Failed to unregister. Please try again."
)

// Banner styles.
const (
	BannerSuccess = "success"
	BannerError   = "error"
)

// ErrNotAttached is returned when a delete affordance is clicked that the
// current render does not contain.
var ErrNotAttached = errors.New("delete affordance is not attached")

// API is the subset of the upstream client the board uses.
type API interface {
	ListActivities(ctx context.Context) (*model.Catalog, error)
	Signup(ctx context.Context, activity, email string) (*model.SignupResponse, error)
	Unregister(ctx context.Context, activity, email string) error
}

// Banner is the shared feedback element.
type Banner struct {
	Text   string `json:"text"`
	Class  string `json:"class"`
	Hidden bool   `json:"hidden"`
}

// Form holds the signup form fields.
type Form struct {
	Email    string `json:"email"`
	Activity string `json:"activity"`
}

// Snapshot is a copy of the board regions at one instant.
type Snapshot struct {
	Banner        Banner                  `json:"banner"`
	Form          Form                    `json:"form"`
	Activities    []string                `json:"activities"`
	DeleteButtons []view.DeleteAffordance `json:"delete_buttons"`
	ListHTML      string                  `json:"-"`
	Loaded        bool                    `json:"loaded"`
}

// Board is the single controller for one activity board page. The mutex
// stands in for the browser's UI thread: region updates are serialized, and
// network calls happen outside it.
type Board struct {
	api       API
	logger    *slog.Logger
	hideDelay time.Duration
	afterFunc func(time.Duration, func())

	mu       sync.Mutex
	listHTML string
	options  []string
	buttons  []view.DeleteAffordance
	form     Form
	banner   Banner
	loaded   bool

	// fetchSeq numbers catalog fetches; appliedSeq is the newest one rendered.
	fetchSeq   uint64
	appliedSeq uint64
}

// Option configures a Board.
type Option func(*Board)

// WithLogger sets the board logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Board) { b.logger = l }
}

// WithHideDelay sets how long the banner stays visible.
func WithHideDelay(d time.Duration) Option {
	return func(b *Board) { b.hideDelay = d }
}

// WithAfterFunc replaces the timer used to hide the banner.
func WithAfterFunc(fn func(time.Duration, func())) Option {
	return func(b *Board) { b.afterFunc = fn }
}

// New constructs a Board. Call Load to perform the initial fetch.
func New(api API, opts ...Option) *Board {
	b := &Board{
		api:       api,
		logger:    slog.Default(),
		hideDelay: DefaultHideDelay,
		afterFunc: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		listHTML:  renderString(view.ListMessage(view.LoadingText)),
		banner:    Banner{Hidden: true},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Load fetches the catalog and replaces the list and select regions. On
// failure only the list region changes, to a static failure sentence. A
// fetch that finishes after a newer one has been rendered is dropped.
func (b *Board) Load(ctx context.Context) error {
	b.mu.Lock()
	b.fetchSeq++
	seq := b.fetchSeq
	b.mu.Unlock()

	catalog, err := b.api.ListActivities(ctx)
	if err != nil {
		b.logger.Error("fetch_activities_failed", "error", err.Error())
		failed := renderString(view.ListMessage(view.LoadFailedText))

		b.mu.Lock()
		defer b.mu.Unlock()
		if seq > b.appliedSeq {
			b.appliedSeq = seq
			b.listHTML = failed
			b.buttons = nil
		}
		return fmt.Errorf("load activities: %w", err)
	}

	listHTML := renderString(view.ActivityList(catalog))
	buttons, err := view.DeleteAffordances(listHTML)
	if err != nil {
		return fmt.Errorf("scan delete buttons: %w", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if seq <= b.appliedSeq {
		b.logger.Debug("stale_catalog_dropped", "seq", seq, "applied", b.appliedSeq)
		return nil
	}
	b.appliedSeq = seq
	b.listHTML = listHTML
	b.options = catalog.Names()
	b.buttons = buttons
	b.loaded = true
	b.logger.Debug("catalog_rendered", "activities", catalog.Len(), "delete_buttons", len(buttons))
	return nil
}

// SetForm fills the signup form fields.
func (b *Board) SetForm(email, activity string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.form = Form{Email: email, Activity: activity}
}

// Submit signs up the form's email for the form's activity. On success the
// form is reset and the catalog reloaded; on failure the form is kept.
func (b *Board) Submit(ctx context.Context) error {
	b.mu.Lock()
	form := b.form
	b.mu.Unlock()

	resp, err := b.api.Signup(ctx, form.Activity, form.Email)
	if err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			b.showBanner(detailOr(apiErr, SignupFallback), BannerError)
		} else {
			b.logger.Error("signup_failed", "activity", form.Activity, "error", err.Error())
			b.showBanner(SignupFailed, BannerError)
		}
		return fmt.Errorf("signup: %w", err)
	}

	b.logger.Info("signup_event", "event", "participant_signed_up", "activity", form.Activity, "email", form.Email)
	b.showBanner(resp.Message, BannerSuccess)
	b.mu.Lock()
	b.form = Form{}
	b.mu.Unlock()

	// Reload failures are rendered into the list region.
	_ = b.Load(ctx)
	return nil
}

// ClickDelete removes the affordance's participant from its activity and
// reloads the catalog. Only affordances of the current render can be clicked.
func (b *Board) ClickDelete(ctx context.Context, btn view.DeleteAffordance) error {
	b.mu.Lock()
	attached := slices.Contains(b.buttons, btn)
	b.mu.Unlock()
	if !attached {
		return ErrNotAttached
	}

	if err := b.api.Unregister(ctx, btn.Activity, btn.Email); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			b.showBanner(detailOr(apiErr, UnregisterFallback), BannerError)
		} else {
			b.logger.Error("unregister_failed", "activity", btn.Activity, "error", err.Error())
			b.showBanner(UnregisterFailed, BannerError)
		}
		return fmt.Errorf("unregister: %w", err)
	}

	b.logger.Info("unregister_event", "event", "participant_removed", "activity", btn.Activity, "email", btn.Email)
	_ = b.Load(ctx)
	return nil
}

// DeleteButtons returns the affordances attached by the latest render.
func (b *Board) DeleteButtons() []view.DeleteAffordance {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.buttons)
}

// FindDeleteButton looks up an attached affordance by activity and email.
func (b *Board) FindDeleteButton(activity, email string) (view.DeleteAffordance, bool) {
	want := view.DeleteAffordance{Activity: activity, Email: email}
	b.mu.Lock()
	defer b.mu.Unlock()
	if slices.Contains(b.buttons, want) {
		return want, true
	}
	return view.DeleteAffordance{}, false
}

// Snapshot copies the current regions.
func (b *Board) Snapshot() Snapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return Snapshot{
		Banner:        b.banner,
		Form:          b.form,
		Activities:    slices.Clone(b.options),
		DeleteButtons: slices.Clone(b.buttons),
		ListHTML:      b.listHTML,
		Loaded:        b.loaded,
	}
}

// Page renders the whole board from a snapshot.
func (b *Board) Page() templ.Component {
	s := b.Snapshot()
	return view.Page(view.PageData{
		Banner:   view.BannerView{Text: s.Banner.Text, Class: s.Banner.Class, Hidden: s.Banner.Hidden},
		Form:     view.FormView{Email: s.Form.Email, Activity: s.Form.Activity},
		Options:  s.Activities,
		ListHTML: s.ListHTML,
	})
}

// showBanner shows text and schedules its own hide. Earlier timers are left
// running, so any of them may hide a newer message.
func (b *Board) showBanner(text, class string) {
	b.mu.Lock()
	b.banner = Banner{Text: text, Class: class}
	b.mu.Unlock()
	b.afterFunc(b.hideDelay, b.hideBanner)
}

func (b *Board) hideBanner() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.banner.Hidden = true
}

func detailOr(err *client.APIError, fallback string) string {
	if err.Detail != "" {
		return err.Detail
	}
	return fallback
}

func renderString(c templ.Component) string {
	var buf bytes.Buffer
	// Components here only write to memory.
	_ = c.Render(context.Background(), &buf)
	return buf.String()
}
