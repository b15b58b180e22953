// Package view renders the activity board regions as templ components.
//
// Components are written against templ's runtime directly, without .templ
// sources, so the markup stays next to the helpers that scan it back.
package view

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/Shivanand-hulikatti/activity-board/internal/model"
	"github.com/a-h/templ"
)

const (
	// EmptyParticipantsText is shown for an activity nobody has joined.
	EmptyParticipantsText = "No participants yet — be the first!"
	// LoadFailedText replaces the list when the catalog cannot be fetched.
	LoadFailedText = "Failed to load activities. Please try again later."
	// PlaceholderOption labels the leading empty-valued select option.
	PlaceholderOption = "-- Select an activity --"
	// LoadingText fills the list before the first fetch completes.
	LoadingText = "Loading activities..."

	// Form targets of the HTTP front.
	SignupAction     = "/signup"
	UnregisterAction = "/unregister"
	RefreshAction    = "/refresh"
)

const deleteIcon = `<svg width="16" height="16" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2"><line x1="18" y1="6" x2="6" y2="18"></line><line x1="6" y1="6" x2="18" y2="18"></line></svg>`

func esc(s string) string {
	return templ.EscapeString(s)
}

func write(w io.Writer, sb *strings.Builder) error {
	_, err := io.WriteString(w, sb.String())
	return err
}

// ActivityList renders one card per activity in catalog order.
func ActivityList(catalog *model.Catalog) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		for _, a := range catalog.Activities() {
			writeCard(&sb, a)
		}
		return write(w, &sb)
	})
}

func writeCard(sb *strings.Builder, a model.Activity) {
	sb.WriteString(`<div class="activity-card">`)
	sb.WriteString(`<h4>` + esc(a.Name) + `</h4>`)
	sb.WriteString(`<p>` + esc(a.Description) + `</p>`)
	sb.WriteString(`<p><strong>Schedule:</strong> ` + esc(a.Schedule) + `</p>`)
	sb.WriteString(`<p><strong>Availability:</strong> ` + strconv.Itoa(a.SpotsLeft()) + ` spots left</p>`)
	sb.WriteString(`<div class="participants"><h5>Participants</h5>`)
	if len(a.Participants) == 0 {
		sb.WriteString(`<p class="participants-empty">` + esc(EmptyParticipantsText) + `</p>`)
	} else {
		sb.WriteString(`<ul class="participant-list">`)
		for _, p := range a.Participants {
			writeParticipant(sb, a.Name, p)
		}
		sb.WriteString(`</ul>`)
	}
	sb.WriteString(`</div></div>`)
}

func writeParticipant(sb *strings.Builder, activity, email string) {
	d := model.FormatParticipant(email)
	sb.WriteString(`<li class="participant-item">`)
	sb.WriteString(`<span class="participant-badge">` + esc(d.Initials) + `</span>`)
	sb.WriteString(`<span class="participant-name">` + esc(d.Name) + `</span>`)
	sb.WriteString(`<form class="delete-form" method="post" action="` + UnregisterAction + `">`)
	sb.WriteString(`<input type="hidden" name="activity" value="` + esc(activity) + `">`)
	sb.WriteString(`<input type="hidden" name="email" value="` + esc(email) + `">`)
	sb.WriteString(`<button type="submit" class="delete-btn" data-activity="` + esc(activity) + `" data-email="` + esc(email) + `" title="Remove participant">`)
	sb.WriteString(deleteIcon)
	sb.WriteString(`</button></form></li>`)
}

// ListMessage renders a single static sentence in place of the cards.
func ListMessage(text string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, `<p>`+esc(text)+`</p>`)
		return err
	})
}

// ActivityOptions renders the select options: the empty-valued placeholder,
// then one option per name with value and label both set to the name.
func ActivityOptions(names []string, selected string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var sb strings.Builder
		sb.WriteString(`<option value="">` + esc(PlaceholderOption) + `</option>`)
		for _, name := range names {
			sb.WriteString(`<option value="` + esc(name) + `"`)
			if name == selected && selected != "" {
				sb.WriteString(` selected`)
			}
			sb.WriteString(`>` + esc(name) + `</option>`)
		}
		return write(w, &sb)
	})
}

// BannerView is the visible state of the message banner.
type BannerView struct {
	Text   string
	Class  string
	Hidden bool
}

// Banner renders the message element.
func Banner(b BannerView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		class := b.Class
		if b.Hidden {
			class = strings.TrimSpace(class + " hidden")
		}
		_, err := io.WriteString(w, `<div id="message" class="`+esc(class)+`">`+esc(b.Text)+`</div>`)
		return err
	})
}
