package view

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// FormView holds the current values of the signup form fields.
type FormView struct {
	Email    string
	Activity string
}

// PageData is everything the full page needs.
type PageData struct {
	Banner   BannerView
	Form     FormView
	Options  []string
	ListHTML string
}

// Page renders the complete board document. ListHTML is inserted as-is: it is
// markup previously produced by ActivityList or ListMessage.
func Page(p PageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if err := Banner(p.Banner).Render(ctx, w); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<section id="activities-container"><h3>Available Activities</h3><div id="activities-list">`+p.ListHTML+`</div>`+
			`<form method="post" action="`+RefreshAction+`"><button type="submit" class="secondary">Refresh</button></form></section>`); err != nil {
			return err
		}
		if _, err := io.WriteString(w, `<section id="signup-container"><h3>Sign Up for an Activity</h3>`+
			`<form id="signup-form" method="post" action="`+SignupAction+`">`+
			`<div class="form-group"><label for="email">Student Email:</label>`+
			`<input type="email" id="email" name="email" required placeholder="your-email@mergington.edu" value="`+esc(p.Form.Email)+`"></div>`+
			`<div class="form-group"><label for="activity">Select Activity:</label><select id="activity" name="activity" required>`); err != nil {
			return err
		}
		if err := ActivityOptions(p.Options, p.Form.Activity).Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</select></div><button type="submit">Sign Up</button></form></section>`+pageFoot)
		return err
	})
}

const pageHead = `<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Mergington High School Activities</title>
    <style>
      body { font-family: system-ui, sans-serif; margin: 0 auto; max-width: 960px; padding: 1rem; }
      .activity-card { border: 1px solid #ddd; border-radius: 6px; padding: 0.75rem; margin-bottom: 0.75rem; }
      .participant-list { list-style: none; padding: 0; }
      .participant-item { display: flex; align-items: center; gap: 0.5rem; }
      .participant-badge { border-radius: 50%; background: #1a237e; color: #fff; font-size: 0.75rem; padding: 0.25rem 0.4rem; }
      .participants-empty { color: #666; font-style: italic; }
      .delete-form { display: inline; margin-left: auto; }
      .delete-btn { background: none; border: none; color: #c62828; cursor: pointer; }
      #message { padding: 0.75rem; border-radius: 4px; margin-bottom: 1rem; }
      #message.success { background: #e8f5e9; color: #2e7d32; }
      #message.error { background: #ffebee; color: #c62828; }
      .hidden { display: none; }
    </style>
  </head>
  <body>
    <header><h1>Mergington High School</h1><h2>Extracurricular Activities</h2></header>
    <main>
`

const pageFoot = `
    </main>
  </body>
</html>
`
