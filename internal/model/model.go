// Package model defines the core domain types for the activity board.
package model

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrMalformedCatalog is returned when the activities payload is not a JSON
// object of activity records.
var ErrMalformedCatalog = errors.New("malformed activity catalog")

// Activity is a signup-able offering with a capacity and a participant roster.
type Activity struct {
	Name            string   `json:"name"`
	Description     string   `json:"description"`
	Schedule        string   `json:"schedule"`
	MaxParticipants int      `json:"max_participants"`
	Participants    []string `json:"participants"`
}

// SpotsLeft returns the remaining capacity. It is not clamped: an
// over-admitted activity reports a negative number.
func (a *Activity) SpotsLeft() int {
	return a.MaxParticipants - len(a.Participants)
}

// Catalog maps activity names to activities, keeping the order in which the
// server listed them.
type Catalog struct {
	activities []Activity
	index      map[string]int
}

// NewCatalog builds a catalog from activities in display order. A repeated
// name replaces the earlier entry but keeps its position.
func NewCatalog(activities ...Activity) *Catalog {
	c := &Catalog{index: make(map[string]int, len(activities))}
	for _, a := range activities {
		c.put(a)
	}
	return c
}

func (c *Catalog) put(a Activity) {
	if i, ok := c.index[a.Name]; ok {
		c.activities[i] = a
		return
	}
	c.index[a.Name] = len(c.activities)
	c.activities = append(c.activities, a)
}

// Activities returns the activities in server order.
func (c *Catalog) Activities() []Activity {
	if c == nil {
		return nil
	}
	return c.activities
}

// Names returns the activity names in server order.
func (c *Catalog) Names() []string {
	if c == nil {
		return nil
	}
	names := make([]string, len(c.activities))
	for i, a := range c.activities {
		names[i] = a.Name
	}
	return names
}

// Get returns the named activity.
func (c *Catalog) Get(name string) (Activity, bool) {
	if c == nil {
		return Activity{}, false
	}
	i, ok := c.index[name]
	if !ok {
		return Activity{}, false
	}
	return c.activities[i], true
}

// Len returns the number of activities.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.activities)
}

// ParseCatalog decodes the GET /activities payload. Object key order is
// preserved, which encoding/json cannot do for maps.
func ParseCatalog(body []byte) (*Catalog, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrMalformedCatalog)
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: expected an object, got %s", ErrMalformedCatalog, root.Type)
	}

	catalog := NewCatalog()
	var parseErr error
	root.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		if !value.IsObject() {
			parseErr = fmt.Errorf("%w: activity %q is not an object", ErrMalformedCatalog, name)
			return false
		}
		participants := value.Get("participants")
		if !participants.IsArray() {
			parseErr = fmt.Errorf("%w: activity %q has no participants list", ErrMalformedCatalog, name)
			return false
		}

		activity := Activity{
			Name:            name,
			Description:     value.Get("description").String(),
			Schedule:        value.Get("schedule").String(),
			MaxParticipants: int(value.Get("max_participants").Int()),
			Participants:    []string{},
		}
		participants.ForEach(func(_, p gjson.Result) bool {
			activity.Participants = append(activity.Participants, p.String())
			return true
		})
		catalog.put(activity)
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}
	return catalog, nil
}

// SignupResponse is the success body of POST /activities/{name}/signup.
type SignupResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is the upstream's JSON error envelope.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
