// SPDX-License-Identifier: MIT

// Package cycle advances the button through its color list.
package cycle

import (
	"github.com/thatcatcamp/themecycle/internal/projector"
	"github.com/thatcatcamp/themecycle/internal/store"
)

// Controller writes the next cycle color onto the button target. It only
// touches the button's color channel and never re-runs a full projection.
type Controller struct {
	store  *store.Store
	button projector.Target
}

// New creates a controller for the store's active document.
func New(s *store.Store, button projector.Target) *Controller {
	return &Controller{store: s, button: button}
}

// Advance moves to the next color. It returns the new index and false
// when there is nothing to cycle.
func (c *Controller) Advance() (int, bool) {
	_, doc := c.store.Active()
	if doc == nil || doc.Styles.Button == nil || len(doc.Styles.Button.Colors) == 0 {
		return c.store.ActiveColorIndex(), false
	}
	button := doc.Styles.Button

	next := mod(c.store.ActiveColorIndex()+1, len(button.Colors))
	c.store.SetActiveColorIndex(next)
	if c.button != nil {
		c.button.SetStyle(button.ResolvedColorProperty(), button.Colors[next])
	}
	return next, true
}

// Current returns the color at the active index, if any.
func (c *Controller) Current() (string, bool) {
	_, doc := c.store.Active()
	if doc == nil || doc.Styles.Button == nil || len(doc.Styles.Button.Colors) == 0 {
		return "", false
	}
	colors := doc.Styles.Button.Colors
	return colors[mod(c.store.ActiveColorIndex(), len(colors))], true
}

// mod keeps the index in range even if the store was handed an
// out-of-range value.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
