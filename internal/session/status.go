// SPDX-License-Identifier: MIT
package session

import (
	"github.com/thatcatcamp/themecycle/internal/styles"
	"github.com/thatcatcamp/themecycle/internal/themes"
)

type StatusKind string

const (
	StatusNone    StatusKind = ""
	StatusSuccess StatusKind = "success"
	StatusError   StatusKind = "error"
)

// Status is the outcome of the last action on one channel.
type Status struct {
	Kind    StatusKind `json:"kind"`
	Message string     `json:"message"`
}

func errorStatus(err error) Status {
	return Status{Kind: StatusError, Message: "Error: " + err.Error()}
}

// Option is one entry of the theme picker.
type Option struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// View is a consistent copy of everything the configurator page shows.
type View struct {
	ActiveKey     string                       `json:"activeKey"`
	ActiveName    string                       `json:"activeName"`
	ColorIndex    int                          `json:"colorIndex"`
	CurrentColor  string                       `json:"currentColor,omitempty"`
	Options       []Option                     `json:"options"`
	Styles        map[string]map[string]string `json:"styles"`
	Inline        map[string]string            `json:"-"`
	CSS           string                       `json:"-"`
	LastGenerated string                       `json:"lastGenerated,omitempty"`
	Selection     Status                       `json:"selection"`
	Generation    Status                       `json:"generation"`
	Repository    Status                       `json:"repository"`
}

// Snapshot copies the session state under the lock.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	key, doc := s.store.Active()
	view := View{
		ActiveKey:     key,
		ActiveName:    doc.DisplayName(key),
		ColorIndex:    s.store.ActiveColorIndex(),
		Styles:        s.page.Snapshot(),
		CSS:           themes.GenerateCSS(s.page),
		LastGenerated: s.lastKey,
		Selection:     s.selection,
		Generation:    s.generation,
		Repository:    s.repository,
	}
	view.Inline = make(map[string]string, len(view.Styles))
	for _, e := range s.page.Elements() {
		view.Inline[e.ID] = e.Inline()
	}
	if color, ok := s.cycle.Current(); ok {
		view.CurrentColor = color
	}
	view.Options = options(s.store.Keys(), s.store.All())
	return view
}

func options(keys []string, docs map[string]*styles.Document) []Option {
	out := make([]Option, 0, len(keys))
	for _, k := range keys {
		out = append(out, Option{Key: k, Label: docs[k].DisplayName(k)})
	}
	return out
}

// RejectGeneration records err as the generation outcome without calling
// the generator, for requests turned away before reaching the session.
func (s *Session) RejectGeneration(err error) {
	s.setStatus(&s.generation, errorStatus(err))
}

// Status returns the last generation and repository statuses.
func (s *Session) Status() (generation, repository Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation, s.repository
}
