// SPDX-License-Identifier: MIT

// Package session owns one configurator session: the document store, the
// page it styles, and the collaborators used for generation and sync.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/thatcatcamp/themecycle/internal/cycle"
	"github.com/thatcatcamp/themecycle/internal/generator"
	"github.com/thatcatcamp/themecycle/internal/github"
	"github.com/thatcatcamp/themecycle/internal/logger"
	"github.com/thatcatcamp/themecycle/internal/page"
	"github.com/thatcatcamp/themecycle/internal/projector"
	"github.com/thatcatcamp/themecycle/internal/settings"
	"github.com/thatcatcamp/themecycle/internal/store"
	"github.com/thatcatcamp/themecycle/internal/styles"
	"github.com/thatcatcamp/themecycle/internal/themes"
)

var (
	ErrNothingToPush  = errors.New("no generated config to push, generate a theme first")
	ErrMissingSetting = errors.New("missing setting")
	ErrMissingInput   = errors.New("missing input")
	ErrUnavailable    = errors.New("collaborator not configured")
)

// Generator produces validated documents from a description.
type Generator interface {
	Generate(ctx context.Context, apiKey, description string) (*generator.Result, error)
}

// Publisher writes a document to a repository.
type Publisher interface {
	Push(ctx context.Context, token string, repo github.Repo, path string, doc *styles.Document, branch string) error
}

// Source lists documents in a repository directory.
type Source interface {
	Pull(ctx context.Context, repo github.Repo, dir, branch string) ([]github.Entry, error)
}

// SettingsStore persists repository settings.
type SettingsStore interface {
	Get(ctx context.Context) (settings.GitHub, error)
	Save(ctx context.Context, u settings.Update) error
}

// Options wires a Session. Seed defaults to the built-in themes.
type Options struct {
	Seed       map[string]*styles.Document
	SeedOrder  []string
	DefaultKey string

	Generator Generator
	Publisher Publisher
	Source    Source
	Settings  SettingsStore

	Logger *logger.Logger
	Now    func() time.Time
}

// Session is safe for concurrent use. Store mutations are serialised;
// remote calls run without holding the lock.
type Session struct {
	mu        sync.Mutex
	page      *page.Page
	projector *projector.Projector
	store     *store.Store
	cycle     *cycle.Controller

	generator Generator
	publisher Publisher
	source    Source
	settings  SettingsStore

	lastKey string
	lastDoc *styles.Document

	selection  Status
	generation Status
	repository Status

	log *logger.Logger
	now func() time.Time
}

// New builds a session and loads the default document.
func New(opts Options) (*Session, error) {
	if opts.Seed == nil {
		opts.Seed = themes.Builtin()
		opts.SeedOrder = themes.BuiltinKeys()
	}
	if opts.DefaultKey == "" {
		opts.DefaultKey = themes.DefaultKey
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	p := page.New()
	proj := projector.New(projector.Targets{
		Body:            p.Body,
		Heading:         p.Heading,
		Button:          p.Button,
		Selector:        p.Selector,
		SelectorLabel:   p.SelectorLabel,
		SelectorControl: p.SelectorControl,
		GeneratorPanel:  p.Generator,
	})
	st := store.New(opts.Seed, opts.SeedOrder, proj)

	s := &Session{
		page:      p,
		projector: proj,
		store:     st,
		cycle:     cycle.New(st, p.Button),
		generator: opts.Generator,
		publisher: opts.Publisher,
		source:    opts.Source,
		settings:  opts.Settings,
		log:       opts.Logger.With(map[string]any{"component": "session"}),
		now:       opts.Now,
	}

	if st.Len() > 0 {
		if err := st.Load(opts.DefaultKey); err != nil {
			return nil, fmt.Errorf("load default theme: %w", err)
		}
	}
	return s, nil
}

// Load makes key the active document.
func (s *Session) Load(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Load(key); err != nil {
		s.log.Warn("load failed", map[string]any{"key": key})
		s.selection = errorStatus(err)
		return err
	}
	s.selection = Status{}
	s.log.Debug("theme loaded", map[string]any{"key": key})
	return nil
}

// Advance moves the button to its next cycle color.
func (s *Session) Advance() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cycle.Advance()
}

// Generate asks the generator for a document, stores it under a new key,
// loads it and remembers it for PushLastGenerated.
func (s *Session) Generate(ctx context.Context, apiKey, description string) (*generator.Result, error) {
	res, err := s.generate(ctx, apiKey, description)
	if err != nil {
		s.setStatus(&s.generation, errorStatus(err))
		return nil, err
	}
	s.setStatus(&s.generation, Status{
		Kind:    StatusSuccess,
		Message: fmt.Sprintf("Theme %q generated successfully! You can push it to GitHub if you like it.", res.Document.Name),
	})
	return res, nil
}

func (s *Session) generate(ctx context.Context, apiKey, description string) (*generator.Result, error) {
	switch {
	case apiKey == "":
		return nil, fmt.Errorf("%w: please enter your Gemini API key", ErrMissingInput)
	case description == "":
		return nil, fmt.Errorf("%w: please enter a theme description", ErrMissingInput)
	case s.generator == nil:
		return nil, fmt.Errorf("%w: generator", ErrUnavailable)
	}

	res, err := s.generator.Generate(ctx, apiKey, description)
	if err != nil {
		s.log.Error(err, "generation failed")
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.store.Add(res.Key, res.Document)
	if err := s.store.Load(res.Key); err != nil {
		return nil, err
	}
	s.lastKey, s.lastDoc = res.Key, res.Document
	return res, nil
}

// PushLastGenerated pushes the most recently generated document using the
// saved settings and returns the repository path it was written to.
func (s *Session) PushLastGenerated(ctx context.Context) (string, error) {
	target, err := s.pushLastGenerated(ctx)
	if err != nil {
		s.setStatus(&s.repository, errorStatus(err))
		return "", err
	}
	s.setStatus(&s.repository, Status{Kind: StatusSuccess, Message: "Config pushed to GitHub successfully!"})
	return target, nil
}

func (s *Session) pushLastGenerated(ctx context.Context) (string, error) {
	s.mu.Lock()
	doc := s.lastDoc.Clone()
	s.mu.Unlock()

	if doc == nil {
		return "", ErrNothingToPush
	}
	if s.publisher == nil {
		return "", fmt.Errorf("%w: publisher", ErrUnavailable)
	}

	cfg, repo, err := s.repositorySettings(ctx)
	if err != nil {
		return "", err
	}
	if cfg.Token == "" {
		return "", fmt.Errorf("%w: GitHub token is required, configure it in GitHub settings", ErrMissingSetting)
	}

	target := github.PushPath(cfg.ConfigPath, github.FilenameFor(doc, s.now()))
	if err := s.publisher.Push(ctx, cfg.Token, repo, target, doc, cfg.Branch); err != nil {
		s.log.Error(err, "push failed", map[string]any{"path": target})
		return "", err
	}
	return target, nil
}

// Pull fetches documents from the configured repository and adds those
// whose key is unknown. It returns how many were fetched and added.
func (s *Session) Pull(ctx context.Context) (fetched, added int, err error) {
	fetched, added, err = s.pull(ctx)
	if err != nil {
		s.setStatus(&s.repository, errorStatus(err))
		return 0, 0, err
	}
	s.setStatus(&s.repository, Status{Kind: StatusSuccess, Message: fmt.Sprintf("Loaded %d config(s) from GitHub", fetched)})
	return fetched, added, nil
}

func (s *Session) pull(ctx context.Context) (int, int, error) {
	if s.source == nil {
		return 0, 0, fmt.Errorf("%w: source", ErrUnavailable)
	}
	cfg, repo, err := s.repositorySettings(ctx)
	if err != nil {
		return 0, 0, err
	}

	entries, err := s.source.Pull(ctx, repo, cfg.ConfigPath, cfg.Branch)
	if err != nil {
		s.log.Error(err, "pull failed", map[string]any{"repo": repo.String()})
		return 0, 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for _, e := range entries {
		if s.store.AddIfAbsent(e.Key, e.Document) {
			added++
		}
	}
	return len(entries), added, nil
}

func (s *Session) repositorySettings(ctx context.Context) (settings.GitHub, github.Repo, error) {
	if s.settings == nil {
		return settings.GitHub{}, github.Repo{}, fmt.Errorf("%w: settings", ErrUnavailable)
	}
	cfg, err := s.settings.Get(ctx)
	if err != nil {
		return settings.GitHub{}, github.Repo{}, err
	}
	if cfg.RepoURL == "" {
		return cfg, github.Repo{}, fmt.Errorf("%w: GitHub repository URL is required, configure it in GitHub settings", ErrMissingSetting)
	}
	repo, ok := github.ParseRepoURL(cfg.RepoURL)
	if !ok {
		return cfg, github.Repo{}, github.ErrInvalidRepoURL
	}
	return cfg, repo, nil
}

// SaveSettings persists u.
func (s *Session) SaveSettings(ctx context.Context, u settings.Update) error {
	if s.settings == nil {
		err := fmt.Errorf("%w: settings", ErrUnavailable)
		s.setStatus(&s.repository, errorStatus(err))
		return err
	}
	if err := s.settings.Save(ctx, u); err != nil {
		s.setStatus(&s.repository, errorStatus(err))
		return err
	}
	s.setStatus(&s.repository, Status{Kind: StatusSuccess, Message: "Settings saved!"})
	return nil
}

// Settings returns the saved repository settings.
func (s *Session) Settings(ctx context.Context) (settings.GitHub, error) {
	if s.settings == nil {
		return settings.GitHub{Branch: settings.DefaultBranch}, nil
	}
	return s.settings.Get(ctx)
}

// Document returns a copy of the document stored under key.
func (s *Session) Document(key string) (*styles.Document, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.store.Get(key)
	return doc.Clone(), ok
}

func (s *Session) setStatus(dst *Status, st Status) {
	s.mu.Lock()
	*dst = st
	s.mu.Unlock()
}
