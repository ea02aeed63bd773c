// SPDX-License-Identifier: MIT
package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thatcatcamp/themecycle/internal/db"
	"github.com/thatcatcamp/themecycle/internal/generator"
	"github.com/thatcatcamp/themecycle/internal/github"
	"github.com/thatcatcamp/themecycle/internal/remote"
	"github.com/thatcatcamp/themecycle/internal/settings"
	"github.com/thatcatcamp/themecycle/internal/store"
	"github.com/thatcatcamp/themecycle/internal/styles"
)

type fakeGenerator struct {
	namer generator.Namer
	doc   *styles.Document
	err   error
}

func (f *fakeGenerator) Generate(_ context.Context, _, _ string) (*generator.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	_, key, name := f.namer.Next()
	doc := f.doc.Clone()
	if doc.Name == "" {
		doc.Name = name
	}
	return &generator.Result{Key: key, Document: doc}, nil
}

type pushCall struct {
	token, path, branch string
	repo                github.Repo
	doc                 *styles.Document
}

type fakeRepo struct {
	mu      sync.Mutex
	pushes  []pushCall
	pushErr error
	entries []github.Entry
	pullErr error
	pulled  []string
}

func (f *fakeRepo) Push(_ context.Context, token string, repo github.Repo, path string, doc *styles.Document, branch string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushes = append(f.pushes, pushCall{token: token, path: path, branch: branch, repo: repo, doc: doc})
	return f.pushErr
}

func (f *fakeRepo) Pull(_ context.Context, repo github.Repo, dir, branch string) ([]github.Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pulled = append(f.pulled, repo.String()+"|"+dir+"|"+branch)
	return f.entries, f.pullErr
}

func buttonDoc(name string, colors ...string) *styles.Document {
	return &styles.Document{
		Name: name,
		Styles: styles.Styles{
			Body:   &styles.Block{Properties: map[string]string{"backgroundColor": "#111"}},
			Button: &styles.Block{Colors: colors, ColorProperty: "color"},
		},
	}
}

func newSettings(t *testing.T) *settings.Store {
	t.Helper()
	conn, err := db.Open("sqlite", ":memory:")
	require.NoError(t, err)
	return settings.New(conn)
}

func newSession(t *testing.T, opts Options) *Session {
	t.Helper()
	s, err := New(opts)
	require.NoError(t, err)
	return s
}

func TestNewLoadsDefaultBuiltin(t *testing.T) {
	s := newSession(t, Options{})

	view := s.Snapshot()
	assert.Equal(t, "configs/config1.json", view.ActiveKey)
	assert.Equal(t, "Default Theme", view.ActiveName)
	assert.Equal(t, []Option{
		{Key: "configs/config1.json", Label: "Default Theme"},
		{Key: "configs/config2.json", Label: "Dark Theme"},
		{Key: "configs/config3.json", Label: "Colorful Theme"},
	}, view.Options)
	assert.Equal(t, "#f0f0f0", view.Styles["body"]["backgroundColor"])
	assert.Equal(t, "#4CAF50", view.Styles["colorButton"]["backgroundColor"])
	assert.Contains(t, view.CSS, "#colorButton")
}

func TestNewUnknownDefaultKey(t *testing.T) {
	_, err := New(Options{DefaultKey: "nope.json"})
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestLoadAndAdvanceScenario(t *testing.T) {
	s := newSession(t, Options{
		Seed:       map[string]*styles.Document{"a.json": buttonDoc("A", "#a", "#b", "#c")},
		DefaultKey: "a.json",
	})

	view := s.Snapshot()
	assert.Equal(t, 0, view.ColorIndex)
	assert.NotContains(t, view.Styles["colorButton"], "color")

	idx, ok := s.Advance()
	require.True(t, ok)
	assert.Equal(t, 1, idx)
	assert.Equal(t, "#b", s.Snapshot().Styles["colorButton"]["color"])

	s.Advance()
	idx, _ = s.Advance()
	assert.Equal(t, 0, idx)
	assert.Equal(t, "#a", s.Snapshot().Styles["colorButton"]["color"])
}

func TestLoadUnknownKeepsActive(t *testing.T) {
	s := newSession(t, Options{})
	s.Advance()

	err := s.Load("missing.json")
	require.ErrorIs(t, err, store.ErrNotFound)

	view := s.Snapshot()
	assert.Equal(t, "configs/config1.json", view.ActiveKey)
	assert.Equal(t, 1, view.ColorIndex)
}

func TestLoadUnknownReportsStatus(t *testing.T) {
	s := newSession(t, Options{})

	require.Error(t, s.Load("missing.json"))
	got := s.Snapshot().Selection
	assert.Equal(t, StatusError, got.Kind)
	assert.Equal(t, "Error: configuration not found: missing.json", got.Message)

	require.NoError(t, s.Load("configs/config2.json"))
	assert.Equal(t, Status{}, s.Snapshot().Selection)
}

func TestRejectGenerationSetsStatus(t *testing.T) {
	s := newSession(t, Options{})

	s.RejectGeneration(errors.New("too many generation requests"))
	gen, _ := s.Status()
	assert.Equal(t, Status{Kind: StatusError, Message: "Error: too many generation requests"}, gen)
	assert.Len(t, s.Snapshot().Options, 3)
}

func TestGenerateAddsLoadsAndRemembers(t *testing.T) {
	gen := &fakeGenerator{doc: buttonDoc("", "#1", "#2")}
	s := newSession(t, Options{Generator: gen})

	res, err := s.Generate(context.Background(), "key", "forest")
	require.NoError(t, err)
	assert.Equal(t, "generated_1.json", res.Key)

	view := s.Snapshot()
	assert.Equal(t, "generated_1.json", view.ActiveKey)
	assert.Equal(t, "AI Generated Theme 1", view.ActiveName)
	assert.Equal(t, "generated_1.json", view.LastGenerated)
	assert.Len(t, view.Options, 4)
	assert.Equal(t, StatusSuccess, view.Generation.Kind)
	assert.Contains(t, view.Generation.Message, `"AI Generated Theme 1"`)
}

func TestGenerateFailureInsertsNothing(t *testing.T) {
	gen := &fakeGenerator{err: generator.ErrSchema}
	s := newSession(t, Options{Generator: gen})

	_, err := s.Generate(context.Background(), "key", "forest")
	require.ErrorIs(t, err, generator.ErrSchema)

	view := s.Snapshot()
	assert.Len(t, view.Options, 3)
	assert.Equal(t, "configs/config1.json", view.ActiveKey)
	assert.Empty(t, view.LastGenerated)
	assert.Equal(t, StatusError, view.Generation.Kind)
	assert.Contains(t, view.Generation.Message, "Error: ")
}

func TestGenerateRequiresInput(t *testing.T) {
	s := newSession(t, Options{Generator: &fakeGenerator{doc: buttonDoc("X")}})

	_, err := s.Generate(context.Background(), "", "forest")
	require.ErrorIs(t, err, ErrMissingInput)
	_, err = s.Generate(context.Background(), "key", "")
	require.ErrorIs(t, err, ErrMissingInput)
}

func TestPushLastGenerated(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	set := newSettings(t)
	configs := "themes"
	require.NoError(t, set.Save(ctx, settings.Update{Token: "tok", RepoURL: "https://github.com/acme/themes.git", Branch: "dev", ConfigPath: &configs}))

	s := newSession(t, Options{
		Generator: &fakeGenerator{doc: buttonDoc("Misty Forest", "#1")},
		Publisher: repo,
		Settings:  set,
	})
	_, err := s.Generate(ctx, "key", "forest")
	require.NoError(t, err)

	path, err := s.PushLastGenerated(ctx)
	require.NoError(t, err)
	assert.Equal(t, "themes/misty-forest.json", path)

	require.Len(t, repo.pushes, 1)
	call := repo.pushes[0]
	assert.Equal(t, "tok", call.token)
	assert.Equal(t, "dev", call.branch)
	assert.Equal(t, github.Repo{Owner: "acme", Name: "themes"}, call.repo)
	assert.Equal(t, "Misty Forest", call.doc.Name)

	_, repoStatus := s.Status()
	assert.Equal(t, Status{Kind: StatusSuccess, Message: "Config pushed to GitHub successfully!"}, repoStatus)
}

func TestPushUsesFallbackNameForFilename(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{}
	set := newSettings(t)
	require.NoError(t, set.Save(ctx, settings.Update{Token: "tok", RepoURL: "acme/themes"}))

	s := newSession(t, Options{
		Generator: &fakeGenerator{doc: buttonDoc("", "#1")},
		Publisher: repo,
		Settings:  set,
	})
	_, err := s.Generate(ctx, "key", "x")
	require.NoError(t, err)

	path, err := s.PushLastGenerated(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ai-generated-theme-1.json", path)
	assert.Equal(t, "main", repo.pushes[0].branch)
}

func TestPushPreconditions(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name     string
		update   *settings.Update
		generate bool
		want     error
	}{
		{name: "nothing generated", update: &settings.Update{Token: "t", RepoURL: "a/b"}, want: ErrNothingToPush},
		{name: "no token", update: &settings.Update{RepoURL: "a/b"}, generate: true, want: ErrMissingSetting},
		{name: "no repo", update: &settings.Update{Token: "t"}, generate: true, want: ErrMissingSetting},
		{name: "bad repo", update: &settings.Update{Token: "t", RepoURL: "not a repo"}, generate: true, want: github.ErrInvalidRepoURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRepo{}
			set := newSettings(t)
			require.NoError(t, set.Save(ctx, *tt.update))
			s := newSession(t, Options{Generator: &fakeGenerator{doc: buttonDoc("X")}, Publisher: repo, Settings: set})
			if tt.generate {
				_, err := s.Generate(ctx, "k", "d")
				require.NoError(t, err)
			}

			_, err := s.PushLastGenerated(ctx)
			require.ErrorIs(t, err, tt.want)
			assert.Empty(t, repo.pushes)

			_, repoStatus := s.Status()
			assert.Equal(t, StatusError, repoStatus.Kind)
		})
	}
}

func TestPushTransportErrorSurfacesRemoteMessage(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{pushErr: &remote.TransportError{Service: "GitHub", StatusCode: 401, Message: "Bad credentials"}}
	set := newSettings(t)
	require.NoError(t, set.Save(ctx, settings.Update{Token: "t", RepoURL: "a/b"}))

	s := newSession(t, Options{Generator: &fakeGenerator{doc: buttonDoc("X")}, Publisher: repo, Settings: set})
	_, err := s.Generate(ctx, "k", "d")
	require.NoError(t, err)

	_, err = s.PushLastGenerated(ctx)
	require.ErrorIs(t, err, remote.ErrTransport)

	_, repoStatus := s.Status()
	assert.Equal(t, "Error: Bad credentials", repoStatus.Message)
}

func TestPullAddsOnlyNewKeys(t *testing.T) {
	ctx := context.Background()
	local := buttonDoc("Local", "#1")
	repo := &fakeRepo{entries: []github.Entry{
		{Key: "configs/config1.json", Document: buttonDoc("Remote Default")},
		{Key: "configs/ocean.json", Document: buttonDoc("Ocean")},
		{Key: "configs/forest.json", Document: buttonDoc("Forest")},
	}}
	set := newSettings(t)
	require.NoError(t, set.Save(ctx, settings.Update{RepoURL: "acme/themes", Branch: "dev"}))

	s := newSession(t, Options{
		Seed:       map[string]*styles.Document{"configs/config1.json": local},
		DefaultKey: "configs/config1.json",
		Source:     repo,
		Settings:   set,
	})

	fetched, added, err := s.Pull(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, fetched)
	assert.Equal(t, 2, added)
	assert.Equal(t, []string{"acme/themes||dev"}, repo.pulled)

	doc, ok := s.Document("configs/config1.json")
	require.True(t, ok)
	assert.Equal(t, "Local", doc.Name)

	view := s.Snapshot()
	assert.Equal(t, "configs/config1.json", view.ActiveKey)
	assert.Equal(t, []Option{
		{Key: "configs/config1.json", Label: "Local"},
		{Key: "configs/ocean.json", Label: "Ocean"},
		{Key: "configs/forest.json", Label: "Forest"},
	}, view.Options)
	assert.Equal(t, "Loaded 3 config(s) from GitHub", view.Repository.Message)
}

func TestPullFailureLeavesStore(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{pullErr: errors.New("boom")}
	set := newSettings(t)
	require.NoError(t, set.Save(ctx, settings.Update{RepoURL: "acme/themes"}))

	s := newSession(t, Options{Source: repo, Settings: set})
	_, _, err := s.Pull(ctx)
	require.Error(t, err)
	assert.Len(t, s.Snapshot().Options, 3)
}

func TestSaveAndReadSettings(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Options{Settings: newSettings(t)})

	path := "configs"
	require.NoError(t, s.SaveSettings(ctx, settings.Update{Token: "t", RepoURL: "acme/themes", ConfigPath: &path}))

	got, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, settings.GitHub{Token: "t", RepoURL: "acme/themes", Branch: "main", ConfigPath: "configs"}, got)

	_, repoStatus := s.Status()
	assert.Equal(t, "Settings saved!", repoStatus.Message)
}

func TestUnconfiguredCollaborators(t *testing.T) {
	ctx := context.Background()
	s := newSession(t, Options{})

	_, err := s.Generate(ctx, "k", "d")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, _, err = s.Pull(ctx)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.ErrorIs(t, s.SaveSettings(ctx, settings.Update{}), ErrUnavailable)
	_, repo := s.Status()
	assert.Equal(t, StatusError, repo.Kind)
	assert.Contains(t, repo.Message, "collaborator not configured: settings")

	got, err := s.Settings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "main", got.Branch)
}

func TestConcurrentActions(t *testing.T) {
	s := newSession(t, Options{Generator: &fakeGenerator{doc: buttonDoc("", "#1", "#2")}})

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(3)
		go func() { defer wg.Done(); s.Advance() }()
		go func() { defer wg.Done(); _ = s.Load("configs/config2.json") }()
		go func() { defer wg.Done(); _, _ = s.Generate(context.Background(), "k", "d") }()
	}
	wg.Wait()

	assert.Len(t, s.Snapshot().Options, 3+8)
}
