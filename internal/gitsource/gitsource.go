// SPDX-License-Identifier: MIT

// Package gitsource pulls style documents by cloning a repository into
// memory, for hosts that do not offer the GitHub contents API.
package gitsource

import (
	"context"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/storage/memory"

	"github.com/thatcatcamp/themecycle/internal/github"
	"github.com/thatcatcamp/themecycle/internal/logger"
	"github.com/thatcatcamp/themecycle/internal/remote"
	"github.com/thatcatcamp/themecycle/internal/styles"
)

const serviceName = "git"

// Source clones repositories below BaseURL.
type Source struct {
	base string
	log  *logger.Logger
}

// New returns a Source. baseURL is joined with "owner/name" to form the
// clone URL, e.g. "https://github.com" or a local directory.
func New(baseURL string, log *logger.Logger) *Source {
	return &Source{
		base: strings.TrimRight(baseURL, "/"),
		log:  log.With(map[string]any{"component": "gitsource"}),
	}
}

// CloneURL is the URL Pull clones for repo.
func (s *Source) CloneURL(repo github.Repo) string {
	return s.base + "/" + repo.Owner + "/" + repo.Name
}

// Pull clones branch and returns the JSON documents directly inside dir.
// Clone failures are fatal; unreadable files are skipped.
func (s *Source) Pull(ctx context.Context, repo github.Repo, dir, branch string) ([]github.Entry, error) {
	fs := memfs.New()
	opts := &git.CloneOptions{
		URL:          s.CloneURL(repo),
		SingleBranch: true,
	}
	if branch != "" {
		opts.ReferenceName = plumbing.NewBranchReferenceName(branch)
	}
	if _, err := git.CloneContext(ctx, memory.NewStorage(), fs, opts); err != nil {
		return nil, remote.NetworkError(serviceName, fmt.Errorf("clone %s: %w", repo, err))
	}

	listDir := "/"
	if dir != "" {
		listDir = path.Clean("/" + dir)
	}
	infos, err := fs.ReadDir(listDir)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", listDir, err)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name() < infos[j].Name() })

	entries := make([]github.Entry, 0, len(infos))
	for _, info := range infos {
		if info.IsDir() || !strings.HasSuffix(info.Name(), ".json") {
			continue
		}
		doc, err := readDocument(fs, path.Join(listDir, info.Name()))
		if err != nil {
			s.log.Warn("skipping config", map[string]any{"name": info.Name(), "error": err.Error()})
			continue
		}
		entries = append(entries, github.Entry{Key: github.EntryKey(dir, info.Name()), Document: doc})
	}
	s.log.Info("configs cloned", map[string]any{"repo": repo.String(), "count": len(entries)})
	return entries, nil
}

func readDocument(fs billy.Filesystem, name string) (*styles.Document, error) {
	f, err := fs.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return styles.Parse(data)
}
