// SPDX-License-Identifier: MIT

// Package github pushes style documents to, and pulls them from, a GitHub
// repository through the REST contents API.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"github.com/thatcatcamp/themecycle/internal/logger"
	"github.com/thatcatcamp/themecycle/internal/remote"
	"github.com/thatcatcamp/themecycle/internal/styles"
)

const (
	DefaultAPIBase = "https://api.github.com"
	DefaultTimeout = 30 * time.Second

	serviceName = "GitHub"
	acceptV3    = "application/vnd.github.v3+json"
)

// ErrInvalidRepoURL is returned when a repository reference cannot be parsed.
var ErrInvalidRepoURL = errors.New("invalid GitHub repository URL format")

// TransportError is returned for network failures and non-2xx responses.
type TransportError = remote.TransportError

// Repo identifies a repository.
type Repo struct {
	Owner string
	Name  string
}

func (r Repo) String() string { return r.Owner + "/" + r.Name }

// Entry is one document pulled from a repository.
type Entry struct {
	Key      string
	Document *styles.Document
}

// Options configures a Client.
type Options struct {
	APIBase    string
	Timeout    time.Duration
	HTTPClient *http.Client
	Logger     *logger.Logger
}

// Client talks to the GitHub contents API.
type Client struct {
	base string
	http *http.Client
	log  *logger.Logger
}

func New(opts Options) *Client {
	if opts.APIBase == "" {
		opts.APIBase = DefaultAPIBase
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		base: strings.TrimRight(opts.APIBase, "/"),
		http: hc,
		log:  opts.Logger.With(map[string]any{"component": "github"}),
	}
}

type fileInfo struct {
	SHA string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	Branch  string `json:"branch"`
	SHA     string `json:"sha,omitempty"`
}

type listItem struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	DownloadURL string `json:"download_url"`
}

// Push creates or updates filePath on branch with doc. An existing file is
// detected by probing for its sha; a failed probe means "create".
func (c *Client) Push(ctx context.Context, token string, repo Repo, filePath string, doc *styles.Document, branch string) error {
	target := filePath
	if !strings.HasSuffix(target, ".json") {
		target += ".json"
	}
	endpoint := c.contentsURL(repo, target)

	sha := c.probeSHA(ctx, token, endpoint, branch)

	data, err := styles.Marshal(doc)
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}
	message := doc.Name
	if message == "" {
		message = filePath
	}
	body, err := json.Marshal(putRequest{
		Message: "Add/Update theme config: " + message,
		Content: base64.StdEncoding.EncodeToString(data),
		Branch:  branch,
		SHA:     sha,
	})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	authorize(req, token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return remote.NetworkError(serviceName, err)
	}
	defer resp.Body.Close()

	if !remote.IsSuccess(resp.StatusCode) {
		return remote.StatusError(serviceName, resp, topLevelMessage)
	}
	c.log.Info("config pushed", map[string]any{"repo": repo.String(), "path": target, "branch": branch, "update": sha != ""})
	return nil
}

func (c *Client) probeSHA(ctx context.Context, token, endpoint, branch string) string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?ref="+url.QueryEscape(branch), nil)
	if err != nil {
		return ""
	}
	authorize(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("sha probe failed, creating file", map[string]any{"error": err.Error()})
		return ""
	}
	defer resp.Body.Close()
	if !remote.IsSuccess(resp.StatusCode) {
		return ""
	}
	var info fileInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return ""
	}
	return info.SHA
}

// Pull lists dir on branch and returns every JSON file that parses as a
// document. A listing failure is fatal; a failure on one file skips it.
func (c *Client) Pull(ctx context.Context, repo Repo, dir, branch string) ([]Entry, error) {
	apiPath := ""
	if dir != "" {
		apiPath = dir + "/"
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.contentsURL(repo, apiPath)+"?ref="+url.QueryEscape(branch), nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", acceptV3)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, remote.NetworkError(serviceName, err)
	}
	defer resp.Body.Close()
	if !remote.IsSuccess(resp.StatusCode) {
		terr := remote.StatusError(serviceName, resp, topLevelMessage)
		terr.Message = "Failed to fetch repository contents: " + http.StatusText(resp.StatusCode)
		return nil, terr
	}

	var items []listItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode listing: %w", err)
	}

	entries := make([]Entry, 0, len(items))
	for _, item := range items {
		if item.Type != "file" || !strings.HasSuffix(item.Name, ".json") {
			continue
		}
		doc, err := c.download(ctx, item.DownloadURL)
		if err != nil {
			c.log.Warn("skipping config", map[string]any{"name": item.Name, "error": err.Error()})
			continue
		}
		entries = append(entries, Entry{Key: EntryKey(dir, item.Name), Document: doc})
	}
	c.log.Info("configs pulled", map[string]any{"repo": repo.String(), "count": len(entries)})
	return entries, nil
}

func (c *Client) download(ctx context.Context, rawURL string) (*styles.Document, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if !remote.IsSuccess(resp.StatusCode) {
		return nil, fmt.Errorf("download returned %d", resp.StatusCode)
	}
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(resp.Body); err != nil {
		return nil, err
	}
	return styles.Parse(buf.Bytes())
}

func (c *Client) contentsURL(repo Repo, p string) string {
	return fmt.Sprintf("%s/repos/%s/%s/contents/%s", c.base, repo.Owner, repo.Name, p)
}

func authorize(req *http.Request, token string) {
	req.Header.Set("Authorization", "token "+token)
	req.Header.Set("Accept", acceptV3)
}

func topLevelMessage(body map[string]any) string {
	msg, _ := body["message"].(string)
	return msg
}

// EntryKey is the store key for a file pulled from dir.
func EntryKey(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

var (
	repoURLPattern   = regexp.MustCompile(`github\.com/([^/]+)/([^/]+)(?:\.git)?(?:/.*)?$`)
	repoShortPattern = regexp.MustCompile(`^([^/]+)/([^/]+)$`)
)

// ParseRepoURL accepts "https://github.com/owner/name(.git)(/...)" or
// "owner/name".
func ParseRepoURL(s string) (Repo, bool) {
	s = strings.TrimSpace(s)
	for _, re := range []*regexp.Regexp{repoURLPattern, repoShortPattern} {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		return Repo{Owner: m[1], Name: strings.Replace(m[2], ".git", "", 1)}, true
	}
	return Repo{}, false
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// FilenameFor names the file a document is pushed as.
func FilenameFor(doc *styles.Document, now time.Time) string {
	if doc != nil && doc.Name != "" {
		return slugPattern.ReplaceAllString(strings.ToLower(doc.Name), "-") + ".json"
	}
	return fmt.Sprintf("generated-%d.json", now.UnixMilli())
}

// PushPath joins an optional configured directory with a filename.
func PushPath(dir, filename string) string {
	if dir == "" {
		return filename
	}
	return path.Join(dir, filename)
}
