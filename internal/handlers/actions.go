// SPDX-License-Identifier: MIT
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/thatcatcamp/themecycle/internal/middleware"
	"github.com/thatcatcamp/themecycle/internal/settings"
	"github.com/thatcatcamp/themecycle/internal/styles"
)

// action performs one user action and returns the JSON payload for API
// callers.
type action func(c *gin.Context) (any, error)

type loadRequest struct {
	Key string `form:"key" json:"key"`
}

type generateRequest struct {
	APIKey string `form:"apiKey" json:"apiKey"`
	Prompt string `form:"prompt" json:"prompt"`
}

type settingsRequest struct {
	Token      string  `form:"token" json:"token"`
	RepoURL    string  `form:"repoUrl" json:"repoUrl"`
	Branch     string  `form:"branch" json:"branch"`
	ConfigPath *string `form:"configPath" json:"configPath"`
}

type settingsResponse struct {
	Token      string `json:"token"`
	HasToken   bool   `json:"hasToken"`
	RepoURL    string `json:"repoUrl"`
	Branch     string `json:"branch"`
	ConfigPath string `json:"configPath"`
}

func (s *Server) form(a action) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := a(c); err != nil {
			s.log.Warn("action failed", map[string]any{"path": c.FullPath(), "error": err.Error()})
		}
		c.Redirect(http.StatusSeeOther, "/")
	}
}

// RateLimitedForm answers a generation form post that was over its rate
// limit: the page shows why and nothing is generated.
func (s *Server) RateLimitedForm(c *gin.Context) {
	s.session.RejectGeneration(middleware.ErrRateLimited)
	c.Redirect(http.StatusSeeOther, "/")
}

func (s *Server) api(a action) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := a(c)
		if err != nil {
			c.JSON(statusFor(err), gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func (s *Server) load(c *gin.Context) (any, error) {
	var req loadRequest
	if err := c.ShouldBind(&req); err != nil {
		return nil, err
	}
	if err := s.session.Load(req.Key); err != nil {
		return nil, err
	}
	return s.session.Snapshot(), nil
}

func (s *Server) advance(c *gin.Context) (any, error) {
	index, ok := s.session.Advance()
	view := s.session.Snapshot()
	return gin.H{"advanced": ok, "index": index, "color": view.CurrentColor}, nil
}

func (s *Server) generate(c *gin.Context) (any, error) {
	var req generateRequest
	if err := c.ShouldBind(&req); err != nil {
		return nil, err
	}
	res, err := s.session.Generate(c.Request.Context(), strings.TrimSpace(req.APIKey), strings.TrimSpace(req.Prompt))
	if err != nil {
		return nil, err
	}
	return gin.H{"key": res.Key, "name": res.Document.Name}, nil
}

func (s *Server) saveSettings(c *gin.Context) (any, error) {
	var req settingsRequest
	if err := c.ShouldBind(&req); err != nil {
		return nil, err
	}
	u := settings.Update{
		Token:   strings.TrimSpace(req.Token),
		RepoURL: strings.TrimSpace(req.RepoURL),
		Branch:  strings.TrimSpace(req.Branch),
	}
	if u.Branch == "" {
		u.Branch = settings.DefaultBranch
	}
	if req.ConfigPath != nil {
		trimmed := strings.TrimSpace(*req.ConfigPath)
		u.ConfigPath = &trimmed
	}
	if err := s.session.SaveSettings(c.Request.Context(), u); err != nil {
		return nil, err
	}
	return s.settings(c)
}

func (s *Server) settings(c *gin.Context) (any, error) {
	cfg, err := s.session.Settings(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return settingsResponse{
		Token:      cfg.MaskedToken(),
		HasToken:   cfg.Token != "",
		RepoURL:    cfg.RepoURL,
		Branch:     cfg.Branch,
		ConfigPath: cfg.ConfigPath,
	}, nil
}

func (s *Server) push(c *gin.Context) (any, error) {
	path, err := s.session.PushLastGenerated(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"path": path}, nil
}

func (s *Server) pull(c *gin.Context) (any, error) {
	fetched, added, err := s.session.Pull(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"fetched": fetched, "added": added}, nil
}

// StateHandler returns the session snapshot.
func (s *Server) StateHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Snapshot())
}

// ConfigsHandler lists the theme picker entries.
func (s *Server) ConfigsHandler(c *gin.Context) {
	c.JSON(http.StatusOK, s.session.Snapshot().Options)
}

// ConfigHandler returns one stored document, selected by ?key=.
func (s *Server) ConfigHandler(c *gin.Context) {
	key := c.Query("key")
	doc, ok := s.session.Document(key)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "configuration not found: " + key})
		return
	}
	data, err := styles.Marshal(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", data)
}

// ThemeCSSHandler serves the active theme as a stylesheet.
func (s *Server) ThemeCSSHandler(c *gin.Context) {
	c.Data(http.StatusOK, "text/css; charset=utf-8", []byte(s.session.Snapshot().CSS))
}
