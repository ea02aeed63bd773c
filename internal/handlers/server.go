// SPDX-License-Identifier: MIT
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/thatcatcamp/themecycle/internal/logger"
	"github.com/thatcatcamp/themecycle/internal/session"
)

// Server serves the configurator page and its JSON API for one session.
type Server struct {
	session *session.Session
	log     *logger.Logger
}

func New(sess *session.Session, log *logger.Logger) *Server {
	return &Server{
		session: sess,
		log:     log.With(map[string]any{"component": "http"}),
	}
}

// RegisterPages mounts the HTML page, the stylesheet and the form actions.
// Form actions redirect back to the page.
func (s *Server) RegisterPages(r gin.IRoutes) {
	r.GET("/", s.PageHandler)
	r.GET("/theme.css", s.ThemeCSSHandler)

	r.POST("/load", s.form(s.load))
	r.POST("/advance", s.form(s.advance))
	r.POST("/generate", s.form(s.generate))
	r.POST("/github/settings", s.form(s.saveSettings))
	r.POST("/github/push", s.form(s.push))
	r.POST("/github/pull", s.form(s.pull))
}

// RegisterAPI mounts the JSON API.
func (s *Server) RegisterAPI(r gin.IRoutes) {
	r.GET("/state", s.StateHandler)
	r.GET("/configs", s.ConfigsHandler)
	r.GET("/config", s.ConfigHandler)
	r.GET("/github/settings", s.api(s.settings))

	r.POST("/load", s.api(s.load))
	r.POST("/advance", s.api(s.advance))
	r.POST("/generate", s.api(s.generate))
	r.POST("/github/settings", s.api(s.saveSettings))
	r.POST("/github/push", s.api(s.push))
	r.POST("/github/pull", s.api(s.pull))
}
