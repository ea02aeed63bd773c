// SPDX-License-Identifier: MIT
package handlers

import (
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"

	"github.com/thatcatcamp/themecycle/internal/middleware"
	"github.com/thatcatcamp/themecycle/internal/page"
	"github.com/thatcatcamp/themecycle/internal/session"
)

// Document names come from generated and pulled files; strip any markup.
var textPolicy = bluemonday.StrictPolicy()

// PageHandler renders the configurator with the active theme applied as
// inline styles.
func (s *Server) PageHandler(c *gin.Context) {
	view := s.session.Snapshot()
	cfg, err := s.session.Settings(c.Request.Context())
	if err != nil {
		s.log.Error(err, "load settings failed")
	}
	csrfToken := middleware.GetCSRFTokenHTML(c)

	style := func(id string) string {
		if inline := view.Inline[id]; inline != "" {
			return ` style="` + html.EscapeString(inline) + `"`
		}
		return ""
	}

	var options strings.Builder
	for _, opt := range view.Options {
		selected := ""
		if opt.Key == view.ActiveKey {
			selected = " selected"
		}
		options.WriteString(`<option value="` + html.EscapeString(opt.Key) + `"` + selected + `>` + textPolicy.Sanitize(opt.Label) + `</option>`)
	}

	pushForm := ""
	if view.LastGenerated != "" {
		pushForm = `
            <form method="POST" action="/github/push" class="inline">` + csrfToken + `
                <button type="submit">Push last generated theme</button>
            </form>`
	}

	tokenPlaceholder := "GitHub personal access token"
	if cfg.Token != "" {
		tokenPlaceholder = "Saved (" + cfg.MaskedToken() + "), leave empty to keep"
	}

	body := `<!DOCTYPE html>
<html>
<head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>Theme Configurator</title>
    <style>` + GetDesignSystemCSS() + `</style>
</head>
<body id="` + page.IDBody + `"` + style(page.IDBody) + `>
    <h1 id="` + page.IDHeading + `"` + style(page.IDHeading) + `>Theme Configurator</h1>

    <div id="` + page.IDSelector + `"` + style(page.IDSelector) + `>
        <form method="POST" action="/load">` + csrfToken + `
            <label id="` + page.IDSelectorLabel + `" for="` + page.IDSelectorControl + `"` + style(page.IDSelectorLabel) + `>Choose a theme:</label>
            <select id="` + page.IDSelectorControl + `" name="key"` + style(page.IDSelectorControl) + ` onchange="this.form.submit()">` + options.String() + `</select>
            <noscript><button type="submit">Load</button></noscript>
        </form>
        <p class="theme-meta">Active: ` + textPolicy.Sanitize(view.ActiveName) + `</p>` + statusHTML(view.Selection) + `
    </div>

    <form method="POST" action="/advance">` + csrfToken + `
        <button id="` + page.IDButton + `" type="submit"` + style(page.IDButton) + `>Click me to change color!</button>
    </form>

    <div id="` + page.IDGenerator + `" class="panel"` + style(page.IDGenerator) + `>
        <h2>Generate a theme</h2>
        <form method="POST" action="/generate">` + csrfToken + `
            <input type="password" name="apiKey" placeholder="Gemini API key" autocomplete="off">
            <input type="text" name="prompt" placeholder="Describe your theme, e.g. calm ocean at dusk">
            <button type="submit">Generate</button>
        </form>` + statusHTML(view.Generation) + `
    </div>

    <div id="githubPanel" class="panel">
        <h2>GitHub</h2>
        <form method="POST" action="/github/settings">` + csrfToken + `
            <input type="password" name="token" placeholder="` + html.EscapeString(tokenPlaceholder) + `" autocomplete="off">
            <input type="text" name="repoUrl" value="` + html.EscapeString(cfg.RepoURL) + `" placeholder="https://github.com/owner/repo or owner/repo">
            <input type="text" name="branch" value="` + html.EscapeString(cfg.Branch) + `" placeholder="main">
            <input type="text" name="configPath" value="` + html.EscapeString(cfg.ConfigPath) + `" placeholder="Config folder (optional)">
            <button type="submit">Save settings</button>
        </form>` + pushForm + `
        <form method="POST" action="/github/pull" class="inline">` + csrfToken + `
            <button type="submit">Pull configs from GitHub</button>
        </form>` + statusHTML(view.Repository) + `
    </div>
</body>
</html>`

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(body))
}

func statusHTML(st session.Status) string {
	if st.Kind == session.StatusNone {
		return ""
	}
	return `
        <p class="status status-` + string(st.Kind) + `">` + textPolicy.Sanitize(st.Message) + `</p>`
}
