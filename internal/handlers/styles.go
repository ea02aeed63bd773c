// SPDX-License-Identifier: MIT
package handlers

const (
	// Panel palette. Only the panels use these; the themed elements get
	// their look from the projected inline styles.
	ColorPanelBg     = "rgba(255, 255, 255, 0.85)"
	ColorPanelBorder = "rgba(0, 0, 0, 0.12)"
	ColorPanelText   = "#2D2D2D"
	ColorMuted       = "#6B7280"
	ColorAccent      = "#2196F3" // Action buttons
	ColorSuccess     = "#4CAF50" // Status after a successful action
	ColorDanger      = "#F44336" // Status after a failed action
)

// GetDesignSystemCSS returns the stylesheet for the page chrome. It never
// targets the themed element IDs.
func GetDesignSystemCSS() string {
	return `
:root {
	--color-panel-bg: ` + ColorPanelBg + `;
	--color-panel-border: ` + ColorPanelBorder + `;
	--color-panel-text: ` + ColorPanelText + `;
	--color-muted: ` + ColorMuted + `;
	--color-accent: ` + ColorAccent + `;
	--color-success: ` + ColorSuccess + `;
	--color-danger: ` + ColorDanger + `;
	--spacing-sm: 8px;
	--spacing-base: 16px;
	--radius-base: 6px;
}

* { box-sizing: border-box; }

.panel {
	width: 100%;
	max-width: 520px;
	margin-top: var(--spacing-base);
	padding: var(--spacing-base);
	border: 1px solid var(--color-panel-border);
	border-radius: var(--radius-base);
	background: var(--color-panel-bg);
	color: var(--color-panel-text);
}

.panel h2 { font-size: 16px; margin: 0 0 var(--spacing-sm) 0; }

.panel form {
	display: flex;
	flex-direction: column;
	gap: var(--spacing-sm);
}

.panel form.inline { flex-direction: row; flex-wrap: wrap; }

.panel input {
	font-family: inherit;
	font-size: 14px;
	padding: var(--spacing-sm);
	border: 1px solid var(--color-panel-border);
	border-radius: 4px;
}

.panel button {
	font-family: inherit;
	font-size: 14px;
	font-weight: 600;
	padding: var(--spacing-sm) var(--spacing-base);
	border: none;
	border-radius: var(--radius-base);
	background: var(--color-accent);
	color: white;
	cursor: pointer;
}

.panel button:hover { opacity: 0.9; }

.status { font-size: 14px; margin: var(--spacing-sm) 0 0 0; }
.status-success { color: var(--color-success); }
.status-error { color: var(--color-danger); }

.theme-meta { font-size: 13px; color: var(--color-muted); margin-top: var(--spacing-sm); }
`
}
