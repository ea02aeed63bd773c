// SPDX-License-Identifier: MIT
package themes

import "github.com/thatcatcamp/themecycle/internal/styles"

// Colors is a flat color summary of a document, used for previews
type Colors struct {
	Background string   // body solid color, or the first color stop of a gradient
	Gradient   string   // raw body gradient, if any
	Heading    string   // heading text color
	Selector   string   // selector text color
	Button     string   // initial button color
	ButtonText string   // button text color
	Cycle      []string // button color cycle
}

// GenerateColors summarises doc. Missing roles leave fields empty.
func GenerateColors(doc *styles.Document) *Colors {
	c := &Colors{}
	if doc == nil {
		return c
	}
	s := doc.Styles

	if bg, ok := s.Body.Get(styles.PropBackground); ok {
		if styles.IsGradient(bg) {
			c.Gradient = bg
			c.Background = firstHex(bg)
		} else {
			c.Background = bg
		}
	} else if bg, ok := s.Body.Get(styles.PropBackgroundColor); ok {
		c.Background = bg
	}

	c.Heading, _ = s.Heading.Get(styles.PropColor)
	c.Selector, _ = s.Selector.Get(styles.PropColor)

	if s.Button != nil {
		c.ButtonText, _ = s.Button.Get(styles.PropColor)
		c.Cycle = append([]string(nil), s.Button.Colors...)
		switch {
		case s.Button.InitialColor != "":
			c.Button = s.Button.InitialColor
		case len(s.Button.Colors) > 0:
			c.Button = s.Button.Colors[0]
		}
	}
	return c
}

// firstHex returns the first #rrggbb or #rgb literal in value.
func firstHex(value string) string {
	for i := 0; i < len(value); i++ {
		if value[i] != '#' {
			continue
		}
		j := i + 1
		for j < len(value) && isHexDigit(value[j]) {
			j++
		}
		if n := j - i - 1; n == 3 || n == 6 {
			return value[i:j]
		}
	}
	return ""
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
