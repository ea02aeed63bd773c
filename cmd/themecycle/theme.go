// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themecycle/internal/session"
	"github.com/thatcatcamp/themecycle/internal/styles"
	"github.com/thatcatcamp/themecycle/internal/themes"
)

var themeCmd = &cobra.Command{
	Use:   "theme",
	Short: "Inspect built-in themes",
	Long:  "List, show, render and preview the built-in theme documents",
}

var themeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available themes",
	Run: func(cmd *cobra.Command, args []string) {
		sess := mustLocalSession("")
		view := sess.Snapshot()
		for _, opt := range view.Options {
			marker := " "
			if opt.Key == view.ActiveKey {
				marker = "*"
			}
			fmt.Printf("%s %-28s %s\n", marker, opt.Key, opt.Label)
		}
	},
}

var themeShowCmd = &cobra.Command{
	Use:   "show [key]",
	Short: "Print a theme document as JSON",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sess := mustLocalSession(firstArg(args))
		doc, _ := sess.Document(sess.Snapshot().ActiveKey)

		data, err := styles.Marshal(doc)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	},
}

var themeCSSCmd = &cobra.Command{
	Use:   "css [key]",
	Short: "Render a theme as a stylesheet",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Print(mustLocalSession(firstArg(args)).Snapshot().CSS)
	},
}

var themePreviewCmd = &cobra.Command{
	Use:   "preview [key]",
	Short: "Show a theme's colors in the terminal",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		sess := mustLocalSession(firstArg(args))
		view := sess.Snapshot()
		doc, _ := sess.Document(view.ActiveKey)
		fmt.Println(renderPreview(view.ActiveName, themes.GenerateColors(doc)))
	},
}

var themeNextCmd = &cobra.Command{
	Use:   "next [key]",
	Short: "Step the button through a theme's color cycle",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		times, _ := cmd.Flags().GetInt("times")
		sess := mustLocalSession(firstArg(args))

		for i := 0; i < times; i++ {
			index, ok := sess.Advance()
			if !ok {
				fmt.Println("Theme has no button colors to cycle")
				return
			}
			fmt.Printf("%d %s\n", index, sess.Snapshot().CurrentColor)
		}
	},
}

func init() {
	themeNextCmd.Flags().Int("times", 1, "Number of clicks to simulate")

	themeCmd.AddCommand(themeListCmd)
	themeCmd.AddCommand(themeShowCmd)
	themeCmd.AddCommand(themeCSSCmd)
	themeCmd.AddCommand(themePreviewCmd)
	themeCmd.AddCommand(themeNextCmd)
	rootCmd.AddCommand(themeCmd)
}

// mustLocalSession builds an offline session with key loaded.
func mustLocalSession(key string) *session.Session {
	sess, err := session.New(session.Options{})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if key != "" {
		if err := sess.Load(key); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	return sess
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

var (
	previewTitle = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	previewLabel = lipgloss.NewStyle().Width(12)
	previewChip  = lipgloss.NewStyle().Padding(0, 1)
)

func swatch(label, color string) string {
	if color == "" {
		return previewLabel.Render(label) + "-"
	}
	chip := previewChip.Background(lipgloss.Color(color)).Render("   ")
	return previewLabel.Render(label) + chip + " " + color
}

func renderPreview(name string, c *themes.Colors) string {
	rows := []string{
		previewTitle.Render(name),
		swatch("background", c.Background),
		swatch("heading", c.Heading),
		swatch("selector", c.Selector),
		swatch("button", c.Button),
		swatch("button text", c.ButtonText),
	}
	if c.Gradient != "" {
		rows = append(rows, previewLabel.Render("gradient")+c.Gradient)
	}
	if len(c.Cycle) > 0 {
		chips := make([]string, 0, len(c.Cycle))
		for _, color := range c.Cycle {
			chips = append(chips, previewChip.Background(lipgloss.Color(color)).Render(" "))
		}
		rows = append(rows, previewLabel.Render("cycle")+strings.Join(chips, ""))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
