// SPDX-License-Identifier: MIT
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "themecycle",
	Short: "Themecycle - theme configurator with AI generation and GitHub sync",
	Long: `Themecycle serves a single page styled by a JSON theme document.

Themes can be switched, the button cycles through the theme's colors,
new themes can be generated from a description with Gemini, and theme
files can be pushed to or pulled from a GitHub repository.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
