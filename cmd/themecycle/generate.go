// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themecycle/internal/config"
	"github.com/thatcatcamp/themecycle/internal/styles"
)

var generateCmd = &cobra.Command{
	Use:   "generate <description>",
	Short: "Generate a theme from a description",
	Long: `Generate asks Gemini for a theme matching the description and prints
the resulting document. The API key comes from --api-key or the
generator.api_key setting.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		apiKey, _ := cmd.Flags().GetString("api-key")
		if apiKey == "" {
			apiKey = config.GetString("generator.api_key")
		}
		out, _ := cmd.Flags().GetString("output")
		push, _ := cmd.Flags().GetBool("push")

		log, err := newLogger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		sess, err := newSession(log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		res, err := sess.Generate(ctx, apiKey, strings.Join(args, " "))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		data, err := styles.Marshal(res.Document)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if out != "" {
			if err := os.WriteFile(out, append(data, '\n'), 0644); err != nil {
				fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", out, err)
				os.Exit(1)
			}
			fmt.Printf("Generated %q, saved to %s\n", res.Document.Name, out)
		} else {
			fmt.Println(string(data))
		}

		if push {
			path, err := sess.PushLastGenerated(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("Pushed to %s\n", path)
		}
	},
}

func init() {
	generateCmd.Flags().String("api-key", "", "Gemini API key (defaults to generator.api_key)")
	generateCmd.Flags().StringP("output", "o", "", "Write the document to a file instead of stdout")
	generateCmd.Flags().Bool("push", false, "Push the generated theme to the configured GitHub repository")
	rootCmd.AddCommand(generateCmd)
}
