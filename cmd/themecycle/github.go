// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themecycle/internal/db"
	"github.com/thatcatcamp/themecycle/internal/generator"
	"github.com/thatcatcamp/themecycle/internal/github"
	"github.com/thatcatcamp/themecycle/internal/settings"
	"github.com/thatcatcamp/themecycle/internal/styles"
)

var githubCmd = &cobra.Command{
	Use:   "github",
	Short: "Sync themes with a GitHub repository",
	Long:  "Configure the repository and push or pull theme documents",
}

var githubSettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show or update repository settings",
	Long: `Without flags, prints the saved settings. Flags that are given are
saved; the token is never printed in full.`,
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		store := settings.New(db.GetDB())
		ctx := context.Background()

		var u settings.Update
		u.Token, _ = cmd.Flags().GetString("token")
		u.RepoURL, _ = cmd.Flags().GetString("repo")
		u.Branch, _ = cmd.Flags().GetString("branch")
		if cmd.Flags().Changed("config-path") {
			dir, _ := cmd.Flags().GetString("config-path")
			u.ConfigPath = &dir
		}
		if u.RepoURL != "" {
			if _, ok := github.ParseRepoURL(u.RepoURL); !ok {
				fmt.Fprintf(os.Stderr, "Error: %v\n", github.ErrInvalidRepoURL)
				os.Exit(1)
			}
		}

		if u != (settings.Update{}) {
			if err := store.Save(ctx, u); err != nil {
				fmt.Fprintf(os.Stderr, "Error saving settings: %v\n", err)
				os.Exit(1)
			}
			fmt.Println("Settings saved!")
		}

		cfg, err := store.Get(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Repository:  %s\n", cfg.RepoURL)
		fmt.Printf("Branch:      %s\n", cfg.Branch)
		fmt.Printf("Config path: %s\n", cfg.ConfigPath)
		fmt.Printf("Token:       %s\n", cfg.MaskedToken())
	},
}

var githubPushCmd = &cobra.Command{
	Use:   "push <file>",
	Short: "Push a theme document file to the repository",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		data, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", args[0], err)
			os.Exit(1)
		}
		doc, err := styles.Parse(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if err := generator.Validate(doc); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx := context.Background()
		cfg, err := settings.New(db.GetDB()).Get(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if cfg.Token == "" || cfg.RepoURL == "" {
			fmt.Fprintln(os.Stderr, "Error: configure the GitHub token and repository first (themecycle github settings)")
			os.Exit(1)
		}
		repo, ok := github.ParseRepoURL(cfg.RepoURL)
		if !ok {
			fmt.Fprintf(os.Stderr, "Error: %v\n", github.ErrInvalidRepoURL)
			os.Exit(1)
		}

		log, err := newLogger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		target := github.PushPath(cfg.ConfigPath, github.FilenameFor(doc, time.Now()))
		if err := newGitHubClient(log).Push(ctx, cfg.Token, repo, target, doc, cfg.Branch); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Config pushed to %s/%s on %s\n", repo, target, cfg.Branch)
	},
}

var githubPullCmd = &cobra.Command{
	Use:   "pull",
	Short: "List the theme documents found in the repository",
	Run: func(cmd *cobra.Command, args []string) {
		if err := initSystemDB(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

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

		fetched, added, err := sess.Pull(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Loaded %d config(s) from GitHub, %d new\n", fetched, added)
		for _, opt := range sess.Snapshot().Options {
			fmt.Printf("  %-28s %s\n", opt.Key, opt.Label)
		}
	},
}

func init() {
	githubSettingsCmd.Flags().String("token", "", "GitHub personal access token")
	githubSettingsCmd.Flags().String("repo", "", "Repository URL or owner/name")
	githubSettingsCmd.Flags().String("branch", "", "Branch to push to and pull from")
	githubSettingsCmd.Flags().String("config-path", "", "Folder inside the repository (empty for the root)")

	githubCmd.AddCommand(githubSettingsCmd)
	githubCmd.AddCommand(githubPushCmd)
	githubCmd.AddCommand(githubPullCmd)
	rootCmd.AddCommand(githubCmd)
}
