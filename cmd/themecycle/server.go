// SPDX-License-Identifier: MIT
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/thatcatcamp/themecycle/internal/config"
	"github.com/thatcatcamp/themecycle/internal/db"
	"github.com/thatcatcamp/themecycle/internal/generator"
	"github.com/thatcatcamp/themecycle/internal/github"
	"github.com/thatcatcamp/themecycle/internal/gitsource"
	"github.com/thatcatcamp/themecycle/internal/handlers"
	"github.com/thatcatcamp/themecycle/internal/logger"
	"github.com/thatcatcamp/themecycle/internal/middleware"
	"github.com/thatcatcamp/themecycle/internal/session"
	"github.com/thatcatcamp/themecycle/internal/settings"
	"github.com/thatcatcamp/themecycle/internal/themes"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Server operations",
	Long:  "Start and manage the Themecycle HTTP server",
}

var serverStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the HTTP server",
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

		behindProxy := config.GetBool("server.behind_proxy")

		r := gin.New()
		r.Use(gin.Recovery())
		if !behindProxy {
			// ClientIP must come from the socket, not a spoofable header
			if err := r.SetTrustedProxies(nil); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		r.Use(middleware.SecurityHeadersMiddleware(behindProxy))
		r.Use(middleware.IPFilterMiddleware(
			config.GetStringSlice("security.blocked_ips"),
			config.GetStringSlice("security.allowed_ips"),
		))

		generateLimiter := middleware.NewRateLimiter(config.GetInt("ratelimit.generate_per_minute"), time.Minute)
		defer generateLimiter.Stop()

		// System routes
		r.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{
				"status":  "ok",
				"service": "themecycle",
			})
		})

		srv := handlers.New(sess, log)

		pages := r.Group("/")
		pages.Use(middleware.CSRFMiddleware(behindProxy))
		pages.Use(middleware.RateLimitWithHandler(generateLimiter, srv.RateLimitedForm, "/generate"))
		srv.RegisterPages(pages)

		api := r.Group("/api")
		api.Use(middleware.RequireJSONMiddleware())
		api.Use(middleware.RateLimitMiddleware(generateLimiter, "/api/generate"))
		srv.RegisterAPI(api)

		httpAddr := fmt.Sprintf(":%s", config.GetString("server.http_port"))
		server := &http.Server{
			Addr:              httpAddr,
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				log.Error(err, "shutdown failed")
			}
		}()

		log.Info("server starting", map[string]any{"addr": httpAddr, "transport": config.GetString("repository.transport")})
		fmt.Printf("Starting HTTP server on %s\n", httpAddr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)
}

// initSystemDB loads the configuration and opens the settings database
func initSystemDB() error {
	if err := initConfig(); err != nil {
		return err
	}

	dbType := config.GetString("database.type")
	dbPath := config.GetString("database.path")

	return db.InitDB(dbType, dbPath)
}

func newLogger() (*logger.Logger, error) {
	return logger.New(logger.Options{
		Level:         config.GetString("log.level"),
		HumanReadable: config.GetBool("log.pretty"),
	})
}

// newSession wires a session from configuration. The database must be
// initialised first.
func newSession(log *logger.Logger) (*session.Session, error) {
	gen := generator.New(generator.Options{
		Endpoint: config.GetString("generator.endpoint"),
		Model:    config.GetString("generator.model"),
		Timeout:  config.GetDuration("generator.timeout"),
		Logger:   log,
	})
	gh := newGitHubClient(log)

	var source session.Source = gh
	switch transport := config.GetString("repository.transport"); transport {
	case "", "rest":
	case "git":
		source = gitsource.New(config.GetString("repository.git_base"), log)
	default:
		return nil, fmt.Errorf("unsupported repository transport: %s", transport)
	}

	return session.New(session.Options{
		DefaultKey: defaultThemeKey(),
		Generator:  gen,
		Publisher:  gh,
		Source:     source,
		Settings:   settings.New(db.GetDB()),
		Logger:     log,
	})
}

func newGitHubClient(log *logger.Logger) *github.Client {
	return github.New(github.Options{
		APIBase: config.GetString("github.api_base"),
		Timeout: config.GetDuration("github.timeout"),
		Logger:  log,
	})
}

func defaultThemeKey() string {
	if key := config.GetString("theme.default"); key != "" {
		return key
	}
	return themes.DefaultKey
}
