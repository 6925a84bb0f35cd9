package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/dwaring87/rtm-api/internal/adapters/mcp"
	"github.com/dwaring87/rtm-api/internal/adapters/sqlite"
	"github.com/dwaring87/rtm-api/internal/application/commands"
	"github.com/dwaring87/rtm-api/internal/config"
	"github.com/dwaring87/rtm-api/internal/refstore"
	"github.com/dwaring87/rtm-api/internal/rtm"
	"github.com/dwaring87/rtm-api/internal/throttle"
)

func main() {
	deps, err := buildDeps()
	if err != nil {
		log.Fatalf("rtm-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"rtm-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check — returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, deps)
	mcpadapter.RegisterWriteTools(mcpServer, deps)

	if err := server.ServeStdio(mcpServer); err != nil {
		log.Fatalf("rtm-mcp: %v", err)
	}
}

func buildDeps() (commands.Deps, error) {
	_ = godotenv.Load()

	// Stdout carries the protocol; logs must go to stderr.
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	apiKey, secret := config.APIKey(), config.SharedSecret()
	if apiKey == "" || secret == "" {
		return commands.Deps{}, fmt.Errorf("RTM_API_KEY and RTM_SHARED_SECRET must be set")
	}

	creds, err := config.LoadCredentials(config.CredentialsPath())
	if err != nil {
		return commands.Deps{}, err
	}
	if creds == nil {
		return commands.Deps{}, fmt.Errorf("not authenticated: run 'rtm auth login' first")
	}

	client := rtm.New(apiKey, secret,
		rtm.WithScheduler(throttle.New(config.MinInterval())),
		rtm.WithLogger(logger),
		rtm.WithAuth(creds.Token, creds.UserID),
	)

	store := refstore.New(config.IndexPath())
	if err := store.Load(); err != nil {
		return commands.Deps{}, err
	}

	deps := commands.Deps{
		Tasks:  client,
		Lists:  client,
		Store:  store,
		Logger: logger,
		UserID: creds.UserID,
	}

	if cache, err := sqlite.Open(config.CachePath()); err != nil {
		logger.Warn("task cache unavailable", "error", err)
	} else {
		deps.Cache = cache
	}

	return deps, nil
}
