// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/poiesic/supportai"
	"github.com/poiesic/supportai/config"
	"github.com/poiesic/supportai/server"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "supportai",
		Usage: "Website-grounded customer support assistant",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to YAML configuration file",
				EnvVars: []string{"SUPPORTAI_CONFIG"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "Serve the assistant over HTTP and sockets",
				Action: serveCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Usage: "Listen address (overrides config)",
					},
				},
			},
			{
				Name:   "ask",
				Usage:  "Answer a single question from the command line",
				Action: askCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "user",
						Aliases: []string{"u"},
						Usage:   "User ID the conversation is recorded under",
						Value:   "cli",
					},
					&cli.StringFlag{
						Name:     "question",
						Aliases:  []string{"q"},
						Usage:    "Question to ask",
						Required: true,
					},
				},
			},
			{
				Name:   "harvest",
				Usage:  "Fetch the configured site pages and report what was extracted",
				Action: harvestCommand,
			},
			{
				Name:   "history",
				Usage:  "Print a user's recent conversation",
				Action: historyCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "user",
						Aliases:  []string{"u"},
						Usage:    "User ID",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of messages",
						Value: 20,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)
	return cfg, nil
}

func serveCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	if listen := c.String("listen"); listen != "" {
		cfg.Listen = listen
	}

	assistant, err := supportai.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	srv, err := server.New(assistant,
		server.WithWorkers(cfg.Workers),
		server.WithPromptTimeout(cfg.PromptTimeout),
	)
	if err != nil {
		return err
	}
	defer srv.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	slog.Info("starting supportai", "listen", cfg.Listen, "site", cfg.Site.BaseURL, "db", cfg.DBPath)
	return srv.Run(ctx, cfg.Listen)
}

func askCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	assistant, err := supportai.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PromptTimeout)
	defer cancel()

	reply, err := assistant.Ask(ctx, c.String("user"), c.String("question"))
	if err != nil {
		return err
	}
	fmt.Println(reply.Contents)
	return nil
}

func harvestCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	harvester, err := supportai.NewHarvester(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	results := harvester.Collect(c.Context)

	ok := 0
	for _, r := range results {
		if !r.OK() {
			fmt.Printf("FAIL  %s: %v\n", r.URL, r.Err)
			continue
		}
		ok++
		fmt.Printf("OK    %s (%d chars)\n", r.URL, len(r.Part.Text))
	}
	fmt.Printf("\n%d of %d pages harvested in %s\n", ok, len(results), time.Since(start).Round(time.Millisecond))
	return nil
}

func historyCommand(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	assistant, err := supportai.Open(cfg)
	if err != nil {
		return fmt.Errorf("failed to open assistant: %w", err)
	}
	defer assistant.Close()

	messages, err := assistant.History(c.Context, c.String("user"), c.Int("limit"))
	if err != nil {
		return err
	}
	for _, msg := range messages {
		fmt.Printf("[%s] %-5s %s\n", msg.Timestamp.Local().Format(time.DateTime), msg.Speaker, msg.Contents)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}
