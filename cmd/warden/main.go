package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/warden-bot/warden/automod"
	"github.com/warden-bot/warden/automod/countstore"
	"github.com/warden-bot/warden/automod/rules"
	"github.com/warden-bot/warden/automod/setstore"
	"github.com/warden-bot/warden/discord"

	"github.com/carlmjohnson/versioninfo"
	_ "github.com/joho/godotenv/autoload"
	cli "github.com/urfave/cli/v2"
)

func main() {
	if err := run(os.Args); err != nil {
		slog.Error("exiting", "err", err)
		os.Exit(-1)
	}
}

func run(args []string) error {

	app := cli.App{
		Name:    "warden",
		Usage:   "auto-moderation daemon for Discord guilds",
		Version: versioninfo.Short(),
	}

	app.Commands = []*cli.Command{
		runCmd,
	}

	return app.Run(args)
}

var runCmd = &cli.Command{
	Name:  "run",
	Usage: "run the service",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "discord-token",
			Usage:    "bot token for the Discord API",
			Required: true,
			EnvVars:  []string{"WARDEN_DISCORD_TOKEN", "DISCORD_TOKEN"},
		},
		&cli.StringFlag{
			Name:    "settings-json",
			Usage:   "path to moderation settings (JSON)",
			Value:   "warden.settings.json",
			EnvVars: []string{"WARDEN_SETTINGS_JSON"},
		},
		&cli.StringFlag{
			Name:    "sets-json",
			Usage:   "file path of JSON file containing named string sets (eg, banned link hosts)",
			EnvVars: []string{"WARDEN_SETS_JSON"},
		},
		&cli.StringFlag{
			Name:    "redis-url",
			Usage:   "redis connection URL for counters; empty means in-process memory",
			EnvVars: []string{"WARDEN_REDIS_URL"},
		},
		&cli.StringFlag{
			Name:    "bind",
			Usage:   "IP or address, and port, to listen on for the event ingest API",
			Value:   ":3985",
			EnvVars: []string{"WARDEN_BIND"},
		},
		&cli.StringFlag{
			Name:    "metrics-listen",
			Usage:   "IP or address, and port, to listen on for metrics APIs",
			Value:   ":3986",
			EnvVars: []string{"WARDEN_METRICS_LISTEN"},
		},
	},
	Action: func(cctx *cli.Context) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))
		slog.SetDefault(logger)

		client := discord.NewClient(cctx.String("discord-token"))

		settingsPath := cctx.String("settings-json")
		settings, err := automod.LoadSettingsFile(settingsPath)
		if err != nil {
			return err
		}
		platform := &discordPlatform{client: client}
		if err := automod.ValidateSettings(ctx, settings, platform); err != nil {
			return fmt.Errorf("invalid moderation settings: %w", err)
		}
		settingsStore := automod.NewSettingsStore(settings)

		sets := setstore.NewMemSetStore()
		if p := cctx.String("sets-json"); p != "" {
			if err := sets.LoadFromFileJSON(p); err != nil {
				return fmt.Errorf("initializing in-process setstore: %w", err)
			}
			logger.Info("loaded set config from JSON", "path", p)
		}

		var counters countstore.CountStore
		if redisURL := cctx.String("redis-url"); redisURL != "" {
			cnt, err := countstore.NewRedisCountStore(redisURL)
			if err != nil {
				return fmt.Errorf("initializing redis countstore: %w", err)
			}
			counters = cnt
		} else {
			counters = countstore.NewMemCountStore()
		}

		engine := &automod.Engine{
			Logger:   logger,
			Settings: settingsStore,
			Rules:    rules.DefaultRules(),
			Counters: counters,
			Sets:     sets,
			Platform: platform,
		}

		srv := NewServer(logger, engine)

		// SIGHUP reloads the settings file and swaps the snapshot
		go reloadOnSignal(ctx, logger, platform, settingsStore, settingsPath)

		go func() {
			if err := srv.RunMetrics(cctx.String("metrics-listen")); err != nil {
				logger.Error("failed to start metrics endpoint", "err", err)
				panic(fmt.Errorf("failed to start metrics endpoint: %w", err))
			}
		}()

		return srv.Run(ctx, cctx.String("bind"))
	},
}

func reloadOnSignal(ctx context.Context, logger *slog.Logger, platform automod.PlatformClient, store *automod.SettingsStore, path string) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			settings, err := automod.LoadSettingsFile(path)
			if err != nil {
				logger.Error("settings reload failed", "path", path, "err", err)
				continue
			}
			if err := automod.ValidateSettings(ctx, settings, platform); err != nil {
				logger.Error("settings reload failed validation", "path", path, "err", err)
				continue
			}
			store.Swap(settings)
			logger.Info("settings reloaded", "path", path)
		}
	}
}
