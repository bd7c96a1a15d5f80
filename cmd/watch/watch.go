// Package watch is a subcommand of the root command. It polls the process
// table for the games listed in the games file, reports their lifecycle, and
// binds them to the core groups their affinity policy selects.
package watch

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"coresched/internal/affinity"
	"coresched/internal/common"
	"coresched/internal/config"
	"coresched/internal/policy"
	"coresched/internal/topology"
	"coresched/internal/util"
	"coresched/internal/watcher"

	"github.com/spf13/cobra"
)

const cmdName = "watch"

var examples = []string{
	fmt.Sprintf("  Watch the games in the default games file:   $ %s %s", common.AppName, cmdName),
	fmt.Sprintf("  Use another games file, poll twice a second: $ %s %s --games ./games.yaml --interval 500ms", common.AppName, cmdName),
	fmt.Sprintf("  Report only, expose Prometheus metrics:      $ %s %s --no-bind --metrics-addr :9090", common.AppName, cmdName),
}

var Cmd = &cobra.Command{
	Use:           cmdName,
	Short:         "Watch for games and apply their affinity policies",
	Example:       strings.Join(examples, "\n"),
	RunE:          runCmd,
	PreRunE:       validateFlags,
	GroupID:       "primary",
	Args:          cobra.NoArgs,
	SilenceErrors: true,
}

var (
	flagGames       string
	flagInterval    time.Duration
	flagNoBind      bool
	flagMetricsAddr string
	flagQuiet       bool
)

const (
	flagGamesName       = "games"
	flagIntervalName    = "interval"
	flagNoBindName      = "no-bind"
	flagMetricsAddrName = "metrics-addr"
	flagQuietName       = "quiet"
)

func init() {
	Cmd.Flags().StringVar(&flagGames, flagGamesName, config.DefaultGamesFile, "")
	Cmd.Flags().DurationVar(&flagInterval, flagIntervalName, time.Second, "")
	Cmd.Flags().BoolVar(&flagNoBind, flagNoBindName, false, "")
	Cmd.Flags().StringVar(&flagMetricsAddr, flagMetricsAddrName, "", "")
	Cmd.Flags().BoolVar(&flagQuiet, flagQuietName, false, "")

	Cmd.SetUsageFunc(common.UsageFunc(getFlagGroups))
}

func getFlagGroups() []common.FlagGroup {
	return []common.FlagGroup{
		{
			GroupName: "Options",
			Flags: []common.Flag{
				{Name: flagGamesName, Help: "YAML file listing the games to watch, reloaded when it changes or on SIGHUP"},
				{Name: flagIntervalName, Help: "time between process table scans"},
				{Name: flagNoBindName, Help: "report game events without changing affinity"},
				{Name: flagQuietName, Help: "do not print game events"},
			},
		},
		{
			GroupName: "Metrics",
			Flags: []common.Flag{
				{Name: flagMetricsAddrName, Help: "serve Prometheus metrics at this address, e.g., :9090"},
			},
		},
	}
}

func validateFlags(cmd *cobra.Command, args []string) error {
	if flagInterval < 100*time.Millisecond {
		return common.FlagError(fmt.Errorf("--%s must be at least 100ms", flagIntervalName))
	}
	if flagGames == "" {
		return common.FlagError(fmt.Errorf("--%s must not be empty", flagGamesName))
	}
	return nil
}

// session owns the watcher and everything that changes when the games file
// is reloaded. It is driven from a single goroutine.
type session struct {
	gamesPath  string
	games      *config.GamesConfig
	registry   *watcher.Registry
	watcher    *watcher.Watcher
	dispatcher *watcher.Dispatcher
	binder     *policy.Binder // nil with --no-bind
	loadGames  func(path string) (*config.GamesConfig, error)
}

func newSession(gamesPath string, w *watcher.Watcher, registry *watcher.Registry, dispatcher *watcher.Dispatcher, binder *policy.Binder) *session {
	return &session{
		gamesPath:  gamesPath,
		registry:   registry,
		watcher:    w,
		dispatcher: dispatcher,
		binder:     binder,
		loadGames:  config.LoadGames,
	}
}

// validate compiles every affinity policy without installing anything.
func (s *session) validate(games *config.GamesConfig) error {
	if s.binder == nil {
		return nil
	}
	for _, game := range games.Games {
		if game.Affinity == "" {
			continue
		}
		if _, err := policy.Compile(game.Affinity); err != nil {
			return fmt.Errorf("game %q: %w", game.Name, err)
		}
	}
	return nil
}

// apply installs a validated games file.
func (s *session) apply(games *config.GamesConfig) error {
	if s.binder != nil {
		s.binder.ClearPolicies()
		for _, game := range games.Games {
			if err := s.binder.SetPolicy(game.Executable, game.Affinity); err != nil {
				return err
			}
		}
	}
	entries := make([]watcher.Game, 0, len(games.Games))
	for _, game := range games.Games {
		entries = append(entries, watcher.Game{Name: game.Name, Executable: game.Executable})
	}
	s.registry.Set(entries)
	s.games = games
	attrs := []any{slog.String("path", games.Path), slog.Int("games", s.registry.Len())}
	if s.binder != nil {
		attrs = append(attrs, slog.Int("policies", s.binder.Len()))
	}
	slog.Info("loaded games file", attrs...)
	return nil
}

// load reads the games file for the first time.
func (s *session) load() error {
	games, err := s.loadGames(s.gamesPath)
	if err != nil {
		return err
	}
	if err = s.validate(games); err != nil {
		return err
	}
	return s.apply(games)
}

// reload ends all tracked sessions and installs the current games file. On
// failure the previous registry stays active.
func (s *session) reload() {
	games, err := s.loadGames(s.gamesPath)
	if err == nil {
		err = s.validate(games)
	}
	if err == nil {
		slog.Info("ending tracked sessions for reload", slog.Int("tracked", len(s.watcher.Tracked())))
		s.dispatcher.Publish(s.watcher.Reset()...)
		err = s.apply(games)
	}
	if err != nil {
		slog.Error("failed to reload games file, keeping previous games", slog.String("path", s.gamesPath), slog.String("error", err.Error()))
		if s.games != nil {
			// don't retry until the file changes again
			if modTime, statErr := util.ModTime(s.games.Path); statErr == nil {
				s.games.ModTime = modTime
			}
		}
	}
	s.dispatcher.Drain()
}

// tick reloads the games file if it changed, then scans once.
func (s *session) tick() {
	if s.games != nil {
		changed, err := s.games.Changed()
		if err != nil {
			slog.Debug("failed to check games file", slog.String("error", err.Error()))
		} else if changed {
			slog.Info("games file changed, reloading", slog.String("path", s.games.Path))
			s.reload()
		}
	}
	s.dispatcher.Publish(s.watcher.Scan()...)
	if pending := s.dispatcher.Pending(); pending > 0 {
		slog.Debug("delivering game events", slog.Int("events", pending), slog.Int("tracked", len(s.watcher.Tracked())), slog.Bool("foreground", s.watcher.IsForeground()))
	}
	s.dispatcher.Drain()
}

// shutdown reports a final stop for every tracked game.
func (s *session) shutdown() {
	slog.Info("stopping", slog.Int("tracked", len(s.watcher.Tracked())), slog.Bool("foreground", s.watcher.IsForeground()))
	s.dispatcher.Publish(s.watcher.Reset()...)
	s.dispatcher.Drain()
}

// run polls until the context is done.
func (s *session) run(ctx context.Context, interval time.Duration, hangup <-chan os.Signal) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	s.tick()
	for {
		select {
		case <-ctx.Done():
			s.shutdown()
			return
		case <-hangup:
			slog.Info("received hangup, reloading games file")
			s.reload()
		case <-ticker.C:
			s.tick()
		}
	}
}

func runCmd(cmd *cobra.Command, args []string) error {
	topo := topology.Detect()
	if topo.Degraded {
		fmt.Fprintf(os.Stderr, "Warning: %s\n", topo.Diagnostic)
	}
	registry := watcher.NewRegistry()
	dispatcher := watcher.NewDispatcher()
	if !flagQuiet {
		dispatcher.AddListener(newEventPrinter(os.Stdout))
	}
	var metrics *metricsListener
	if flagMetricsAddr != "" {
		metrics = newMetricsListener()
		dispatcher.AddListener(metrics)
	}
	var binder *policy.Binder
	if !flagNoBind {
		binder = policy.NewBinder(topo, affinity.NewScheduler())
		if metrics != nil {
			binder.OnResult = metrics.observeBind
		}
		dispatcher.AddListener(binder)
	}
	s := newSession(flagGames, watcher.NewPlatformWatcher(registry), registry, dispatcher, binder)
	if err := s.load(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		slog.Error(err.Error())
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	hangup := make(chan os.Signal, 1)
	signal.Notify(hangup, syscall.SIGHUP)
	defer signal.Stop(hangup)

	if metrics != nil {
		server := startPrometheusServer(flagMetricsAddr, metrics)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("failed to stop Prometheus metrics server", slog.String("error", err.Error()))
			}
		}()
	}
	slog.Info("watching for games", slog.String("games", s.games.Path), slog.Duration("interval", flagInterval), slog.Bool("bind", binder != nil))
	fmt.Fprintf(os.Stderr, "Watching %d game(s) from %s, press Ctrl+C to stop.\n", len(s.games.Games), s.games.Path)
	s.run(ctx, flagInterval, hangup)
	slog.Info("stopped watching")
	return nil
}
