package watch

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"coresched/internal/affinity"
	"coresched/internal/watcher"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const promMetricPrefix = "coresched_"

// metricsListener keeps Prometheus metrics in step with the game events. The
// collectors are registered on a private registry so only these metrics are
// served.
type metricsListener struct {
	registry   *prometheus.Registry
	running    *prometheus.GaugeVec
	events     *prometheus.CounterVec
	foreground *prometheus.GaugeVec
	binds      *prometheus.CounterVec
}

func newMetricsListener() *metricsListener {
	m := &metricsListener{
		registry: prometheus.NewRegistry(),
		running: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: promMetricPrefix + "games_running",
				Help: "Number of running processes per game",
			},
			[]string{"name", "executable"},
		),
		events: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: promMetricPrefix + "game_events_total",
				Help: "Game lifecycle events by kind",
			},
			[]string{"event", "name"},
		),
		foreground: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: promMetricPrefix + "game_foreground",
				Help: "1 while the game process is in the foreground",
			},
			[]string{"name", "pid"},
		),
		binds: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: promMetricPrefix + "binds_total",
				Help: "Affinity bind attempts by result",
			},
			[]string{"name", "result"},
		),
	}
	m.registry.MustRegister(m.running, m.events, m.foreground, m.binds)
	return m
}

func (m *metricsListener) OnGameStart(pid int, name, executable string) {
	m.events.WithLabelValues(watcher.EventStart.String(), name).Inc()
	m.running.WithLabelValues(name, executable).Inc()
}

func (m *metricsListener) OnGameStop(pid int, name, executable string) {
	m.events.WithLabelValues(watcher.EventStop.String(), name).Inc()
	m.running.WithLabelValues(name, executable).Dec()
	m.foreground.DeleteLabelValues(name, pidLabel(pid))
}

func (m *metricsListener) OnGameForeground(pid int, name, executable string) {
	m.events.WithLabelValues(watcher.EventForeground.String(), name).Inc()
	m.foreground.WithLabelValues(name, pidLabel(pid)).Set(1)
}

func (m *metricsListener) OnGameBackground(pid int, name, executable string) {
	m.events.WithLabelValues(watcher.EventBackground.String(), name).Inc()
	m.foreground.WithLabelValues(name, pidLabel(pid)).Set(0)
}

func (m *metricsListener) observeBind(name string, result affinity.BindResult) {
	m.binds.WithLabelValues(name, result.String()).Inc()
}

func pidLabel(pid int) string {
	return strconv.Itoa(pid)
}

func startPrometheusServer(listenAddr string, m *metricsListener) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	server := &http.Server{
		Addr:              listenAddr,
		Handler:           mux,
		ReadHeaderTimeout: 3 * time.Second,
	}
	slog.Info("Starting Prometheus metrics server", slog.String("address", listenAddr))
	go func() {
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Prometheus HTTP server ListenAndServe error", slog.String("error", err.Error()))
		}
	}()
	return server
}
