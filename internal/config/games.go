// Package config loads the games file that drives the watch command.
package config

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"strings"
	"time"

	"coresched/internal/util"

	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v2"
)

// DefaultGamesFile is used when --games is not given.
const DefaultGamesFile = "~/.config/coresched/games.yaml"

// GameEntry is one item of the games list. Affinity is an optional
// expression selecting core groups, see package policy.
type GameEntry struct {
	Name       string `yaml:"name"`
	Executable string `yaml:"executable"`
	Affinity   string `yaml:"affinity,omitempty"`
}

type gamesFile struct {
	Games []GameEntry `yaml:"games"`
}

// GamesConfig is a parsed games file along with the modification time the
// file had when it was read.
type GamesConfig struct {
	Path    string
	ModTime time.Time
	Games   []GameEntry
}

// LoadGames reads and validates the games file at path.
func LoadGames(path string) (*GamesConfig, error) {
	absPath, err := util.AbsPath(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to resolve games file path %s", path)
	}
	exists, err := util.FileExists(absPath)
	if err != nil {
		return nil, errors.Wrap(err, "invalid games file")
	}
	if !exists {
		return nil, errors.Errorf("games file not found: %s", absPath)
	}
	// stat before reading so a write racing the read is seen as a change later
	modTime, err := util.ModTime(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to stat games file %s", absPath)
	}
	content, err := os.ReadFile(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read games file %s", absPath)
	}
	games, err := ParseGames(content)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse games file %s", absPath)
	}
	return &GamesConfig{Path: absPath, ModTime: modTime, Games: games}, nil
}

// ParseGames decodes and validates the YAML content of a games file.
func ParseGames(content []byte) ([]GameEntry, error) {
	var file gamesFile
	if err := yaml.UnmarshalStrict(content, &file); err != nil {
		return nil, err
	}
	fold := cases.Fold()
	seen := make(map[string]string)
	for i := range file.Games {
		game := &file.Games[i]
		game.Name = strings.TrimSpace(game.Name)
		game.Executable = strings.TrimSpace(game.Executable)
		game.Affinity = strings.TrimSpace(game.Affinity)
		if game.Name == "" {
			return nil, errors.Errorf("game #%d: name is required", i+1)
		}
		if game.Executable == "" {
			return nil, errors.Errorf("game %q: executable is required", game.Name)
		}
		if strings.ContainsAny(game.Executable, `/\`) {
			return nil, errors.Errorf("game %q: executable must be a file name without directories: %s", game.Name, game.Executable)
		}
		key := fold.String(game.Executable)
		if other, ok := seen[key]; ok {
			return nil, errors.Errorf("games %q and %q use the same executable: %s", other, game.Name, game.Executable)
		}
		seen[key] = game.Name
	}
	return file.Games, nil
}

// Changed reports whether the file's modification time differs from the one
// recorded at load.
func (c *GamesConfig) Changed() (bool, error) {
	modTime, err := util.ModTime(c.Path)
	if err != nil {
		return false, err
	}
	return !modTime.Equal(c.ModTime), nil
}
