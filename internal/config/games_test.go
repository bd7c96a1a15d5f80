package config

// Copyright (C) 2021-2025 Intel Corporation
// SPDX-License-Identifier: BSD-3-Clause

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validGames = `games:
  - name: Cyberpunk 2077
    executable: Cyberpunk2077.exe
    affinity: "cachestacked"
  - name: "  Counter-Strike 2 "
    executable: cs2.exe
`

func TestParseGames(t *testing.T) {
	games, err := ParseGames([]byte(validGames))
	require.NoError(t, err)
	assert.Equal(t, []GameEntry{
		{Name: "Cyberpunk 2077", Executable: "Cyberpunk2077.exe", Affinity: "cachestacked"},
		{Name: "Counter-Strike 2", Executable: "cs2.exe"},
	}, games)
}

func TestParseGamesErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errPart string
	}{
		{"missing name", "games:\n  - executable: a.exe\n", "name is required"},
		{"blank name", "games:\n  - name: \"  \"\n    executable: a.exe\n", "name is required"},
		{"missing executable", "games:\n  - name: A\n", "executable is required"},
		{"path", "games:\n  - name: A\n    executable: C:\\Games\\a.exe\n", "without directories"},
		{"duplicate", "games:\n  - name: A\n    executable: a.exe\n  - name: B\n    executable: A.EXE\n", "same executable"},
		{"unknown key", "games:\n  - name: A\n    exe: a.exe\n", "exe"},
		{"not yaml", "games: [", "yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseGames([]byte(tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errPart)
		})
	}
}

func TestParseGamesEmpty(t *testing.T) {
	games, err := ParseGames([]byte(""))
	require.NoError(t, err)
	assert.Empty(t, games)
}

func TestLoadGames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validGames), 0o644))

	cfg, err := LoadGames(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Len(t, cfg.Games, 2)

	changed, err := cfg.Changed()
	require.NoError(t, err)
	assert.False(t, changed)

	later := cfg.ModTime.Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, later, later))
	changed, err = cfg.Changed()
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestLoadGamesMissing(t *testing.T) {
	_, err := LoadGames(filepath.Join(t.TempDir(), "games.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoadGamesInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yaml")
	require.NoError(t, os.WriteFile(path, []byte("games:\n  - name: A\n"), 0o644))
	_, err := LoadGames(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestChangedAfterRemoval(t *testing.T) {
	path := filepath.Join(t.TempDir(), "games.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validGames), 0o644))
	cfg, err := LoadGames(path)
	require.NoError(t, err)
	require.NoError(t, os.Remove(path))
	_, err = cfg.Changed()
	assert.Error(t, err)
}
