// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreDefault(t *testing.T) {
	t.Helper()
	prev := log.Default()
	t.Cleanup(func() { log.SetDefault(prev) })
}

func TestSetup_Stderr(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	cleanup, err := Setup(Options{Stderr: &buf})
	require.NoError(t, err)
	defer cleanup()

	log.Info("hello", "key", "value")
	log.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "hello")
	assert.Contains(t, out, "key=value")
	assert.Contains(t, out, Prefix)
	assert.NotContains(t, out, "hidden")
}

func TestSetup_Debug(t *testing.T) {
	restoreDefault(t)

	var buf bytes.Buffer
	cleanup, err := Setup(Options{Stderr: &buf, Debug: true})
	require.NoError(t, err)
	defer cleanup()

	log.Debug("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestSetup_File(t *testing.T) {
	restoreDefault(t)

	dir := filepath.Join(t.TempDir(), "nested")
	cleanup, err := Setup(Options{ToFile: true, Dir: dir})
	require.NoError(t, err)

	log.Warn("to file", "n", 1)
	cleanup()

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Contains(t, string(data), "n=1")
}

func TestSetup_FileAppends(t *testing.T) {
	restoreDefault(t)
	dir := t.TempDir()

	for _, msg := range []string{"first", "second"} {
		cleanup, err := Setup(Options{ToFile: true, Dir: dir})
		require.NoError(t, err)
		log.Info(msg)
		cleanup()
	}

	data, err := os.ReadFile(Path(dir))
	require.NoError(t, err)
	assert.Contains(t, string(data), "first")
	assert.Contains(t, string(data), "second")
}

func TestSetup_FileWithoutDir(t *testing.T) {
	restoreDefault(t)

	cleanup, err := Setup(Options{ToFile: true})
	assert.Error(t, err)
	assert.NotNil(t, cleanup)
}
