package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/modelboard/internal/config"
)

func TestRender_SVG(t *testing.T) {
	dir := t.TempDir()
	written, err := render(config.Empty(), dir, "svg", 12)
	require.NoError(t, err)
	// eight catalog charts plus five live series
	require.Len(t, written, 13)
	onDisk, err := filepath.Glob(filepath.Join(dir, "*.svg"))
	require.NoError(t, err)
	assert.ElementsMatch(t, onDisk, written)
	assert.Contains(t, written, filepath.Join(dir, "live-cpu.svg"))

	body, err := os.ReadFile(filepath.Join(dir, "confusion.svg"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "Accuracy: 97.0%")

	body, err = os.ReadFile(filepath.Join(dir, "live-cpu.svg"))
	require.NoError(t, err)
	assert.NotContains(t, string(body), "Initializing...")
}

func TestRender_HTML(t *testing.T) {
	dir := t.TempDir()
	written, err := render(config.Empty(), dir, "html", 0)
	require.NoError(t, err)
	require.Len(t, written, 8)
	for _, path := range written {
		assert.True(t, strings.HasSuffix(path, ".html"), path)
	}
}

func TestRender_HTMLWithLiveCharts(t *testing.T) {
	dir := t.TempDir()
	written, err := render(config.Empty(), dir, "html", 3)
	require.NoError(t, err)
	require.Len(t, written, 13)
	onDisk, err := filepath.Glob(filepath.Join(dir, "live-*.html"))
	require.NoError(t, err)
	assert.Len(t, onDisk, 5)
	assert.Subset(t, written, onDisk)
}

func TestRender_PNGSkipsChartsWithoutPlots(t *testing.T) {
	dir := t.TempDir()
	written, err := render(config.Empty(), dir, "png", 30)
	require.NoError(t, err)
	assert.Len(t, written, 5)

	_, err = os.Stat(filepath.Join(dir, "confusion.png"))
	assert.True(t, os.IsNotExist(err))

	body, err := os.ReadFile(filepath.Join(dir, "loss.png"))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(body[:4]))
}

func TestRender_UnsupportedFormat(t *testing.T) {
	_, err := render(config.Empty(), t.TempDir(), "gif", 0)
	assert.ErrorContains(t, err, "unsupported format")
}
