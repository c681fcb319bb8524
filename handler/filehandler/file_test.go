package filehandler

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/philipp01105/athome/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

var day = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func entryAt(t time.Time, msg string) *core.Entry {
	return &core.Entry{Time: t, Timestamp: "[" + t.Format("15:04:05") + "]", Level: core.InfoLevel, Message: msg}
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestFileHandler_WritesDailyFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "log")
	h, err := NewFileHandler(FileConfig{Dir: dir})
	require.NoError(t, err)
	defer h.Close()

	require.NoError(t, h.Handle(entryAt(day, "first")))
	require.NoError(t, h.Handle(entryAt(day.Add(time.Minute), "second")))

	assert.Equal(t, "2026-10-19.log", h.Current())
	data, err := os.ReadFile(filepath.Join(dir, "2026-10-19.log"))
	require.NoError(t, err)
	assert.Equal(t, "[09:30:00] info: first\n[09:31:00] info: second\n", string(data))
	assert.Equal(t, uint64(2), h.Stats().ProcessedTotal)
}

func TestFileHandler_SurvivesExternalDeletion(t *testing.T) {
	dir := t.TempDir()
	h, err := NewFileHandler(FileConfig{Dir: dir})
	require.NoError(t, err)

	require.NoError(t, h.Handle(entryAt(day, "before")))
	require.NoError(t, os.Remove(filepath.Join(dir, "2026-10-19.log")))
	require.NoError(t, h.Handle(entryAt(day, "after")))

	data, err := os.ReadFile(filepath.Join(dir, "2026-10-19.log"))
	require.NoError(t, err)
	assert.Equal(t, "[09:30:00] info: after\n", string(data))
}

func TestFileHandler_RolloverPrunes(t *testing.T) {
	dir := t.TempDir()
	old := []string{"2024-01-01.log", "2024-01-02.log", "2024-01-03.log"}
	for i, name := range old {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))
		mod := time.Date(2024, 1, 1+i, 0, 0, 0, 0, time.UTC)
		require.NoError(t, os.Chtimes(path, mod, mod))
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("keep me"), 0644))

	h, err := NewFileHandler(FileConfig{Dir: dir, Keep: 2})
	require.NoError(t, err)

	require.NoError(t, h.Handle(entryAt(day, "today")))

	assert.Equal(t, []string{"2024-01-03.log", "2026-10-19.log", "notes.txt"}, listDir(t, dir))
}

func TestFileHandler_NegativeKeepRetainsAll(t *testing.T) {
	dir := t.TempDir()
	h, err := NewFileHandler(FileConfig{Dir: dir, Keep: -1})
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		require.NoError(t, h.Handle(entryAt(day.AddDate(0, 0, i), "line")))
	}
	assert.Len(t, listDir(t, dir), 5)
}

func TestFileHandler_TimezoneAndNestedPattern(t *testing.T) {
	dir := t.TempDir()
	h, err := NewFileHandler(FileConfig{Dir: dir, Pattern: "%Y/%m/%d.log"})
	require.NoError(t, err)

	// 23:30 on the 18th in UTC+2 is still the 18th in UTC
	ts := time.Date(2026, 10, 19, 1, 30, 0, 0, time.FixedZone("CEST", 2*3600))
	require.NoError(t, h.Handle(entryAt(ts, "late")))

	_, err = os.Stat(filepath.Join(dir, "2026", "10", "18.log"))
	assert.NoError(t, err)
}

func TestFileHandler_InvalidPattern(t *testing.T) {
	_, err := NewFileHandler(FileConfig{Dir: t.TempDir(), Pattern: "%Y-%J.log"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid file name pattern '%Y-%J.log'")
}

func TestFileHandler_Closed(t *testing.T) {
	dir := t.TempDir()
	h, err := NewFileHandler(FileConfig{Dir: dir})
	require.NoError(t, err)
	require.NoError(t, h.Close())

	assert.Error(t, h.Handle(entryAt(day, "late")))
	assert.Empty(t, listDir(t, dir))
}

func TestFileHandler_Concurrent(t *testing.T) {
	dir := t.TempDir()
	h, err := NewFileHandler(FileConfig{Dir: dir})
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 4; i++ {
		g.Go(func() error {
			for j := 0; j < 50; j++ {
				if err := h.Handle(entryAt(day, "concurrent")); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	data, err := os.ReadFile(filepath.Join(dir, "2026-10-19.log"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 200)
	for _, line := range lines {
		assert.Equal(t, "[09:30:00] info: concurrent", line)
	}
}

func TestGlobFromPattern(t *testing.T) {
	tests := map[string]string{
		"%Y-%m-%d.log":   "*-*-*.log",
		"app-%Y%m%d.log": "app-*.log",
		"100%%-%d.log":   "100%-*.log",
		"[x]-%d.log":     `\[x]-*.log`,
		"static.log":     "static.log",
		"trailing%":      "trailing%",
	}
	for pattern, want := range tests {
		assert.Equal(t, want, globFromPattern(pattern), pattern)
	}
}
