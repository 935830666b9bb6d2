package logger

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, dir string) []map[string]any {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(dir, "*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	f, err := os.Open(files[0])
	require.NoError(t, err)
	defer f.Close()

	var entries []map[string]any
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		entries = append(entries, entry)
	}
	require.NoError(t, scanner.Err())
	return entries
}

func TestLoggerAdapter_WritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	log, err := NewLoggerAdapter(Config{Dir: dir, Level: "info", Session: "chat"})
	require.NoError(t, err)

	log.Debug("hidden")
	log.Info("Tool dispatched", "name", "sum_two_numbers", "durationMs", 3)
	log.WithField("conversation", "abc").Warn("Turn limit reached")
	log.WithFields(map[string]any{"turn": 2}).Error("Chat gateway failed")
	log.Named("mcp").Info("Remote tools discovered")
	require.NoError(t, log.Close())

	entries := readEntries(t, dir)
	require.Len(t, entries, 4)

	assert.Equal(t, "INFO", entries[0]["level"])
	assert.Equal(t, "Tool dispatched", entries[0]["message"])
	assert.Equal(t, "sum_two_numbers", entries[0]["name"])
	assert.Contains(t, entries[0], "timestamp")

	assert.Equal(t, "WARN", entries[1]["level"])
	assert.Equal(t, "abc", entries[1]["conversation"])

	assert.Equal(t, "ERROR", entries[2]["level"])
	assert.Equal(t, float64(2), entries[2]["turn"])

	assert.Equal(t, "mcp", entries[3]["component"])
	assert.NotContains(t, entries[0], "component")
}

func TestLoggerAdapter_InvalidLevel(t *testing.T) {
	_, err := NewLoggerAdapter(Config{Dir: t.TempDir(), Level: "loud"})
	assert.Error(t, err)
}

func TestSanitize(t *testing.T) {
	assert.Equal(t, "session", sanitize(""))
	assert.Equal(t, "chat_2_2", sanitize("chat 2+2"))
	assert.Len(t, sanitize(strings.Repeat("a", 100)), 60)
}
