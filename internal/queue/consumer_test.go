package queue

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestHandleMessageAppendsLogLine(t *testing.T) {
	chdir(t, t.TempDir())

	body := []byte(`{"event_id":"ev-1","reservation_id":42,"user_id":7,"stall_id":12,"total_amount":150.5,"confirmed_at":"2026-08-30T10:00:00Z"}`)
	require.NoError(t, handleMessage(body))
	require.NoError(t, handleMessage(body))

	raw, err := os.ReadFile(filepath.Join("logs", "reservations.log"))
	require.NoError(t, err)

	line := "[2026-08-30T10:00:00Z] Reservation confirmed | event_id=ev-1 | reservation_id=42 | user_id=7 | stall_id=12 | total=150.50\n"
	assert.Equal(t, line+line, string(raw))
}

func TestHandleMessageRejectsMalformedPayload(t *testing.T) {
	chdir(t, t.TempDir())
	assert.Error(t, handleMessage([]byte(`{"event_id":`)))
}
