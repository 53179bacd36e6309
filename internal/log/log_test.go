package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinesAreJSONKeyedByAction(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Error(nil, "booking.insert.fail", errors.New("disk full"), map[string]any{"photographer": "ph-001"})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "booking.insert.fail", line["action"])
	assert.Equal(t, "error", line["level"])
	assert.Equal(t, "disk full", line["err"])
	fields, ok := line["fields"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "ph-001", fields["photographer"])
}

func TestAuditFlag(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() { SetOutput(os.Stdout) })

	Audit(nil, "admin.photographer.delete", nil)

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, true, line["audit"])
	assert.Equal(t, "info", line["level"])
}
