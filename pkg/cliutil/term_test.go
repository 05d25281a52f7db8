package cliutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTerminalWidth(t *testing.T) {
	t.Parallel()
	notATerminal, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	t.Cleanup(func() { _ = notATerminal.Close() })
	fd := int(notATerminal.Fd())

	assert.Equal(t, 120, terminalWidth("120", fd))
	assert.Equal(t, 0, terminalWidth("0", fd))
	assert.Equal(t, 0, terminalWidth("", fd))
	assert.Equal(t, 0, terminalWidth("wide", fd))
}
