package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestChildArgsConfigPrecedesSubcommand(t *testing.T) {
	require.Equal(t,
		[]string{"-c", "/etc/eleganza/config.yml", "serve"},
		childArgs("/etc/eleganza/config.yml"))
}
