package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"hapticglove/core"
	"hapticglove/host/glove"
	"hapticglove/host/serial"
	"hapticglove/protocol"
)

func TestParsePulse(t *testing.T) {
	req, err := parsePulse([]string{"both", "ring", "0.8", "0.3"})
	require.NoError(t, err)
	assert.Equal(t, protocol.PulseRequest{
		Hand:     protocol.HandBoth,
		Location: protocol.Ring,
		Strength: 0.8,
		Duration: 0.3,
	}, req)

	badArgs := [][]string{
		{"both", "ring", "0.8"},
		{"feet", "ring", "0.8", "0.3"},
		{"left", "toe", "0.8", "0.3"},
		{"left", "ring", "strong", "0.3"},
		{"left", "ring", "0.8", "long"},
	}
	for _, args := range badArgs {
		_, err := parsePulse(args)
		assert.Error(t, err, strings.Join(args, " "))
	}
}

func TestRunShell(t *testing.T) {
	var out bytes.Buffer

	ctrl := glove.New(
		glove.WithClock(core.NewManualClock(0)),
		glove.WithLogger(zap.NewNop()),
		glove.WithOpener(dumpOpener(&out)),
	)
	_, err := ctrl.Initialize("3", "4")
	require.NoError(t, err)
	defer ctrl.Close()

	input := strings.NewReader(strings.Join([]string{
		"status",
		"pulse both ring 0.8 0.3",
		"p left ring 0.8 0.3",
		"pulse left",
		"wiggle",
		"quit",
		"pulse right thumb 1 1",
	}, "\n"))

	require.NoError(t, runShell(ctrl, input, &out))

	text := out.String()
	assert.Contains(t, text, "state: ready, left ready: true, right ready: true")
	assert.Contains(t, text, "3: 08 cc 9a 99 99 3e 00 00")
	assert.Contains(t, text, "4: 08 cc 9a 99 99 3e 00 00")
	assert.Contains(t, text, "left: sent, right: sent")
	assert.Contains(t, text, "left: suppressed, right: skipped")
	assert.Contains(t, text, "Unknown command: wiggle")
	assert.Contains(t, text, "Goodbye!")
	assert.NotContains(t, text, "thumb", "commands after quit are not run")
}

func TestPulseCommandDryRun(t *testing.T) {
	var out bytes.Buffer

	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs([]string{
		"pulse", "left", "index", "0.5", "0.2",
		"--dry-run",
		"--left", "3",
		"--right", "4",
		"--config", filepath.Join(t.TempDir(), "missing.yaml"),
	})
	defer rootCmd.SetArgs(nil)

	require.NoError(t, rootCmd.Execute())

	text := out.String()
	assert.Contains(t, text, "3: 02 80 cd cc 4c 3e 00 00")
	assert.Contains(t, text, "left: sent, right: skipped")
}

func TestCloseControllerLogsPortErrors(t *testing.T) {
	opener := serial.NewMockOpener()
	obsCore, logs := observer.New(zap.WarnLevel)

	ctrl := glove.New(
		glove.WithClock(core.NewManualClock(0)),
		glove.WithOpener(glove.SerialOpener(*serial.DefaultConfig(""), opener.Open)),
	)
	_, err := ctrl.Initialize("3", "4")
	require.NoError(t, err)

	opener.Port(serial.ResolveDevice("4")).CloseError = errors.New("busy")

	closeController(ctrl, zap.New(obsCore))

	entries := logs.FilterMessage("Failed to close glove ports").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "busy")
	assert.Equal(t, glove.StateClosed, ctrl.State())

	// A clean close logs nothing
	ctrl = glove.New(glove.WithOpener(dumpOpener(&bytes.Buffer{})))
	_, err = ctrl.Initialize("3", "4")
	require.NoError(t, err)
	closeController(ctrl, zap.New(obsCore))
	assert.Equal(t, 1, logs.Len())
}

func TestDumpSinkRejectsNonFrames(t *testing.T) {
	sink := &dumpSink{port: "x", out: &bytes.Buffer{}}
	_, err := sink.Write([]byte{1, 2, 3})
	assert.ErrorIs(t, err, protocol.ErrBadFrame)
}
