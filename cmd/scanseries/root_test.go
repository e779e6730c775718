package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/backmassage/scanseries/internal/tiff/tifftest"
)

const stackComment = "scanimage\n" +
	"scanimage.SI.hStackManager.numSlices=5\n" +
	"scanimage.SI.hChannels.channelDisplay=1;2;3\n" +
	"scanimage.SI.acqsPerLoop=2"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	out, _, err := executeApp(t, args...)
	return out, err
}

// executeApp runs the root command and closes the app the way run does.
func executeApp(t *testing.T, args ...string) (string, *app, error) {
	t.Helper()
	var out bytes.Buffer
	cmd, a := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--color", "never"))
	err := cmd.Execute()
	require.NoError(t, a.close())
	return out.String(), a, err
}

func writeStack(t *testing.T, dir string, n int) {
	t.Helper()
	fs := afero.NewOsFs()
	for i := 1; i <= n; i++ {
		path := filepath.Join(dir, fmt.Sprintf("stack_%d.tif", i))
		require.NoError(t, tifftest.WriteFile(fs, path, tifftest.Pages(3, stackComment)...))
	}
}

func TestResolveCommand(t *testing.T) {
	dir := t.TempDir()
	writeStack(t, dir, 10)

	out, err := execute(t, "resolve", filepath.Join(dir, "stack_4.tif"), "-o", "json")
	require.NoError(t, err)

	var reports []struct {
		GroupOption string `json:"groupOption"`
		Descriptor  struct {
			Mode           string   `json:"mode"`
			CompanionFiles []string `json:"companionFiles"`
		} `json:"descriptor"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 1)
	require.Equal(t, "must-group", reports[0].GroupOption)
	require.Equal(t, "grouped", reports[0].Descriptor.Mode)
	require.Len(t, reports[0].Descriptor.CompanionFiles, 10)
}

func TestResolveCommand_Unreadable(t *testing.T) {
	_, err := execute(t, "resolve", filepath.Join(t.TempDir(), "missing.tif"))
	require.Error(t, err)
}

func TestScanCommand(t *testing.T) {
	dir := t.TempDir()
	writeStack(t, dir, 10)

	out, err := execute(t, "scan", dir)
	require.NoError(t, err)
	require.Contains(t, out, "grouped (must-group)")
	require.Contains(t, out, "Z=5 C=3 T=2 (10 planes)")
}

func TestSniffCommand(t *testing.T) {
	dir := t.TempDir()
	writeStack(t, dir, 1)
	other := filepath.Join(dir, "other.tif")
	require.NoError(t, tifftest.WriteFile(afero.NewOsFs(), other, tifftest.Pages(1, "ImageJ=1.53")...))

	out, err := execute(t, "sniff", filepath.Join(dir, "stack_1.tif"), other)
	require.NoError(t, err)
	require.Contains(t, out, "yes  "+filepath.Join(dir, "stack_1.tif"))
	require.Contains(t, out, "no   "+other)
}

func TestFailedCommandClosesLogFile(t *testing.T) {
	dir := t.TempDir()
	logFile := filepath.Join(dir, "scanseries.log")

	_, a, err := executeApp(t, "resolve", filepath.Join(dir, "missing.tif"), "--log", logFile)
	require.Error(t, err)
	require.Nil(t, a.log, "log sink released after a failing command")
	require.FileExists(t, logFile)
	require.NoError(t, a.close(), "closing twice is harmless")
}
