// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/33cn/splitsteal/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleLevel(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	SetLogLevel("warn")
	l := New("module", "test")
	l.Info("hidden message")
	l.Warn("shown message", "game", "7")

	out := buf.String()
	assert.NotContains(t, out, "hidden message")
	assert.Contains(t, out, "shown message")
	assert.Contains(t, out, "module")
}

func TestFileLog(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	path := filepath.Join(t.TempDir(), "splitsteal.log")
	SetFileLog(&types.Log{LogFile: path, Loglevel: "debug", LogConsoleLevel: "crit", MaxFileSize: 1})
	New("module", "file").Debug("to file", "n", 1)
	SetLogLevel("error")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
	assert.Empty(t, buf.String())
}

func TestSetOutputKeepsLevel(t *testing.T) {
	SetLogLevel("warn")
	defer SetLogLevel("error")

	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(os.Stderr)

	l := New("module", "test")
	l.Info("hidden message")
	l.Warn("redirected message")
	assert.NotContains(t, buf.String(), "hidden message")
	assert.Contains(t, buf.String(), "redirected message")
}

func TestGetLevel(t *testing.T) {
	assert.Equal(t, log15.LvlDebug, getLevel("debug"))
	assert.Equal(t, log15.LvlError, getLevel("loud"))
}
