package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Zachkp/portfolio/internal/config"
	"github.com/Zachkp/portfolio/internal/content"
	"github.com/Zachkp/portfolio/internal/visits"
)

func TestUnknownIcons(t *testing.T) {
	doc := &content.Document{
		Hero: content.Hero{FloatingCards: []content.Card{{Icon: "FaBug"}, {Icon: "FaRocket"}}},
		Projects: []content.Project{
			{Title: "a", Icon: "SiGit"},
			{Title: "b", Icon: ""},
		},
	}

	refs := unknownIcons(doc)
	assert.Equal(t, []iconRef{
		{Where: "hero.floatingCards[1]", Name: "FaRocket"},
		{Where: "projects[1]", Name: ""},
	}, refs)

	var buf bytes.Buffer
	printUnknownIcons(&buf, refs)
	assert.Contains(t, buf.String(), `unknown icon "FaRocket", using FaCode`)
}

func TestBundledContentHasNoUnknownIcons(t *testing.T) {
	doc, err := content.Load("")
	require.NoError(t, err)
	assert.Empty(t, unknownIcons(doc))
}

func TestCopyStatic(t *testing.T) {
	src := fstest.MapFS{
		"app.css":                {Data: []byte("body{}")},
		"images/project-api.svg": {Data: []byte("<svg/>")},
	}
	dst := filepath.Join(t.TempDir(), "static")

	n, err := copyStatic(src, dst)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	data, err := os.ReadFile(filepath.Join(dst, "images", "project-api.svg"))
	require.NoError(t, err)
	assert.Equal(t, "<svg/>", string(data))
}

func TestPruneLoopStopsOnCancel(t *testing.T) {
	ledger, err := visits.OpenLedger(":memory:", "salt")
	require.NoError(t, err)
	defer ledger.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		pruneLoop(ctx, ledger, time.Hour, zap.NewNop())
		close(done)
	}()

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("pruneLoop did not return after cancel")
	}
}

func TestNewAppLogsGeneratedTokenInDebugMode(t *testing.T) {
	t.Cleanup(func() { gin.SetMode(gin.TestMode) })

	c := config.DefaultConfig()
	c.Mode = "debug"
	c.Counter.Enabled = false
	c.MCP.Enabled = false

	core, logs := observer.New(zapcore.InfoLevel)
	a, err := newApp(c, zap.New(core))
	require.NoError(t, err)
	defer a.Close()

	entries := logs.FilterMessage("admin token (dev only)").All()
	require.Len(t, entries, 1)
	assert.NotEmpty(t, entries[0].ContextMap()["token"])
}
