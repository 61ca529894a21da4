//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/recipeclip/recipeclip"
	"github.com/recipeclip/recipeclip/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render_ReturnsRenderedHTML(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<div id="caption"></div>
			<script>document.getElementById("caption").textContent = "hydrated caption";</script>
		</body></html>`))
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer(rod.WithSettleDelay(50 * time.Millisecond))
	require.NoError(t, err)
	defer renderer.Close()

	html, err := renderer.Render(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, html, "hydrated caption")
}

func TestRenderer_Render_ContextCancellation(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = renderer.Render(ctx, srv.URL)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRenderer_Render_TimeoutIsClassified(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {}
	}))
	defer srv.Close()

	renderer, err := rod.NewRenderer()
	require.NoError(t, err)
	defer renderer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err = renderer.Render(ctx, srv.URL)
	require.Error(t, err)
	assert.Equal(t, recipeclip.ETIMEOUT, recipeclip.ErrorCode(err))
}

func TestBrowserManager_RecyclesBrowserAfterMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(3))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.IncrementPageCount()
	manager.IncrementPageCount()
	manager.IncrementPageCount()

	secondBrowser := manager.Browser()
	require.NotNil(t, secondBrowser)

	assert.NotSame(t, firstBrowser, secondBrowser)
}

func TestBrowserManager_DoesNotRecycleBeforeMaxPages(t *testing.T) {
	t.Parallel()

	manager, err := rod.NewBrowserManager(rod.WithMaxPages(5))
	require.NoError(t, err)
	defer manager.Close()

	firstBrowser := manager.Browser()
	require.NotNil(t, firstBrowser)

	manager.IncrementPageCount()
	manager.IncrementPageCount()

	assert.Same(t, firstBrowser, manager.Browser())
}
