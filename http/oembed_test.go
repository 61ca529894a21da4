package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/recipeclip/recipeclip"
	recipehttp "github.com/recipeclip/recipeclip/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOEmbedClient_Lookup(t *testing.T) {
	t.Parallel()

	t.Run("decodes JSON response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "https://www.tiktok.com/@cook/video/123", r.URL.Query().Get("url"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{
				"title": "Garlic Butter Shrimp Pasta 🍝",
				"author_name": "cook",
				"thumbnail_url": "https://cdn.example.com/thumb.jpg",
				"provider_name": "TikTok"
			}`))
		}))
		defer server.Close()

		client := recipehttp.NewOEmbedClient(
			recipehttp.WithOEmbedEndpoint(recipeclip.SiteTikTok, server.URL))

		info, err := client.Lookup(context.Background(), recipeclip.SiteTikTok, "https://www.tiktok.com/@cook/video/123")
		require.NoError(t, err)

		assert.Equal(t, "Garlic Butter Shrimp Pasta 🍝", info.Title)
		assert.Equal(t, "cook", info.AuthorName)
		assert.Equal(t, "https://cdn.example.com/thumb.jpg", info.ThumbnailURL)
		assert.Equal(t, "TikTok", info.Provider)
	})

	t.Run("decodes XML response", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/xml")
			_, _ = w.Write([]byte(`<?xml version="1.0" encoding="utf-8"?>
<oembed>
  <title>Brown Butter Cookies</title>
  <author_name>baker</author_name>
  <thumbnail_url>https://cdn.example.com/cookies.jpg</thumbnail_url>
  <provider_name>Instagram</provider_name>
</oembed>`))
		}))
		defer server.Close()

		client := recipehttp.NewOEmbedClient(
			recipehttp.WithOEmbedEndpoint(recipeclip.SiteInstagram, server.URL))

		info, err := client.Lookup(context.Background(), recipeclip.SiteInstagram, "https://www.instagram.com/p/abc/")
		require.NoError(t, err)

		assert.Equal(t, "Brown Butter Cookies", info.Title)
		assert.Equal(t, "Instagram", info.Provider)
	})

	t.Run("unknown site type is invalid", func(t *testing.T) {
		t.Parallel()

		client := recipehttp.NewOEmbedClient()
		_, err := client.Lookup(context.Background(), recipeclip.SiteRecipeSite, "https://example.com/x")

		require.Error(t, err)
		assert.Equal(t, recipeclip.EINVALID, recipeclip.ErrorCode(err))
	})

	t.Run("404 is not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := recipehttp.NewOEmbedClient(
			recipehttp.WithOEmbedEndpoint(recipeclip.SiteTikTok, server.URL))

		_, err := client.Lookup(context.Background(), recipeclip.SiteTikTok, "https://www.tiktok.com/@x/video/1")
		require.Error(t, err)
		assert.Equal(t, recipeclip.ENOTFOUND, recipeclip.ErrorCode(err))
	})

	t.Run("empty payload is not found", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		client := recipehttp.NewOEmbedClient(
			recipehttp.WithOEmbedEndpoint(recipeclip.SiteTikTok, server.URL))

		_, err := client.Lookup(context.Background(), recipeclip.SiteTikTok, "https://www.tiktok.com/@x/video/1")
		require.Error(t, err)
		assert.Equal(t, recipeclip.ENOTFOUND, recipeclip.ErrorCode(err))
	})

	t.Run("undecodable body is invalid", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not oembed at all"))
		}))
		defer server.Close()

		client := recipehttp.NewOEmbedClient(
			recipehttp.WithOEmbedEndpoint(recipeclip.SiteTikTok, server.URL))

		_, err := client.Lookup(context.Background(), recipeclip.SiteTikTok, "https://www.tiktok.com/@x/video/1")
		require.Error(t, err)
		assert.Equal(t, recipeclip.EINVALID, recipeclip.ErrorCode(err))
	})
}
