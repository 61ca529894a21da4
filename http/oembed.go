package http

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/beevik/etree"
	"github.com/recipeclip/recipeclip"
)

var _ recipeclip.OEmbedService = (*OEmbedClient)(nil)

// oembedEndpoints maps each supported platform to its public oEmbed
// endpoint. The endpoint takes the post URL as the url query parameter.
var oembedEndpoints = map[recipeclip.SiteType]string{
	recipeclip.SiteTikTok:    "https://www.tiktok.com/oembed",
	recipeclip.SiteInstagram: "https://api.instagram.com/oembed",
}

// OEmbedClient resolves post URLs through platform oEmbed endpoints.
// Responses are JSON in practice; the oEmbed spec also permits XML, which is
// handled as a fallback decode.
type OEmbedClient struct {
	client    *http.Client
	userAgent string
	endpoints map[recipeclip.SiteType]string
}

// OEmbedOption configures an OEmbedClient.
type OEmbedOption func(*OEmbedClient)

// WithOEmbedTimeout sets the timeout for oEmbed requests.
// Defaults to DefaultFetchTimeout (10s).
func WithOEmbedTimeout(d time.Duration) OEmbedOption {
	return func(c *OEmbedClient) {
		c.client.Timeout = d
	}
}

// WithOEmbedEndpoint overrides the endpoint for one platform.
func WithOEmbedEndpoint(site recipeclip.SiteType, endpoint string) OEmbedOption {
	return func(c *OEmbedClient) {
		c.endpoints[site] = endpoint
	}
}

// NewOEmbedClient creates a new OEmbedClient.
func NewOEmbedClient(opts ...OEmbedOption) *OEmbedClient {
	endpoints := make(map[recipeclip.SiteType]string, len(oembedEndpoints))
	for site, endpoint := range oembedEndpoints {
		endpoints[site] = endpoint
	}
	c := &OEmbedClient{
		client:    &http.Client{Timeout: DefaultFetchTimeout},
		userAgent: DefaultUserAgent,
		endpoints: endpoints,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup resolves a post URL through the platform's oEmbed endpoint.
// Returns EINVALID for platforms without a known endpoint.
func (c *OEmbedClient) Lookup(ctx context.Context, site recipeclip.SiteType, postURL string) (*recipeclip.OEmbedInfo, error) {
	endpoint, ok := c.endpoints[site]
	if !ok {
		return nil, recipeclip.Errorf(recipeclip.EINVALID, "no oEmbed endpoint for site type %q", site)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?url="+url.QueryEscape(postURL), nil)
	if err != nil {
		return nil, recipeclip.Errorf(recipeclip.EINVALID, "invalid oEmbed request: %v", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, recipeclip.Errorf(recipeclip.EUNAVAILABLE, "oEmbed lookup for %s: %v", postURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "no oEmbed data for %s", postURL)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, recipeclip.Errorf(recipeclip.EUNAVAILABLE, "oEmbed HTTP %d for %s", resp.StatusCode, postURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, recipeclip.Errorf(recipeclip.EUNAVAILABLE, "read oEmbed response: %v", err)
	}

	info, err := decodeOEmbed(body)
	if err != nil {
		return nil, err
	}
	if info.Title == "" && info.ThumbnailURL == "" {
		return nil, recipeclip.Errorf(recipeclip.ENOTFOUND, "empty oEmbed response for %s", postURL)
	}
	return info, nil
}

// decodeOEmbed parses an oEmbed response body, JSON first, XML second.
func decodeOEmbed(body []byte) (*recipeclip.OEmbedInfo, error) {
	var payload struct {
		Title        string `json:"title"`
		AuthorName   string `json:"author_name"`
		ThumbnailURL string `json:"thumbnail_url"`
		ProviderName string `json:"provider_name"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		return &recipeclip.OEmbedInfo{
			Title:        payload.Title,
			AuthorName:   payload.AuthorName,
			ThumbnailURL: payload.ThumbnailURL,
			Provider:     payload.ProviderName,
		}, nil
	}

	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(body); err != nil {
		return nil, recipeclip.Errorf(recipeclip.EINVALID, "undecodable oEmbed response")
	}
	root := doc.Root()
	if root == nil || root.Tag != "oembed" {
		return nil, recipeclip.Errorf(recipeclip.EINVALID, "unexpected oEmbed XML root")
	}

	text := func(tag string) string {
		if el := root.SelectElement(tag); el != nil {
			return el.Text()
		}
		return ""
	}
	return &recipeclip.OEmbedInfo{
		Title:        text("title"),
		AuthorName:   text("author_name"),
		ThumbnailURL: text("thumbnail_url"),
		Provider:     text("provider_name"),
	}, nil
}
