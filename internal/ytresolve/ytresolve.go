// Package ytresolve turns whatever the user pasted into the analysis form
// into a channel ID. Raw IDs pass through untouched; handles and URLs cost
// one page fetch.
package ytresolve

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	"github.com/Jeffail/gabs/v2"
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

var channelIDPattern = regexp.MustCompile(`^UC[0-9A-Za-z_-]{22}$`)

// ChannelID resolves raw input (a channel ID, an @handle, or a channel/
// video URL) to a channel ID, scraping the public page when necessary.
func ChannelID(ctx context.Context, httpClient *http.Client, raw string) (string, error) {
	raw = strings.TrimSpace(raw)

	if channelIDPattern.MatchString(raw) {
		return raw, nil
	}

	pageURL, err := pageURLFor(raw)
	if err != nil {
		return "", fmt.Errorf("ytresolve.ChannelID: %w", err)
	}

	id, err := channelIDFromPage(ctx, httpClient, pageURL)
	if err != nil {
		return "", fmt.Errorf("ytresolve.ChannelID: %w", err)
	}

	return id, nil
}

func pageURLFor(raw string) (string, error) {
	switch {
	case strings.HasPrefix(raw, "http:") || strings.HasPrefix(raw, "https:"):
		return raw, nil
	case strings.HasPrefix(raw, "@"):
		return "https://www.youtube.com/" + raw, nil
	case strings.HasPrefix(raw, "youtube.com/") || strings.HasPrefix(raw, "www.youtube.com/"):
		return "https://" + raw, nil
	default:
		return "", fmt.Errorf("ytresolve.pageURLFor: could not recognise %q as a channel id, handle, or url", raw)
	}
}

func channelIDFromPage(ctx context.Context, httpClient *http.Client, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("ytresolve.channelIDFromPage: %w", err)
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("ytresolve.channelIDFromPage: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ytresolve.channelIDFromPage: status code: %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return "", fmt.Errorf("ytresolve.channelIDFromPage: %w", err)
	}

	if id := doc.Find("meta[itemprop=channelId]").AttrOr("content", ""); channelIDPattern.MatchString(id) {
		return id, nil
	}

	// no meta tag; fall back to the initial-data blob
	for _, node := range doc.Find("script").Nodes {
		if node.FirstChild == nil || node.FirstChild.Type != html.TextNode {
			continue
		}

		jsContent := node.FirstChild.Data

		if !strings.HasPrefix(jsContent, "var ytInitialData =") {
			continue
		}

		jsContent = strings.TrimPrefix(jsContent, "var ytInitialData =")
		jsContent = strings.TrimSuffix(jsContent, ";")

		j, err := gabs.ParseJSON([]byte(jsContent))
		if err != nil {
			continue
		}

		if id, ok := j.Path("metadata.channelMetadataRenderer.externalId").Data().(string); ok && channelIDPattern.MatchString(id) {
			return id, nil
		}
	}

	return "", fmt.Errorf("ytresolve.channelIDFromPage: could not find a channel id in page")
}
