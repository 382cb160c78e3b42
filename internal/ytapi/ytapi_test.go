package ytapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(handler http.HandlerFunc) (*Client, *httptest.Server) {
	server := httptest.NewServer(handler)

	return New(Config{
		APIKey:  "test-key",
		BaseURL: server.URL,
	}), server
}

func playlistItemsPage(ids []string, nextPageToken string) string {
	items := make([]map[string]interface{}, len(ids))
	for i, id := range ids {
		items[i] = map[string]interface{}{
			"contentDetails": map[string]interface{}{"videoId": id},
		}
	}

	page := map[string]interface{}{"items": items}
	if nextPageToken != "" {
		page["nextPageToken"] = nextPageToken
	}

	d, _ := json.Marshal(page)
	return string(d)
}

func makeIDs(prefix string, n int) []string {
	ids := make([]string, n)
	for i := range ids {
		ids[i] = fmt.Sprintf("%s%03d", prefix, i)
	}
	return ids
}

func TestAllVideoIDs(t *testing.T) {
	a := assert.New(t)

	// two full pages and one partial page
	pages := map[string]string{
		"":      playlistItemsPage(makeIDs("a", 50), "page2"),
		"page2": playlistItemsPage(makeIDs("b", 50), "page3"),
		"page3": playlistItemsPage(makeIDs("c", 7), ""),
	}

	var requests int

	c, server := newTestClient(func(rw http.ResponseWriter, r *http.Request) {
		requests++

		a.Equal("/playlistItems", r.URL.Path)
		a.Equal("UUxxxxxxxxxxxxxxxxxxxxxx", r.URL.Query().Get("playlistId"))
		a.Equal("50", r.URL.Query().Get("maxResults"))
		a.Equal("test-key", r.URL.Query().Get("key"))

		fmt.Fprint(rw, pages[r.URL.Query().Get("pageToken")])
	})
	defer server.Close()

	ids := c.AllVideoIDs(context.Background(), "UUxxxxxxxxxxxxxxxxxxxxxx")

	a.Equal(3, requests)
	a.Len(ids, 107)

	var expected []string
	expected = append(expected, makeIDs("a", 50)...)
	expected = append(expected, makeIDs("b", 50)...)
	expected = append(expected, makeIDs("c", 7)...)
	a.Equal(expected, ids)

	seen := make(map[string]bool)
	for _, id := range ids {
		a.False(seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestAllVideoIDsTruncatesOnError(t *testing.T) {
	a := assert.New(t)

	c, server := newTestClient(func(rw http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("pageToken") == "" {
			fmt.Fprint(rw, playlistItemsPage(makeIDs("a", 50), "page2"))
			return
		}

		http.Error(rw, `{"error":{"message":"quota exceeded"}}`, http.StatusForbidden)
	})
	defer server.Close()

	ids := c.AllVideoIDs(context.Background(), "UUxxxxxxxxxxxxxxxxxxxxxx")

	a.Equal(makeIDs("a", 50), ids)
}

func TestPagerNextError(t *testing.T) {
	a := assert.New(t)

	c, server := newTestClient(func(rw http.ResponseWriter, r *http.Request) {
		http.Error(rw, `{"error":{"message":"quota exceeded"}}`, http.StatusForbidden)
	})
	defer server.Close()

	p := c.PlaylistItems("UUxxxxxxxxxxxxxxxxxxxxxx")

	ids, err := p.Next(context.Background())
	a.Nil(ids)
	if a.Error(err) {
		a.Contains(err.Error(), "quota exceeded")
	}
	a.True(p.Done())
}

func TestVideosBatching(t *testing.T) {
	a := assert.New(t)

	var batches [][]string

	c, server := newTestClient(func(rw http.ResponseWriter, r *http.Request) {
		a.Equal("/videos", r.URL.Path)

		ids := strings.Split(r.URL.Query().Get("id"), ",")
		batches = append(batches, ids)

		items := make([]map[string]interface{}, len(ids))
		for i, id := range ids {
			items[i] = map[string]interface{}{
				"id": id,
				"snippet": map[string]interface{}{
					"title":       "video " + id,
					"publishedAt": "2023-04-01T12:34:56Z",
				},
				"statistics": map[string]interface{}{
					"viewCount":    "1000",
					"likeCount":    "100",
					"commentCount": "10",
				},
				"contentDetails": map[string]interface{}{"duration": "PT1M"},
			}
		}

		d, _ := json.Marshal(map[string]interface{}{"items": items})
		rw.Write(d)
	})
	defer server.Close()

	ids := makeIDs("v", 120)
	videos := c.Videos(context.Background(), ids)

	require.Len(t, batches, 3)
	a.Len(batches[0], 50)
	a.Len(batches[1], 50)
	a.Len(batches[2], 20)

	require.Len(t, videos, 120)
	for i, v := range videos {
		a.Equal(ids[i], v.VideoID)
	}
	a.Equal(int64(1000), videos[0].ViewCount)
	a.Equal("PT1M", videos[0].Duration)
}

func TestVideosSkipsFailedBatch(t *testing.T) {
	a := assert.New(t)

	var requests int

	c, server := newTestClient(func(rw http.ResponseWriter, r *http.Request) {
		requests++

		if requests == 2 {
			http.Error(rw, `{"error":{"message":"backend error"}}`, http.StatusInternalServerError)
			return
		}

		ids := strings.Split(r.URL.Query().Get("id"), ",")
		items := make([]map[string]interface{}, len(ids))
		for i, id := range ids {
			items[i] = map[string]interface{}{"id": id}
		}

		d, _ := json.Marshal(map[string]interface{}{"items": items})
		rw.Write(d)
	})
	defer server.Close()

	videos := c.Videos(context.Background(), makeIDs("v", 120))

	a.Equal(3, requests)
	a.Len(videos, 70)
}

func TestChannels(t *testing.T) {
	a := assert.New(t)

	c, server := newTestClient(func(rw http.ResponseWriter, r *http.Request) {
		a.Equal("/channels", r.URL.Path)
		a.Equal("snippet,contentDetails,statistics", r.URL.Query().Get("part"))
		a.Equal("UCaaaaaaaaaaaaaaaaaaaaaa,UCbbbbbbbbbbbbbbbbbbbbbb", r.URL.Query().Get("id"))

		fmt.Fprint(rw, `{
			"items": [
				{
					"id": "UCaaaaaaaaaaaaaaaaaaaaaa",
					"snippet": {"title": "Channel A"},
					"statistics": {"subscriberCount": "12000", "viewCount": "3400000", "videoCount": "210"},
					"contentDetails": {"relatedPlaylists": {"uploads": "UUaaaaaaaaaaaaaaaaaaaaaa"}}
				},
				{
					"id": "UCbbbbbbbbbbbbbbbbbbbbbb",
					"snippet": {"title": "Channel B"},
					"statistics": {"viewCount": "99"},
					"contentDetails": {"relatedPlaylists": {"uploads": "UUbbbbbbbbbbbbbbbbbbbbbb"}}
				}
			]
		}`)
	})
	defer server.Close()

	channels, err := c.Channels(context.Background(), []string{"UCaaaaaaaaaaaaaaaaaaaaaa", "UCbbbbbbbbbbbbbbbbbbbbbb"})
	a.NoError(err)

	require.Len(t, channels, 2)

	a.Equal("Channel A", channels[0].ChannelName)
	a.Equal(int64(12000), channels[0].SubscriberCount)
	a.Equal(int64(3400000), channels[0].ViewCount)
	a.Equal(int64(210), channels[0].VideoCount)
	a.Equal("UUaaaaaaaaaaaaaaaaaaaaaa", channels[0].UploadsPlaylistID)

	// hidden subscriber counts come back absent, not zero-valued strings
	a.Equal(int64(0), channels[1].SubscriberCount)
}

func TestChannelsError(t *testing.T) {
	a := assert.New(t)

	c, server := newTestClient(func(rw http.ResponseWriter, r *http.Request) {
		http.Error(rw, `{"error":{"message":"API key not valid"}}`, http.StatusBadRequest)
	})
	defer server.Close()

	channels, err := c.Channels(context.Background(), []string{"UCaaaaaaaaaaaaaaaaaaaaaa"})
	a.Nil(channels)
	if a.Error(err) {
		a.Contains(err.Error(), "API key not valid")
	}
}
