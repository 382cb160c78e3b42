package ytapi

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"fknsrs.biz/p/ytstats/models"
)

// Channels looks up channel summaries in one batched channels.list call.
// The endpoint accepts up to BatchSize IDs per call; callers here never get
// anywhere near that. A remote error yields no records and is the caller's
// to report.
func (c *Client) Channels(ctx context.Context, ids []string) ([]models.Channel, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	j, err := c.get(ctx, "channels", url.Values{
		"part": []string{"snippet,contentDetails,statistics"},
		"id":   []string{strings.Join(ids, ",")},
	})
	if err != nil {
		return nil, fmt.Errorf("ytapi.Client.Channels: %w", err)
	}

	var channels []models.Channel

	for _, item := range j.S("items").Children() {
		channels = append(channels, models.Channel{
			ChannelID:         stringAt(item, "id"),
			ChannelName:       stringAt(item, "snippet.title"),
			SubscriberCount:   intAt(item, "statistics.subscriberCount"),
			ViewCount:         intAt(item, "statistics.viewCount"),
			VideoCount:        intAt(item, "statistics.videoCount"),
			UploadsPlaylistID: stringAt(item, "contentDetails.relatedPlaylists.uploads"),
		})
	}

	return channels, nil
}
