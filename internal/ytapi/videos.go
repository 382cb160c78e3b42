package ytapi

import (
	"context"
	"net/url"
	"strings"
	"time"

	"fknsrs.biz/p/ytstats/internal/ctxlogger"
	"fknsrs.biz/p/ytstats/models"
)

// Videos fetches per-video metadata in batches of BatchSize, one
// videos.list call each, concatenating results in batch order. A failing
// batch is logged and skipped; its videos are simply absent from the
// result.
func (c *Client) Videos(ctx context.Context, ids []string) []models.Video {
	var videos []models.Video

	for i := 0; i < len(ids); i += c.cfg.BatchSize {
		end := i + c.cfg.BatchSize
		if end > len(ids) {
			end = len(ids)
		}

		batch, err := c.videoBatch(ctx, ids[i:end])
		if err != nil {
			ctxlogger.GetLogger(ctx).WithError(err).WithField("batch_size", end-i).Warning("skipping failed video batch")
			continue
		}

		videos = append(videos, batch...)
	}

	return videos
}

func (c *Client) videoBatch(ctx context.Context, ids []string) ([]models.Video, error) {
	j, err := c.get(ctx, "videos", url.Values{
		"part": []string{"snippet,contentDetails,statistics"},
		"id":   []string{strings.Join(ids, ",")},
	})
	if err != nil {
		return nil, err
	}

	var videos []models.Video

	for _, item := range j.S("items").Children() {
		publishedAt, _ := time.Parse(time.RFC3339, stringAt(item, "snippet.publishedAt"))

		videos = append(videos, models.Video{
			VideoID:      stringAt(item, "id"),
			Title:        stringAt(item, "snippet.title"),
			PublishedAt:  publishedAt,
			Tags:         stringsAt(item, "snippet.tags"),
			ViewCount:    intAt(item, "statistics.viewCount"),
			LikeCount:    intAt(item, "statistics.likeCount"),
			CommentCount: intAt(item, "statistics.commentCount"),
			Duration:     stringAt(item, "contentDetails.duration"),
		})
	}

	return videos, nil
}
