package models

import (
	"strconv"
	"strings"
	"time"
)

// EnrichedVideo is a Video plus the derived columns. Derivation happens
// exactly once, in enrich.Videos; nothing mutates these afterwards.
type EnrichedVideo struct {
	Video

	DurationSecs   float64 `json:"durationSecs"`
	TagsCount      int     `json:"tagsCount"`
	TitleLength    int     `json:"titleLength"`
	LikeRatio      float64 `json:"likeRatio"`
	CommentRatio   float64 `json:"commentRatio"`
	TitleSentiment float64 `json:"titleSentiment"`
	Engagement     float64 `json:"engagement"`
	PublishedHour  int     `json:"hour"`
	PublishedDay   string  `json:"day"`
}

// CSVHeader matches the enriched column set, raw fields first.
func CSVHeader() []string {
	return []string{
		"video_id",
		"title",
		"publishedAt",
		"tags",
		"viewCount",
		"likeCount",
		"commentCount",
		"duration",
		"durationSecs",
		"tagsCount",
		"titleLength",
		"likeRatio",
		"commentRatio",
		"titleSentiment",
		"engagement",
		"hour",
		"day",
	}
}

func (v EnrichedVideo) CSVRecord() []string {
	return []string{
		v.VideoID,
		v.Title,
		v.PublishedAt.UTC().Format(time.RFC3339),
		strings.Join(v.Tags, "|"),
		strconv.FormatInt(v.ViewCount, 10),
		strconv.FormatInt(v.LikeCount, 10),
		strconv.FormatInt(v.CommentCount, 10),
		v.Duration,
		strconv.FormatFloat(v.DurationSecs, 'f', -1, 64),
		strconv.Itoa(v.TagsCount),
		strconv.Itoa(v.TitleLength),
		strconv.FormatFloat(v.LikeRatio, 'f', -1, 64),
		strconv.FormatFloat(v.CommentRatio, 'f', -1, 64),
		strconv.FormatFloat(v.TitleSentiment, 'f', -1, 64),
		strconv.FormatFloat(v.Engagement, 'f', -1, 64),
		strconv.Itoa(v.PublishedHour),
		v.PublishedDay,
	}
}
