// Package enrich derives per-video metrics from the raw metadata: parsed
// durations, engagement ratios, title sentiment, and publish-time buckets.
// Everything here is pure; the input slice is never modified.
package enrich

import (
	"unicode/utf8"

	"github.com/grassmudhorses/vader-go/lexicon"
	"github.com/grassmudhorses/vader-go/sentitext"

	"fknsrs.biz/p/ytstats/internal/timeutil"
	"fknsrs.biz/p/ytstats/models"
)

// Videos computes the derived metrics for each video. Ratio metrics are zero
// when the view count is zero, and a duration that fails to parse counts as
// zero seconds rather than poisoning the row.
func Videos(vs []models.Video) []models.EnrichedVideo {
	enriched := make([]models.EnrichedVideo, len(vs))

	for i, v := range vs {
		enriched[i] = one(v)
	}

	return enriched
}

func one(v models.Video) models.EnrichedVideo {
	e := models.EnrichedVideo{
		Video:          v,
		TagsCount:      len(v.Tags),
		TitleLength:    utf8.RuneCountInString(v.Title),
		TitleSentiment: TitleSentiment(v.Title),
	}

	if d, err := timeutil.ParseDayTimeDuration(v.Duration); err == nil {
		e.DurationSecs = d.Seconds()
	}

	if v.ViewCount > 0 {
		views := float64(v.ViewCount)
		e.LikeRatio = float64(v.LikeCount) / views * 1000
		e.CommentRatio = float64(v.CommentCount) / views * 1000
		e.Engagement = (float64(v.LikeCount) + float64(v.CommentCount)) / views
	}

	if !v.PublishedAt.IsZero() {
		e.PublishedHour = v.PublishedAt.Hour()
		e.PublishedDay = v.PublishedAt.Weekday().String()
	}

	return e
}

// TitleSentiment scores a title with the VADER lexicon, returning the
// compound polarity in [-1, 1]. Empty or purely neutral titles score zero.
func TitleSentiment(title string) float64 {
	if title == "" {
		return 0
	}

	return sentitext.PolarityScore(sentitext.Parse(title, lexicon.DefaultLexicon)).Compound
}
