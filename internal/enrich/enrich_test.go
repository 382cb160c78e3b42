package enrich

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fknsrs.biz/p/ytstats/models"
)

func TestVideos(t *testing.T) {
	a := assert.New(t)

	vs := Videos([]models.Video{
		{
			VideoID:      "vid00000001",
			Title:        "An absolutely wonderful day out",
			PublishedAt:  time.Date(2023, 4, 7, 15, 30, 0, 0, time.UTC),
			Tags:         []string{"travel", "vlog"},
			ViewCount:    10000,
			LikeCount:    500,
			CommentCount: 50,
			Duration:     "PT1H2M3S",
		},
	})

	require.Len(t, vs, 1)
	v := vs[0]

	a.Equal(3723.0, v.DurationSecs)
	a.Equal(2, v.TagsCount)
	a.Equal(31, v.TitleLength)
	a.Equal(50.0, v.LikeRatio)
	a.Equal(5.0, v.CommentRatio)
	a.InDelta(0.055, v.Engagement, 1e-9)
	a.Greater(v.TitleSentiment, 0.0)
	a.Equal(15, v.PublishedHour)
	a.Equal("Friday", v.PublishedDay)
}

func TestVideosZeroViews(t *testing.T) {
	a := assert.New(t)

	vs := Videos([]models.Video{
		{VideoID: "vid00000002", LikeCount: 10, CommentCount: 5},
	})

	require.Len(t, vs, 1)

	// never divide by a zero view count
	a.Equal(0.0, vs[0].LikeRatio)
	a.Equal(0.0, vs[0].CommentRatio)
	a.Equal(0.0, vs[0].Engagement)
}

func TestVideosBadDuration(t *testing.T) {
	a := assert.New(t)

	vs := Videos([]models.Video{
		{VideoID: "vid00000003", Duration: "not a duration"},
		{VideoID: "vid00000004"},
	})

	require.Len(t, vs, 2)

	a.Equal(0.0, vs[0].DurationSecs)
	a.Equal(0.0, vs[1].DurationSecs)
}

func TestVideosNoTagsNoPublishDate(t *testing.T) {
	a := assert.New(t)

	vs := Videos([]models.Video{{VideoID: "vid00000005", ViewCount: 1}})

	require.Len(t, vs, 1)

	a.Equal(0, vs[0].TagsCount)
	a.Equal(0, vs[0].PublishedHour)
	a.Equal("", vs[0].PublishedDay)
}

func TestTitleLengthCountsRunes(t *testing.T) {
	vs := Videos([]models.Video{{Title: "héllo"}})

	assert.Equal(t, 5, vs[0].TitleLength)
}

func TestTitleSentiment(t *testing.T) {
	a := assert.New(t)

	a.Equal(0.0, TitleSentiment(""))
	a.Greater(TitleSentiment("This is a great and happy video"), 0.0)
	a.Less(TitleSentiment("This is a terrible, awful disaster"), 0.0)
}
