package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fknsrs.biz/p/ytstats/models"
)

func TestTopByViews(t *testing.T) {
	a := assert.New(t)

	vs := []models.EnrichedVideo{
		{Video: models.Video{VideoID: "a", ViewCount: 10}},
		{Video: models.Video{VideoID: "b", ViewCount: 30}},
		{Video: models.Video{VideoID: "c", ViewCount: 20}},
	}

	top := TopByViews(vs, 2)

	require.Len(t, top, 2)
	a.Equal("b", top[0].VideoID)
	a.Equal("c", top[1].VideoID)

	// input order untouched
	a.Equal("a", vs[0].VideoID)
}

func TestQuartiles(t *testing.T) {
	a := assert.New(t)

	q := Quartiles([]float64{1, 2, 3, 4, 5})
	a.Equal([5]float64{1, 2, 3, 4, 5}, q)

	q = Quartiles([]float64{1, 2, 3, 4})
	a.Equal(1.0, q[0])
	a.Equal(1.75, q[1])
	a.Equal(2.5, q[2])
	a.Equal(3.25, q[3])
	a.Equal(4.0, q[4])

	a.Equal([5]float64{}, Quartiles(nil))
}

func TestHistogram(t *testing.T) {
	a := assert.New(t)

	labels, counts := Histogram([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 2)

	require.Len(t, labels, 2)
	require.Len(t, counts, 2)

	// the maximum lands in the last bucket, not past it
	a.Equal(5, counts[0])
	a.Equal(6, counts[1])

	labels, counts = Histogram([]float64{7, 7, 7}, 5)
	a.Equal([]string{"7"}, labels)
	a.Equal([]int{3}, counts)

	labels, counts = Histogram(nil, 5)
	a.Nil(labels)
	a.Nil(counts)
}

func TestDayHourEngagement(t *testing.T) {
	a := assert.New(t)

	days, means := DayHourEngagement([]models.EnrichedVideo{
		{PublishedDay: "Monday", PublishedHour: 9, Engagement: 0.1},
		{PublishedDay: "Monday", PublishedHour: 9, Engagement: 0.3},
		{PublishedDay: "Sunday", PublishedHour: 23, Engagement: 0.5},
		{PublishedDay: "", PublishedHour: 0, Engagement: 9.9},
	})

	a.Equal("Monday", days[0])
	a.InDelta(0.2, means[0][9], 1e-9)
	a.Equal(0.5, means[6][23])
	a.Equal(0.0, means[0][0])
}

func TestDashboardRenders(t *testing.T) {
	a := assert.New(t)

	ds := &models.Dataset{
		Name: "channel-a",
		Videos: []models.EnrichedVideo{
			{
				Video: models.Video{
					VideoID:      "vid00000001",
					Title:        "first video",
					PublishedAt:  time.Date(2023, 4, 7, 15, 30, 0, 0, time.UTC),
					ViewCount:    1000,
					LikeCount:    100,
					CommentCount: 10,
				},
				DurationSecs:  60,
				LikeRatio:     100,
				CommentRatio:  10,
				Engagement:    0.11,
				PublishedHour: 15,
				PublishedDay:  "Friday",
			},
			{
				Video: models.Video{
					VideoID:     "vid00000002",
					Title:       "second video",
					PublishedAt: time.Date(2023, 4, 8, 9, 0, 0, 0, time.UTC),
					ViewCount:   500,
					LikeCount:   5,
				},
				DurationSecs:  120,
				LikeRatio:     10,
				Engagement:    0.01,
				PublishedHour: 9,
				PublishedDay:  "Saturday",
			},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Dashboard(ds).Render(&buf))

	html := buf.String()
	a.Contains(html, "Top 10 videos by view count")
	a.Contains(html, "Title sentiment vs views")
	a.Contains(html, "Like and comment ratio distributions")
	a.Contains(html, "Video duration distribution")
	a.Contains(html, "Views vs likes")
	a.Contains(html, "Engagement over time")
	a.Contains(html, "Mean engagement by day and hour")
}
