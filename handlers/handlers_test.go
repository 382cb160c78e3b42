package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fknsrs.biz/p/ytstats/internal/ctxdataset"
	"fknsrs.biz/p/ytstats/internal/ctxyoutube"
	"fknsrs.biz/p/ytstats/internal/ytapi"
	"fknsrs.biz/p/ytstats/models"
)

func testDataset() *models.Dataset {
	return &models.Dataset{
		Name:      "channel-a",
		FetchedAt: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC),
		Channels: []models.Channel{
			{ChannelID: "UCaaaaaaaaaaaaaaaaaaaaaa", ChannelName: "Channel A"},
		},
		Videos: []models.EnrichedVideo{
			{
				Video: models.Video{
					VideoID:     "vid00000001",
					Title:       "first video",
					PublishedAt: time.Date(2023, 4, 7, 15, 30, 0, 0, time.UTC),
					Tags:        []string{"travel", "vlog"},
					ViewCount:   1000,
					LikeCount:   100,
					Duration:    "PT1M",
				},
				DurationSecs:  60,
				TagsCount:     2,
				TitleLength:   11,
				LikeRatio:     100,
				Engagement:    0.1,
				PublishedHour: 15,
				PublishedDay:  "Friday",
			},
		},
	}
}

func requestWithStore(method, target string, ds *models.Dataset) *http.Request {
	store := ctxdataset.NewStore()
	if ds != nil {
		store.Replace(ds)
	}

	r := httptest.NewRequest(method, target, nil)
	return r.WithContext(ctxdataset.WithStore(r.Context(), store))
}

func TestExportCSV(t *testing.T) {
	a := assert.New(t)

	rw := httptest.NewRecorder()
	ExportCSV(rw, requestWithStore(http.MethodGet, "/export.csv", testDataset()))

	a.Equal(http.StatusOK, rw.Code)
	a.Equal("text/csv; charset=utf-8", rw.Header().Get("content-type"))
	a.Equal(`attachment; filename="channel-a.csv"`, rw.Header().Get("content-disposition"))

	records, err := csv.NewReader(rw.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	a.Equal(models.CSVHeader(), records[0])
	a.Equal("vid00000001", records[1][0])
	a.Equal("travel|vlog", records[1][3])
	a.Equal("60", records[1][8])
	a.Equal("0.1", records[1][14])
}

func TestExportCSVNoDataset(t *testing.T) {
	a := assert.New(t)

	rw := httptest.NewRecorder()
	ExportCSV(rw, requestWithStore(http.MethodGet, "/export.csv", nil))

	a.Equal(http.StatusFound, rw.Code)
	a.Contains(rw.Header().Get("location"), "information=")
}

func TestDashboardNoDataset(t *testing.T) {
	a := assert.New(t)

	rw := httptest.NewRecorder()
	Dashboard(rw, requestWithStore(http.MethodGet, "/dashboard", nil))

	a.Equal(http.StatusFound, rw.Code)
	a.Contains(rw.Header().Get("location"), "information=")
}

func TestDashboard(t *testing.T) {
	a := assert.New(t)

	rw := httptest.NewRecorder()
	Dashboard(rw, requestWithStore(http.MethodGet, "/dashboard", testDataset()))

	a.Equal(http.StatusOK, rw.Code)
	a.Contains(rw.Body.String(), "Top 10 videos by view count")
}

func TestAnalyzeAction(t *testing.T) {
	a := assert.New(t)

	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/channels":
			fmt.Fprint(rw, `{"items":[{"id":"UCaaaaaaaaaaaaaaaaaaaaaa","snippet":{"title":"Channel A"},"statistics":{"subscriberCount":"100"},"contentDetails":{"relatedPlaylists":{"uploads":"UUaaaaaaaaaaaaaaaaaaaaaa"}}}]}`)
		case "/playlistItems":
			fmt.Fprint(rw, `{"items":[{"contentDetails":{"videoId":"vid00000001"}}]}`)
		case "/videos":
			fmt.Fprint(rw, `{"items":[{"id":"vid00000001","snippet":{"title":"first video","publishedAt":"2023-04-07T15:30:00Z"},"statistics":{"viewCount":"1000","likeCount":"100","commentCount":"0"},"contentDetails":{"duration":"PT1M"}}]}`)
		default:
			http.NotFound(rw, r)
		}
	}))
	defer server.Close()

	client := ytapi.New(ytapi.Config{APIKey: "test-key", BaseURL: server.URL})

	store := ctxdataset.NewStore()

	form := url.Values{"channel_ids": []string{"UCaaaaaaaaaaaaaaaaaaaaaa"}}
	r := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	r.Header.Set("content-type", "application/x-www-form-urlencoded")

	ctx := ctxdataset.WithStore(r.Context(), store)
	ctx = ctxyoutube.WithClient(ctx, client)

	rw := httptest.NewRecorder()
	AnalyzeAction(rw, r.WithContext(ctx))

	a.Equal(http.StatusFound, rw.Code)
	a.Contains(rw.Header().Get("location"), "success=")

	ds := store.Latest()
	require.NotNil(t, ds)
	a.Len(ds.Videos, 1)
	a.Equal("channel-a", ds.Name)
}

func TestAnalyzeActionEmptyInput(t *testing.T) {
	a := assert.New(t)

	form := url.Values{"channel_ids": []string{"  , ,\n"}}
	r := httptest.NewRequest(http.MethodPost, "/analyze", strings.NewReader(form.Encode()))
	r.Header.Set("content-type", "application/x-www-form-urlencoded")

	rw := httptest.NewRecorder()
	AnalyzeAction(rw, r)

	a.Equal(http.StatusFound, rw.Code)
	a.Contains(rw.Header().Get("location"), "error=")
}

func TestSplitChannelIDs(t *testing.T) {
	a := assert.New(t)

	a.Equal(
		[]string{"UCaaaaaaaaaaaaaaaaaaaaaa", "@somechannel", "https://example.com/c"},
		splitChannelIDs("UCaaaaaaaaaaaaaaaaaaaaaa, @somechannel\nhttps://example.com/c"),
	)
	a.Nil(splitChannelIDs(""))
	a.Nil(splitChannelIDs(" , ,, "))
}
