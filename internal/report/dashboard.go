// Package report turns an analysed dataset into the dashboard page: a fixed
// sequence of charts rendered client-side by echarts.
package report

import (
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"fknsrs.biz/p/ytstats/models"
)

// Dashboard builds the full chart page for a dataset. Chart order is fixed;
// each chart is built independently from the same table.
func Dashboard(ds *models.Dataset) *components.Page {
	page := components.NewPage()
	page.PageTitle = "analysis: " + ds.Name

	page.AddCharts(
		topVideosBar(ds.Videos, "Top 10 videos by view count"),
		sentimentViewsScatter(ds.Videos),
		ratioBoxPlot(ds.Videos),
		durationHistogram(ds.Videos),
		viewsLikesScatter(ds.Videos),
		topVideosBar(ds.Videos, "Most viewed videos"),
		engagementOverTime(ds.Videos),
		dayHourHeatmap(ds.Videos),
	)

	return page
}

func topVideosBar(vs []models.EnrichedVideo, title string) *charts.Bar {
	top := TopByViews(vs, 10)

	titles := make([]string, len(top))
	data := make([]opts.BarData, len(top))
	for i, v := range top {
		titles[i] = v.Title
		data[i] = opts.BarData{Value: v.ViewCount}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: true}),
		charts.WithXAxisOpts(opts.XAxis{AxisLabel: &opts.AxisLabel{Show: true, Rotate: 30}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "views"}),
	)
	bar.SetXAxis(titles).AddSeries("views", data)

	return bar
}

func sentimentViewsScatter(vs []models.EnrichedVideo) *charts.Scatter {
	data := make([]opts.ScatterData, len(vs))
	for i, v := range vs {
		data[i] = opts.ScatterData{
			Value:      []interface{}{v.TitleSentiment, v.ViewCount},
			SymbolSize: symbolSize(v.CommentCount),
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Title sentiment vs views", Subtitle: "point size is comment count"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "sentiment", Type: "value", Min: -1, Max: 1}),
		charts.WithYAxisOpts(opts.YAxis{Name: "views", Type: "value"}),
	)
	scatter.AddSeries("videos", data)

	return scatter
}

func ratioBoxPlot(vs []models.EnrichedVideo) *charts.BoxPlot {
	likes := make([]float64, len(vs))
	comments := make([]float64, len(vs))
	for i, v := range vs {
		likes[i] = v.LikeRatio
		comments[i] = v.CommentRatio
	}

	likeQ := Quartiles(likes)
	commentQ := Quartiles(comments)

	box := charts.NewBoxPlot()
	box.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Like and comment ratio distributions", Subtitle: "per 1000 views"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "per 1000 views"}),
	)
	box.SetXAxis([]string{"like ratio", "comment ratio"}).AddSeries("ratios", []opts.BoxPlotData{
		{Value: likeQ[:]},
		{Value: commentQ[:]},
	})

	return box
}

func durationHistogram(vs []models.EnrichedVideo) *charts.Bar {
	values := make([]float64, len(vs))
	for i, v := range vs {
		values[i] = v.DurationSecs
	}

	labels, counts := Histogram(values, 30)

	data := make([]opts.BarData, len(counts))
	for i, c := range counts {
		data[i] = opts.BarData{Value: c}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Video duration distribution"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "seconds", AxisLabel: &opts.AxisLabel{Show: true, Rotate: 45}}),
		charts.WithYAxisOpts(opts.YAxis{Name: "videos"}),
	)
	bar.SetXAxis(labels).AddSeries("videos", data)

	return bar
}

func viewsLikesScatter(vs []models.EnrichedVideo) *charts.Scatter {
	data := make([]opts.ScatterData, len(vs))
	for i, v := range vs {
		data[i] = opts.ScatterData{
			Value:      []interface{}{v.ViewCount, v.LikeCount},
			SymbolSize: symbolSize(v.CommentCount),
		}
	}

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Views vs likes", Subtitle: "point size is comment count"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "views", Type: "value"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "likes", Type: "value"}),
	)
	scatter.AddSeries("videos", data)

	return scatter
}

func engagementOverTime(vs []models.EnrichedVideo) *charts.Line {
	sorted := ByPublishDate(vs)

	dates := make([]string, len(sorted))
	data := make([]opts.LineData, len(sorted))
	for i, v := range sorted {
		dates[i] = v.PublishedAt.Format(time.RFC3339)
		data[i] = opts.LineData{Value: v.Engagement}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Engagement over time"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "published"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "engagement"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)
	line.SetXAxis(dates).AddSeries("engagement", data)

	return line
}

func dayHourHeatmap(vs []models.EnrichedVideo) *charts.HeatMap {
	days, means := DayHourEngagement(vs)

	hours := make([]string, 24)
	for h := range hours {
		hours[h] = time.Time{}.Add(time.Duration(h) * time.Hour).Format("15:00")
	}

	var data []opts.HeatMapData
	var max float64
	for d := range means {
		for h, mean := range means[d] {
			data = append(data, opts.HeatMapData{Value: [3]interface{}{h, d, mean}})
			if mean > max {
				max = mean
			}
		}
	}
	if max == 0 {
		max = 1
	}

	heatmap := charts.NewHeatMap()
	heatmap.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Mean engagement by day and hour"}),
		charts.WithXAxisOpts(opts.XAxis{Type: "category", Data: hours}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: days}),
		charts.WithVisualMapOpts(opts.VisualMap{Calculable: true, Min: 0, Max: float32(max)}),
	)
	heatmap.AddSeries("engagement", data)

	return heatmap
}

// symbolSize maps a comment count to a point size that stays readable for
// both dead and very busy videos.
func symbolSize(comments int64) int {
	size := 5 + int(comments/50)
	if size > 40 {
		size = 40
	}

	return size
}
