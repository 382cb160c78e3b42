package report

import (
	"fmt"
	"math"
	"sort"

	"fknsrs.biz/p/ytstats/models"
)

// TopByViews returns up to n videos sorted by descending view count. The
// input slice is left alone.
func TopByViews(vs []models.EnrichedVideo, n int) []models.EnrichedVideo {
	sorted := make([]models.EnrichedVideo, len(vs))
	copy(sorted, vs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ViewCount > sorted[j].ViewCount
	})

	if len(sorted) > n {
		sorted = sorted[:n]
	}

	return sorted
}

// ByPublishDate returns the videos sorted by ascending publish time.
func ByPublishDate(vs []models.EnrichedVideo) []models.EnrichedVideo {
	sorted := make([]models.EnrichedVideo, len(vs))
	copy(sorted, vs)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PublishedAt.Before(sorted[j].PublishedAt)
	})

	return sorted
}

// Quartiles summarises values as [min, q1, median, q3, max], interpolating
// between ranks the way most stats packages do. An empty input yields all
// zeroes.
func Quartiles(values []float64) [5]float64 {
	if len(values) == 0 {
		return [5]float64{}
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	return [5]float64{
		sorted[0],
		quantile(sorted, 0.25),
		quantile(sorted, 0.5),
		quantile(sorted, 0.75),
		sorted[len(sorted)-1],
	}
}

func quantile(sorted []float64, q float64) float64 {
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))

	if lo == hi {
		return sorted[lo]
	}

	return sorted[lo] + (sorted[hi]-sorted[lo])*(pos-float64(lo))
}

// Histogram buckets values into n equal-width ranges between the observed
// minimum and maximum, returning a label and a count per bucket.
func Histogram(values []float64, n int) (labels []string, counts []int) {
	if len(values) == 0 || n < 1 {
		return nil, nil
	}

	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	if min == max {
		return []string{fmt.Sprintf("%.0f", min)}, []int{len(values)}
	}

	width := (max - min) / float64(n)
	counts = make([]int, n)

	for _, v := range values {
		i := int((v - min) / width)
		if i >= n {
			i = n - 1
		}
		counts[i]++
	}

	labels = make([]string, n)
	for i := range labels {
		labels[i] = fmt.Sprintf("%.0f–%.0f", min+float64(i)*width, min+float64(i+1)*width)
	}

	return labels, counts
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayHourEngagement computes mean engagement per (day-of-week, hour-of-day)
// cell. Cells with no videos stay at zero.
func DayHourEngagement(vs []models.EnrichedVideo) (days []string, means [7][24]float64) {
	var sums, counts [7][24]float64

	dayIndex := make(map[string]int, len(weekdays))
	for i, d := range weekdays {
		dayIndex[d] = i
	}

	for _, v := range vs {
		d, ok := dayIndex[v.PublishedDay]
		if !ok {
			continue
		}

		sums[d][v.PublishedHour] += v.Engagement
		counts[d][v.PublishedHour]++
	}

	for d := range sums {
		for h := range sums[d] {
			if counts[d][h] > 0 {
				means[d][h] = sums[d][h] / counts[d][h]
			}
		}
	}

	return weekdays, means
}
