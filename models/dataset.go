package models

import "time"

// Dataset is the output of one analysis run. It only lives in memory; a new
// run replaces it wholesale.
type Dataset struct {
	Name      string          `json:"name"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Channels  []Channel       `json:"channels"`
	Videos    []EnrichedVideo `json:"videos"`
}

func (d *Dataset) CSVFileName() string {
	if d.Name == "" {
		return "video_data.csv"
	}

	return d.Name + ".csv"
}
