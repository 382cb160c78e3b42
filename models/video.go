package models

import "time"

// Video is the raw per-video record from the videos.list endpoint. Fields
// the API omits (tags, duration, counts for videos with hidden statistics)
// are left at their zero values.
type Video struct {
	VideoID      string    `json:"video_id"`
	Title        string    `json:"title"`
	PublishedAt  time.Time `json:"publishedAt"`
	Tags         []string  `json:"tags"`
	ViewCount    int64     `json:"viewCount"`
	LikeCount    int64     `json:"likeCount"`
	CommentCount int64     `json:"commentCount"`
	Duration     string    `json:"duration"`
}
