package models

// Channel is a single channel summary as returned by the channels.list
// endpoint. Built once per channel per run; never modified afterwards.
type Channel struct {
	ChannelID         string `json:"channelId"`
	ChannelName       string `json:"channelName"`
	SubscriberCount   int64  `json:"subscriberCount"`
	ViewCount         int64  `json:"viewCount"`
	VideoCount        int64  `json:"videoCount"`
	UploadsPlaylistID string `json:"uploadsPlaylistId"`
}
