// Package analysis drives a full fetch run: resolve the user's inputs to
// channel IDs, pull channel and video metadata, enrich it, and package the
// result into a dataset.
package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"fknsrs.biz/p/ytstats/internal/catchpanic"
	"fknsrs.biz/p/ytstats/internal/ctxclock"
	"fknsrs.biz/p/ytstats/internal/ctxlogger"
	"fknsrs.biz/p/ytstats/internal/enrich"
	"fknsrs.biz/p/ytstats/internal/stringutil"
	"fknsrs.biz/p/ytstats/internal/ytapi"
	"fknsrs.biz/p/ytstats/internal/ytresolve"
	"fknsrs.biz/p/ytstats/models"
)

var (
	ErrNoChannels = errors.New("analysis: none of the inputs resolved to a channel")
	ErrNoVideos   = errors.New("analysis: no videos found for any channel")
)

// Run fetches and enriches everything for the given raw channel inputs.
// Inputs that fail to resolve are logged and skipped, as is a channel whose
// video fetch fails; the run only errors when nothing at all survives.
func Run(ctx context.Context, client *ytapi.Client, rawIDs []string) (*models.Dataset, error) {
	l := ctxlogger.GetLogger(ctx)

	var channelIDs []string

	for _, raw := range rawIDs {
		id, err := ytresolve.ChannelID(ctx, client.HTTPClient(), raw)
		if err != nil {
			l.WithError(err).WithField("input", raw).Warning("skipping unresolvable channel input")
			continue
		}

		channelIDs = append(channelIDs, id)
	}

	if len(channelIDs) == 0 {
		return nil, ErrNoChannels
	}

	channels, err := client.Channels(ctx, channelIDs)
	if err != nil {
		return nil, fmt.Errorf("analysis.Run: %w", err)
	}
	if len(channels) == 0 {
		return nil, ErrNoChannels
	}

	var videos []models.Video

	for _, ch := range channels {
		ch := ch

		vs, err := catchpanic.CatchErr1(func() ([]models.Video, error) {
			return client.Videos(ctx, client.AllVideoIDs(ctx, ch.UploadsPlaylistID)), nil
		})
		if err != nil {
			l.WithError(err).WithField("channel_id", ch.ChannelID).Warning("skipping channel after fetch failure")
			continue
		}

		videos = append(videos, vs...)
	}

	if len(videos) == 0 {
		return nil, ErrNoVideos
	}

	return &models.Dataset{
		Name:      datasetName(channels),
		FetchedAt: ctxclock.Now(ctx),
		Channels:  channels,
		Videos:    enrich.Videos(videos),
	}, nil
}

func datasetName(channels []models.Channel) string {
	names := make([]string, 0, len(channels))

	for _, ch := range channels {
		if s := stringutil.Slug(ch.ChannelName); s != "" {
			names = append(names, s)
		}
	}

	if len(names) == 0 {
		return ""
	}

	return strings.Join(names, "-")
}
