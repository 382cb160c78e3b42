package ytapi

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"fknsrs.biz/p/ytstats/internal/ctxlogger"
)

// Pager walks a playlist's items cursor by cursor. Each Next call fetches
// one page; the walk is exhausted when a response carries no nextPageToken,
// so it is finite by construction. Construct a fresh Pager to walk the same
// playlist again.
type Pager struct {
	c          *Client
	playlistID string
	pageToken  string
	done       bool
}

func (c *Client) PlaylistItems(playlistID string) *Pager {
	return &Pager{c: c, playlistID: playlistID}
}

func (p *Pager) Done() bool {
	return p.done
}

// Next returns the video IDs on the next page. After an error the pager is
// exhausted; there are no retries.
func (p *Pager) Next(ctx context.Context) ([]string, error) {
	if p.done {
		return nil, nil
	}

	query := url.Values{
		"part":       []string{"contentDetails"},
		"playlistId": []string{p.playlistID},
		"maxResults": []string{strconv.Itoa(p.c.cfg.PageSize)},
	}
	if p.pageToken != "" {
		query.Set("pageToken", p.pageToken)
	}

	j, err := p.c.get(ctx, "playlistItems", query)
	if err != nil {
		p.done = true
		return nil, fmt.Errorf("ytapi.Pager.Next: %w", err)
	}

	var ids []string

	for _, item := range j.S("items").Children() {
		if id := stringAt(item, "contentDetails.videoId"); id != "" {
			ids = append(ids, id)
		}
	}

	p.pageToken = stringAt(j, "nextPageToken")
	if p.pageToken == "" {
		p.done = true
	}

	return ids, nil
}

// AllVideoIDs drains a Pager for the given playlist. A mid-pagination error
// truncates the walk: whatever was collected so far is returned, and the
// error is only logged. Partial results are fine; an aborted run is not.
func (c *Client) AllVideoIDs(ctx context.Context, playlistID string) []string {
	var ids []string

	p := c.PlaylistItems(playlistID)
	for !p.Done() {
		page, err := p.Next(ctx)
		if err != nil {
			ctxlogger.GetLogger(ctx).WithError(err).WithField("playlist_id", playlistID).Warning("playlist listing truncated")
			break
		}

		ids = append(ids, page...)
	}

	return ids
}
