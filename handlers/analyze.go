package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/monoculum/formam"

	"fknsrs.biz/p/ytstats/internal/analysis"
	"fknsrs.biz/p/ytstats/internal/ctxdataset"
	"fknsrs.biz/p/ytstats/internal/ctxyoutube"
	"fknsrs.biz/p/ytstats/internal/httputil"
)

func AnalyzeAction(rw http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		panic(err)
	}

	var input struct {
		ChannelIDs string `formam:"channel_ids"`
	}

	if err := formam.Decode(r.PostForm, &input); err != nil {
		panic(err)
	}

	ids := splitChannelIDs(input.ChannelIDs)
	if len(ids) == 0 {
		httputil.RedirectWithError(rw, r, "/", "No channel IDs found in input")
		return
	}

	ds, err := analysis.Run(r.Context(), ctxyoutube.GetClient(r.Context()), ids)
	if errors.Is(err, analysis.ErrNoChannels) {
		httputil.RedirectWithError(rw, r, "/", "None of the inputs could be resolved to a channel")
		return
	} else if errors.Is(err, analysis.ErrNoVideos) {
		httputil.RedirectWithError(rw, r, "/", "No videos were found for any of the channels")
		return
	} else if err != nil {
		httputil.RedirectWithError(rw, r, "/", "Analysis failed: "+err.Error())
		return
	}

	ctxdataset.GetStore(r.Context()).Replace(ds)

	httputil.RedirectWithSuccess(rw, r, "/", fmt.Sprintf("Analysed %d videos across %d channels.", len(ds.Videos), len(ds.Channels)))
}

func splitChannelIDs(s string) []string {
	var ids []string

	for _, id := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r' || r == ' ' || r == '\t'
	}) {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	return ids
}
