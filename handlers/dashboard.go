package handlers

import (
	"net/http"

	"fknsrs.biz/p/ytstats/internal/ctxdataset"
	"fknsrs.biz/p/ytstats/internal/httputil"
	"fknsrs.biz/p/ytstats/internal/report"
)

func Dashboard(rw http.ResponseWriter, r *http.Request) {
	ds := ctxdataset.GetStore(r.Context()).Latest()
	if ds == nil {
		httputil.RedirectWithInformation(rw, r, "/", "Run an analysis first.")
		return
	}

	rw.Header().Set("content-type", "text/html; charset=utf-8")

	if err := report.Dashboard(ds).Render(rw); err != nil {
		panic(err)
	}
}
