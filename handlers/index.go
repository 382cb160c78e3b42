package handlers

import (
	"net/http"

	"fknsrs.biz/p/ytstats/internal/ctxdataset"
	"fknsrs.biz/p/ytstats/internal/ctxtemplate"
)

func Index(rw http.ResponseWriter, r *http.Request) {
	ds := ctxdataset.GetStore(r.Context()).Latest()

	if err := ctxtemplate.ExecuteTemplateIntoResponse(r, rw, "page_index", map[string]interface{}{
		"Dataset": ds,
	}); err != nil {
		panic(err)
	}
}
