package handlers

import (
	"encoding/csv"
	"fmt"
	"net/http"

	"fknsrs.biz/p/ytstats/internal/ctxdataset"
	"fknsrs.biz/p/ytstats/internal/httputil"
	"fknsrs.biz/p/ytstats/models"
)

func ExportCSV(rw http.ResponseWriter, r *http.Request) {
	ds := ctxdataset.GetStore(r.Context()).Latest()
	if ds == nil {
		httputil.RedirectWithInformation(rw, r, "/", "Run an analysis first.")
		return
	}

	rw.Header().Set("content-type", "text/csv; charset=utf-8")
	rw.Header().Set("content-disposition", fmt.Sprintf("attachment; filename=%q", ds.CSVFileName()))

	w := csv.NewWriter(rw)

	if err := w.Write(models.CSVHeader()); err != nil {
		panic(err)
	}

	for _, v := range ds.Videos {
		if err := w.Write(v.CSVRecord()); err != nil {
			panic(err)
		}
	}

	w.Flush()

	if err := w.Error(); err != nil {
		panic(err)
	}
}
