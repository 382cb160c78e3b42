package ctxtemplate

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"fknsrs.biz/p/ytstats/internal/templatecollection"
)

// context registration

var collectionKey int

func WithCollection(ctx context.Context, collection templatecollection.Collection) context.Context {
	return context.WithValue(ctx, &collectionKey, collection)
}

func getCollection(ctx context.Context) templatecollection.Collection {
	if v := ctx.Value(&collectionKey); v != nil {
		return v.(templatecollection.Collection)
	}

	return nil
}

var dataKey int

// WithData overlays additional values onto the data every template
// execution in this context receives. Later values win.
func WithData(ctx context.Context, data map[string]interface{}) context.Context {
	merged := make(map[string]interface{})

	for k, v := range getData(ctx) {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}

	return context.WithValue(ctx, &dataKey, merged)
}

func getData(ctx context.Context) map[string]interface{} {
	if v := ctx.Value(&dataKey); v != nil {
		return v.(map[string]interface{})
	}

	return nil
}

// middleware

func Register(collection templatecollection.Collection) func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		next(rw, r.WithContext(WithCollection(r.Context(), collection)))
	}
}

// main interface

var ErrNoCollectionInContext = fmt.Errorf("collection not found in context")

func ExecuteTemplate(ctx context.Context, wr io.Writer, name string, data map[string]interface{}) error {
	collection := getCollection(ctx)
	if collection == nil {
		return ErrNoCollectionInContext
	}

	merged := make(map[string]interface{})
	for k, v := range getData(ctx) {
		merged[k] = v
	}
	for k, v := range data {
		merged[k] = v
	}

	if err := collection.ExecuteTemplate(wr, name, merged); err != nil {
		return fmt.Errorf("ctxtemplate.ExecuteTemplate: %w", err)
	}

	return nil
}

func ExecuteTemplateIntoResponse(r *http.Request, rw http.ResponseWriter, name string, data map[string]interface{}) error {
	rw.Header().Set("content-type", "text/html; charset=utf-8")
	rw.WriteHeader(http.StatusOK)
	return ExecuteTemplate(r.Context(), rw, name, data)
}
