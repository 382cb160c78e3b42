package ctxdataset

import (
	"context"
	"net/http"
	"sync"

	"fknsrs.biz/p/ytstats/models"
)

// Store holds the most recent analysis run. A new run replaces the previous
// one; nothing survives a restart.
type Store struct {
	l  sync.RWMutex
	ds *models.Dataset
}

func NewStore() *Store {
	return &Store{}
}

func (s *Store) Latest() *models.Dataset {
	s.l.RLock()
	defer s.l.RUnlock()

	return s.ds
}

func (s *Store) Replace(ds *models.Dataset) {
	s.l.Lock()
	defer s.l.Unlock()

	s.ds = ds
}

// context registration

var storeKey int

func WithStore(ctx context.Context, s *Store) context.Context {
	return context.WithValue(ctx, &storeKey, s)
}

func GetStore(ctx context.Context) *Store {
	if v := ctx.Value(&storeKey); v != nil {
		return v.(*Store)
	}

	return nil
}

// middleware

func Register(s *Store) func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	return func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		next(rw, r.WithContext(WithStore(r.Context(), s)))
	}
}
