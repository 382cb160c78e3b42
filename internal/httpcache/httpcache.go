package httpcache

import (
	"bytes"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	"go.etcd.io/bbolt"
)

type cachedResponse struct {
	UpdatedAt  time.Time
	URL        string
	Status     string
	StatusCode int
	Header     http.Header
	Body       []byte
}

func (r *cachedResponse) makeResponse(req *http.Request) *http.Response {
	return &http.Response{
		Status:        r.Status,
		StatusCode:    r.StatusCode,
		Header:        r.Header,
		Body:          io.NopCloser(bytes.NewReader(r.Body)),
		ContentLength: int64(len(r.Body)),
		Request:       req,
	}
}

type Storage interface {
	Fetch(u *url.URL) (*cachedResponse, error)
	Save(u *url.URL, res *http.Response) (*cachedResponse, error)
}

var bboltBucketName = []byte("cache")

type BBoltStorage struct {
	db *bbolt.DB
}

func NewBBoltStorage(db *bbolt.DB) *BBoltStorage {
	return &BBoltStorage{db: db}
}

func makeBBoltKey(u *url.URL) []byte {
	// the key string drops the query so the API key never touches disk; the
	// hash still covers the whole URL
	h := sha256.Sum256([]byte(u.String()))
	return []byte(path.Join(u.Host, u.Path, hex.EncodeToString(h[:])))
}

func (s *BBoltStorage) Fetch(u *url.URL) (*cachedResponse, error) {
	var d []byte

	if err := s.db.View(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bboltBucketName)
		if b == nil {
			return nil
		}

		if v := b.Get(makeBBoltKey(u)); v != nil {
			d = append([]byte(nil), v...)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("httpcache.BBoltStorage.Fetch: %w", err)
	}

	if d == nil {
		return nil, nil
	}

	var r cachedResponse
	if err := gob.NewDecoder(bytes.NewReader(d)).Decode(&r); err != nil {
		return nil, fmt.Errorf("httpcache.BBoltStorage.Fetch: %w", err)
	}

	return &r, nil
}

func (s *BBoltStorage) Save(u *url.URL, res *http.Response) (*cachedResponse, error) {
	d, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("httpcache.BBoltStorage.Save: %w", err)
	}

	r := cachedResponse{
		UpdatedAt:  time.Now(),
		URL:        u.String(),
		Status:     res.Status,
		StatusCode: res.StatusCode,
		Header:     res.Header,
		Body:       d,
	}

	buf := bytes.NewBuffer(nil)
	if err := gob.NewEncoder(buf).Encode(r); err != nil {
		return nil, fmt.Errorf("httpcache.BBoltStorage.Save: %w", err)
	}

	if err := s.db.Update(func(tx *bbolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bboltBucketName)
		if err != nil {
			return err
		}

		return b.Put(makeBBoltKey(u), buf.Bytes())
	}); err != nil {
		return nil, fmt.Errorf("httpcache.BBoltStorage.Save: %w", err)
	}

	return &r, nil
}

// Transport serves repeated GETs from storage while they are younger than
// maxAge. Anything that is not a 200-OK GET goes straight through.
type Transport struct {
	transport http.RoundTripper
	storage   Storage
	maxAge    time.Duration
}

func NewTransport(transport http.RoundTripper, storage Storage, maxAge time.Duration) *Transport {
	if transport == nil {
		transport = http.DefaultTransport
	}

	if maxAge == 0 {
		maxAge = time.Hour * 24
	}

	return &Transport{
		transport: transport,
		storage:   storage,
		maxAge:    maxAge,
	}
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Method != http.MethodGet {
		return t.transport.RoundTrip(req)
	}

	if cr, err := t.storage.Fetch(req.URL); err == nil && cr != nil && time.Since(cr.UpdatedAt) < t.maxAge {
		return cr.makeResponse(req), nil
	}

	res, err := t.transport.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return res, nil
	}

	cr, err := t.storage.Save(req.URL, res)
	if err != nil {
		return nil, fmt.Errorf("httpcache.Transport.RoundTrip: %w", err)
	}

	return cr.makeResponse(req), nil
}
