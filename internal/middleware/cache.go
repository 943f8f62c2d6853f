package middleware

import (
	"bytes"
	"net/http"
	"time"

	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	http.ResponseWriter
	status int
	body   *bytes.Buffer
}

func (w *bodyCacheWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *bodyCacheWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Cache serves successful GET responses from an in-memory store. Meant
// for the anonymous read paths (school list, dorm search); authenticated
// responses must not go through it.
func Cache(store *cache.Cache, duration time.Duration) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				next(w, r)
				return
			}

			key := r.URL.RequestURI()
			if resp, found := store.Get(key); found {
				cached := resp.(cachedResponse)
				for k, v := range cached.headers {
					w.Header()[k] = v
				}
				w.WriteHeader(cached.status)
				_, _ = w.Write(cached.body)
				return
			}

			bw := &bodyCacheWriter{ResponseWriter: w, body: bytes.NewBuffer(nil)}
			next(bw, r)

			if bw.status >= 200 && bw.status < 300 {
				store.Set(key, cachedResponse{
					status:  bw.status,
					headers: bw.Header().Clone(),
					body:    bw.body.Bytes(),
				}, duration)
			}
		}
	}
}
