package v1

import (
	"net/http"
	"strconv"

	base "github.com/tinoosan/finmentor/internal/httpapi"
)

const (
	defaultPageSize = 1000
	maxPageValue    = 1_000_000
)

// pageQuery is present on the context only when the client sent ?page or ?size.
type pageQuery struct {
	Page int
	Size int
}

// paginate reads ?page=&size=. Missing, unparsable or non-positive values fall
// back to page 1 and size 1000; both are capped at one million.
func paginate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if !q.Has("page") && !q.Has("size") {
			next.ServeHTTP(w, r)
			return
		}
		pq := pageQuery{Page: positiveOr(q.Get("page"), 1), Size: positiveOr(q.Get("size"), defaultPageSize)}
		next.ServeHTTP(w, withValue(r, ctxKeyPage, pq))
	})
}

func positiveOr(raw string, def int) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return min(n, maxPageValue)
}

// writeList answers with the whole list, or the requested page of it.
func writeList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	pq, ok := r.Context().Value(ctxKeyPage).(pageQuery)
	if !ok {
		base.WriteOK(w, http.StatusOK, items, "")
		return
	}
	page, info := pageOf(items, pq)
	base.WritePage(w, page, info)
}

func pageOf[T any](items []T, pq pageQuery) ([]T, base.Pagination) {
	total := len(items)
	info := base.Pagination{
		Page:          pq.Page,
		Size:          pq.Size,
		TotalElements: total,
		TotalPages:    (total + pq.Size - 1) / pq.Size,
	}
	start := (pq.Page - 1) * pq.Size
	if start >= total {
		return []T{}, info
	}
	end := min(start+pq.Size, total)
	return items[start:end], info
}
