package handler

import (
	"strconv"

	"wallet-ledger/internal/adapter/http/dto"

	"github.com/gin-gonic/gin"
)

// paginate assembles the shared list envelope. Next and Previous are
// absolute URLs for the adjacent pages, set only when those pages exist
// for the given total.
func paginate(c *gin.Context, page, pageSize int, total int64, results interface{}) dto.PaginatedResponse {
	resp := dto.PaginatedResponse{Count: total, Results: results}
	if int64(page)*int64(pageSize) < total {
		next := pageURL(c, page+1)
		resp.Next = &next
	}
	if page > 1 {
		prev := pageURL(c, page-1)
		resp.Previous = &prev
	}
	return resp
}

// pageURL rebuilds the request URL with the page query parameter replaced.
func pageURL(c *gin.Context, page int) string {
	u := *c.Request.URL
	q := u.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()

	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host + u.RequestURI()
}
