package utils

import (
	"fmt"
	"strconv"

	"recipebook/config"

	"github.com/gin-gonic/gin"
)

// Page is the envelope every list endpoint returns.
type Page struct {
	Count    int64       `json:"count"`
	Next     *string     `json:"next"`
	Previous *string     `json:"previous"`
	Results  interface{} `json:"results"`
}

// PageParams reads page-number pagination from the query string.
// `page` starts at 1; `limit` overrides the configured page size.
func PageParams(c *gin.Context) (page, limit int) {
	page = 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit = config.PageSize()
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}
	return page, limit
}

// NewPage builds the envelope, rendering next/previous as links to the
// same path with the page number swapped.
func NewPage(c *gin.Context, count int64, page, limit int, results interface{}) Page {
	pageLink := func(n int) *string {
		query := c.Request.URL.Query()
		query.Set("page", strconv.Itoa(n))
		link := fmt.Sprintf("%s?%s", c.Request.URL.Path, query.Encode())
		return &link
	}

	p := Page{Count: count, Results: results}
	if int64(page*limit) < count {
		p.Next = pageLink(page + 1)
	}
	if page > 1 {
		p.Previous = pageLink(page - 1)
	}
	return p
}
