package dto

import (
	"strconv"

	"wallet-ledger/internal/core/ports"

	"github.com/gin-gonic/gin"
)

// ParsePagination reads the page and page_size query parameters and clamps
// them to the allowed range. Unparseable values fall back to the defaults.
func ParsePagination(c *gin.Context) (page, pageSize int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		page = 1
	}
	pageSize, err = strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(ports.DefaultPageSize)))
	if err != nil {
		pageSize = ports.DefaultPageSize
	}
	return ports.ClampPage(page, pageSize)
}
