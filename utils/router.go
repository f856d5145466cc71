package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// CacheRouter sets the default cache-control policy. Listings, grants and
// quota figures are all permission-dependent, so everything defaults to
// no-cache; an endpoint serving immutable content can raise CacheTime.
type CacheRouter struct {
	CacheTime int // seconds; 0 sends no-cache
}

func (cr *CacheRouter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if cr.CacheTime == 0 {
			c.Header("cache-control", "no-cache")
		} else {
			c.Header("cache-control", "private, max-age="+strconv.Itoa(cr.CacheTime))
		}
		c.Next()
	}
}
