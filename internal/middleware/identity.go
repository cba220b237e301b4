package middleware

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// requesterID renders the authenticated user's id as a string for use
// in rate-limit keys.  JWT numeric claims arrive as float64; guests
// and unparseable claims all share the "anon" bucket.
func requesterID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	}
	return "anon"
}
