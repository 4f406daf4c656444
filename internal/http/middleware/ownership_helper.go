package middleware

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
)

// extractUserID extracts a user ID from the request based on a defined rule.
// A consumed body is restored for the handlers that follow.
func extractUserID(c *gin.Context, source string, paramName string) string {
	switch source {
	case "path":
		return c.Param(paramName)
	case "query":
		return c.Query(paramName)
	case "header":
		return c.GetHeader(paramName)
	case "body":
		if c.Request.Body == nil {
			return ""
		}
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			return ""
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

		var bodyJSON map[string]interface{}
		if err := json.Unmarshal(bodyBytes, &bodyJSON); err != nil {
			return ""
		}

		switch id := bodyJSON[paramName].(type) {
		case string:
			return id
		case float64:
			if id > 0 && id == float64(uint64(id)) {
				return strconv.FormatUint(uint64(id), 10)
			}
		}
	}
	return ""
}
