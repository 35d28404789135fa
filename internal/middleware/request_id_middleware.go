package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader - заголовок со сквозным идентификатором запроса
const RequestIDHeader = "X-Request-ID"

// RequestID проставляет каждому запросу идентификатор.
// Пришедший от клиента ID сохраняется, чтобы не рвать трассировку через прокси.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)
		c.Next()
	}
}
