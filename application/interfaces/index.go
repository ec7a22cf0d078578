package interfaces

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ApplicationContext is what a controller receives: the bound body plus the
// request details the middleware resolved.
type ApplicationContext[T any] struct {
	Ctx       *gin.Context
	Body      *T
	Header    http.Header
	Param     map[string]string
	RequestID string
	DeviceID  string
	UserAgent string
	ClientIP  string
}

func (ac *ApplicationContext[T]) GetHeader(key string) *string {
	if ac.Header == nil {
		return nil
	}
	value := ac.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}
