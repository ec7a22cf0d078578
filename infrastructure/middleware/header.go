package middlewares

import (
	"github.com/gin-gonic/gin"
	"paygate.io/application/interfaces"
	"paygate.io/application/middlewares"
)

func RequestContextMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		appContext, next := middlewares.RequestContextMiddleware(&interfaces.ApplicationContext[any]{
			Ctx:    ctx,
			Header: ctx.Request.Header,
		}, ctx.ClientIP())
		if next {
			ctx.Header("X-Request-Id", appContext.RequestID)
			ctx.Set("AppContext", appContext)
			ctx.Next()
		}
	}
}
