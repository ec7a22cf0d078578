package routev1

import (
	"github.com/gin-gonic/gin"
	apperrors "paygate.io/application/appErrors"
	"paygate.io/application/controller"
	"paygate.io/application/controller/dto"
	"paygate.io/application/interfaces"
)

func PaymentRouter(router *gin.RouterGroup) {
	paymentRouter := router.Group("/payments")
	{
		paymentRouter.POST("/card/charge", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ChargeCardDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ChargeCard(withBody(appContext, &body))
		})

		paymentRouter.POST("/card/charge/token", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.TokenChargeDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ChargeWithToken(withBody(appContext, &body))
		})

		paymentRouter.POST("/card/validate", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.ValidateChargeDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.ValidateCharge(withBody(appContext, &body))
		})

		paymentRouter.POST("/card/:id/void", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.VoidPreauthorization(withBody[any](appContext, nil, "id"))
		})

		paymentRouter.POST("/card/:id/capture", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.CapturePreauthorizationDTO
			// an empty body captures the full amount
			if ctx.Request.ContentLength != 0 {
				if err := ctx.ShouldBindJSON(&body); err != nil {
					apperrors.ErrorProcessingPayload(ctx)
					return
				}
			}
			controller.CapturePreauthorization(withBody(appContext, &body, "id"))
		})

		paymentRouter.GET("/transactions/:id/verify", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.VerifyPayment(withBody[any](appContext, nil, "id"))
		})

		paymentRouter.GET("/card-bins/:bin", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.GetCardBIN(withBody[any](appContext, nil, "bin"))
		})

		paymentRouter.POST("/momo/request-to-pay", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			var body dto.RequestToPayDTO
			if err := ctx.ShouldBindJSON(&body); err != nil {
				apperrors.ErrorProcessingPayload(ctx)
				return
			}
			controller.RequestToPay(withBody(appContext, &body))
		})

		paymentRouter.GET("/momo/request-to-pay/:referenceId", func(ctx *gin.Context) {
			appContext := ctx.MustGet("AppContext").(*interfaces.ApplicationContext[any])
			controller.GetRequestToPayStatus(withBody[any](appContext, nil, "referenceId"))
		})
	}
}

// withBody copies the resolved request details onto a typed context.
func withBody[T any](appContext *interfaces.ApplicationContext[any], body *T, params ...string) *interfaces.ApplicationContext[T] {
	values := map[string]string{}
	for _, param := range params {
		values[param] = appContext.Ctx.Param(param)
	}
	return &interfaces.ApplicationContext[T]{
		Ctx:       appContext.Ctx,
		Body:      body,
		Header:    appContext.Header,
		Param:     values,
		RequestID: appContext.RequestID,
		DeviceID:  appContext.DeviceID,
		UserAgent: appContext.UserAgent,
		ClientIP:  appContext.ClientIP,
	}
}
