package middlewares

import (
	"errors"

	apperrors "paygate.io/application/appErrors"
	"paygate.io/application/interfaces"
	"paygate.io/application/utils"
	"paygate.io/infrastructure/useragent"
)

// RequestContextMiddleware resolves the request id and the device fingerprint
// sent to the gateway. X-Device-Id wins over the user agent fingerprint.
func RequestContextMiddleware(ctx *interfaces.ApplicationContext[any], clientIP string) (*interfaces.ApplicationContext[any], bool) {
	if requestID := ctx.GetHeader("X-Request-Id"); requestID != nil {
		ctx.RequestID = *requestID
	} else {
		ctx.RequestID = utils.GenerateUULDString()
	}
	ctx.ClientIP = clientIP

	if deviceID := ctx.GetHeader("X-Device-Id"); deviceID != nil {
		ctx.DeviceID = *deviceID
	}
	if agent := ctx.GetHeader("User-Agent"); agent != nil {
		ctx.UserAgent = *agent
		if ctx.DeviceID == "" {
			ctx.DeviceID = useragent.ParseUserAgent(*agent).Fingerprint(clientIP)
		}
	}
	if ctx.DeviceID == "" {
		apperrors.ClientError(ctx.Ctx, "a User-Agent or X-Device-Id header is required", nil, []error{errors.New("device could not be identified")}, nil)
		return nil, false
	}
	return ctx, true
}
