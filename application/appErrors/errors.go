package apperrors

import (
	"fmt"
	"net/http"

	"paygate.io/infrastructure/logger"
	server_response "paygate.io/infrastructure/serverResponse"
)

func NotFoundError(ctx interface{}, message string) {
	server_response.Responder.Respond(ctx, http.StatusNotFound, message, nil, nil, nil)
}

func ValidationFailedError(ctx interface{}, errMessages *[]error) {
	server_response.Responder.Respond(ctx, http.StatusUnprocessableEntity, "Payload validation failed 🙄", nil, *errMessages, nil)
}

func ExternalDependencyError(ctx interface{}, serviceName string, err error) {
	logger.Error(err.Error(), logger.LoggerOptions{
		Key: fmt.Sprintf("error with %s", serviceName),
	})
	server_response.Responder.Respond(ctx, http.StatusServiceUnavailable,
		"Omo! Our payment partner is temporarily unreachable 😢. Please check back later.", nil, nil, nil)
}

func ErrorProcessingPayload(ctx interface{}) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, "Abnormal payload passed 🤨", nil, nil, nil)
}

func FatalServerError(ctx interface{}, err error) {
	logger.Error("fatal server error", logger.LoggerOptions{
		Key:  "error",
		Data: err,
	})
	server_response.Responder.Respond(ctx, http.StatusInternalServerError,
		"Omo! Our service is temporarily down 😢. Our team is working to fix it. Please check back later.", nil, nil, nil)
}

func ClientError(ctx interface{}, msg string, payload interface{}, errs []error, responseCode *uint) {
	server_response.Responder.Respond(ctx, http.StatusBadRequest, msg, payload, errs, responseCode)
}

// RespondWithPaymentError maps a payment error onto an HTTP response.
// payload is the canonical gateway response when one exists.
func RespondWithPaymentError(ctx interface{}, err error, payload interface{}) {
	paymentErr, ok := AsPaymentError(err)
	if !ok {
		FatalServerError(ctx, err)
		return
	}
	switch paymentErr.Kind {
	case ValidationErrorKind:
		ValidationFailedError(ctx, &[]error{paymentErr})
	case GatewayRejectedKind:
		ClientError(ctx, paymentErr.Message, payload, nil, nil)
	case TransportErrorKind:
		ExternalDependencyError(ctx, "payment gateway", paymentErr)
	default:
		FatalServerError(ctx, paymentErr)
	}
}
