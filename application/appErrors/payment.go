package apperrors

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	ConfigurationErrorKind ErrorKind = "configuration_error"
	ValidationErrorKind    ErrorKind = "validation_error"
	GatewayRejectedKind    ErrorKind = "gateway_rejected"
	TransportErrorKind     ErrorKind = "transport_error"
)

type ErrorClassification string

const (
	ClientErrorClass ErrorClassification = "client_error"
	UnspecifiedClass ErrorClassification = "unspecified"
)

// PaymentError is the single error type every payment operation reports.
type PaymentError struct {
	Kind           ErrorKind
	Classification ErrorClassification
	Message        string
	Err            error
}

func (e *PaymentError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Err.Error())
	}
	return e.Message
}

func (e *PaymentError) Unwrap() error {
	return e.Err
}

func ConfigurationError(message string, err error) *PaymentError {
	return &PaymentError{Kind: ConfigurationErrorKind, Classification: UnspecifiedClass, Message: message, Err: err}
}

func ValidationError(message string, err error) *PaymentError {
	return &PaymentError{Kind: ValidationErrorKind, Classification: ClientErrorClass, Message: message, Err: err}
}

func GatewayRejected(message string) *PaymentError {
	return &PaymentError{Kind: GatewayRejectedKind, Classification: ClientErrorClass, Message: message}
}

func TransportError(message string, err error) *PaymentError {
	return &PaymentError{Kind: TransportErrorKind, Classification: UnspecifiedClass, Message: message, Err: err}
}

// AsPaymentError extracts a *PaymentError from anywhere in the chain.
func AsPaymentError(err error) (*PaymentError, bool) {
	var paymentErr *PaymentError
	if errors.As(err, &paymentErr) {
		return paymentErr, true
	}
	return nil, false
}

func IsKind(err error, kind ErrorKind) bool {
	paymentErr, ok := AsPaymentError(err)
	return ok && paymentErr.Kind == kind
}
