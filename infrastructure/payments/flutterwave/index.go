package flutterwave_card_processor

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	apperrors "paygate.io/application/appErrors"
	"paygate.io/application/utils"
	"paygate.io/infrastructure/cryptography"
	"paygate.io/infrastructure/env"
	"paygate.io/infrastructure/logger"
	"paygate.io/infrastructure/network"
	payment_types "paygate.io/infrastructure/payments/types"
	"paygate.io/infrastructure/validator"
)

const DefaultCurrency = "NGN"

var (
	messagePattern = regexp.MustCompile(`"message"\s*:\s*"((?:[^"\\]|\\.)*)"`)
	panPattern     = regexp.MustCompile(`\d(?:[ -]?\d){11,18}`)
)

// FlutterwaveCardProcessor talks to the Flutterwave v3 card endpoints. It keeps
// no state between calls; the flw_ref linking a charge to its follow-ups is
// owned by the caller.
type FlutterwaveCardProcessor struct {
	Network       *network.NetworkController
	SecretKey     string
	EncryptionKey string
	RedirectURL   string
}

var _ payment_types.CardProcessor = (*FlutterwaveCardProcessor)(nil)

func NewFlutterwaveCardProcessor(config env.FlutterwaveConfig) (*FlutterwaveCardProcessor, error) {
	if config.SecretKey == "" {
		return nil, apperrors.ConfigurationError("flutterwave secret key is required", nil)
	}
	if err := cryptography.ValidateTripleDESKey(config.EncryptionKey); err != nil {
		return nil, apperrors.ConfigurationError("flutterwave encryption key is invalid", err)
	}
	if config.BaseURL == "" {
		return nil, apperrors.ConfigurationError("flutterwave base url is required", nil)
	}
	return &FlutterwaveCardProcessor{
		Network:       network.NewNetworkController(config.BaseURL, config.Timeout),
		SecretKey:     config.SecretKey,
		EncryptionKey: config.EncryptionKey,
		RedirectURL:   config.RedirectURL,
	}, nil
}

func (flw *FlutterwaveCardProcessor) ChargeCard(ctx context.Context, data payment_types.CardPaymentData) (*payment_types.CardChargeResponse, error) {
	data.CardNumber = utils.DigitsOnly(data.CardNumber)
	if data.Currency == "" {
		data.Currency = DefaultCurrency
	}
	if err := flw.validate("ChargeCard", data, data.TxRef); err != nil {
		return nil, err
	}

	payload := buildCardPayload(data, flw.RedirectURL)
	envelope, err := BuildEnvelope(payload, flw.EncryptionKey, data.ClientIP, data.DeviceFingerprint)
	if err != nil {
		logger.Error("an error occured while trying to encode ChargeCard payload", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "payload",
			Data: RedactPayload(payload),
		})
		return nil, apperrors.ValidationError("card payload could not be encoded", err)
	}

	response, statusCode, err := flw.Network.Post(ctx, "/charges", flw.headers(), envelope, &map[string]string{
		"type": "card",
	}, false, nil)
	return flw.classify("ChargeCard", response, statusCode, err, data.Preauthorize, chargeMode, "failed to charge card", logger.LoggerOptions{
		Key:  "payload",
		Data: RedactPayload(payload),
	})
}

func (flw *FlutterwaveCardProcessor) ChargeWithToken(ctx context.Context, data payment_types.TokenizedChargeData) (*payment_types.CardChargeResponse, error) {
	if data.Currency == "" {
		data.Currency = DefaultCurrency
	}
	if err := flw.validate("ChargeWithToken", data, data.TxRef); err != nil {
		return nil, err
	}
	body := map[string]any{
		"token":        data.Token,
		"amount":       data.Amount,
		"currency":     data.Currency,
		"email":        data.Email,
		"tx_ref":       data.TxRef,
		"redirect_url": flw.RedirectURL,
	}
	if data.Narration != "" {
		body["narration"] = data.Narration
	}
	if data.Country != "" {
		body["country"] = data.Country
	}
	response, statusCode, err := flw.Network.Post(ctx, "/tokenized-charges", flw.headers(), body, nil, false, nil)
	return flw.classify("ChargeWithToken", response, statusCode, err, false, terminalMode, "failed to charge tokenized card", logger.LoggerOptions{
		Key:  "txRef",
		Data: data.TxRef,
	})
}

func (flw *FlutterwaveCardProcessor) ValidateCharge(ctx context.Context, flwRef string, otp string, validationType payment_types.ValidationType) (*payment_types.CardChargeResponse, error) {
	if validationType == "" {
		validationType = payment_types.ValidationTypeCard
	}
	if flwRef == "" || otp == "" {
		return nil, apperrors.ValidationError("flw_ref and otp are required to validate a charge", nil)
	}
	response, statusCode, err := flw.Network.Post(ctx, "/validate-charge", flw.headers(), map[string]any{
		"otp":     otp,
		"flw_ref": flwRef,
		"type":    validationType,
	}, nil, false, nil)
	return flw.classify("ValidateCharge", response, statusCode, err, false, validationMode, "failed to validate charge", logger.LoggerOptions{
		Key:  "flwRef",
		Data: flwRef,
	})
}

// VoidPreauthorization releases the hold of a preauthorized charge.
func (flw *FlutterwaveCardProcessor) VoidPreauthorization(ctx context.Context, id string) (*payment_types.CardChargeResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationError("transaction id is required to void a preauthorization", nil)
	}
	response, statusCode, err := flw.Network.Post(ctx, fmt.Sprintf("/charges/%s/void", url.PathEscape(id)), flw.headers(), nil, nil, false, nil)
	return flw.classify("VoidPreauthorization", response, statusCode, err, false, voidMode, "failed to void preauthorization", logger.LoggerOptions{
		Key:  "id",
		Data: id,
	})
}

// CapturePreauthorization settles a preauthorized charge. An amount of zero
// captures the full hold.
func (flw *FlutterwaveCardProcessor) CapturePreauthorization(ctx context.Context, id string, amount float64) (*payment_types.CardChargeResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationError("transaction id is required to capture a preauthorization", nil)
	}
	if amount < 0 {
		return nil, apperrors.ValidationError("capture amount cannot be negative", nil)
	}
	body := map[string]any{}
	if amount > 0 {
		body["amount"] = amount
	}
	response, statusCode, err := flw.Network.Post(ctx, fmt.Sprintf("/charges/%s/capture", url.PathEscape(id)), flw.headers(), body, nil, false, nil)
	return flw.classify("CapturePreauthorization", response, statusCode, err, false, terminalMode, "failed to capture preauthorization", logger.LoggerOptions{
		Key:  "id",
		Data: id,
	})
}

func (flw *FlutterwaveCardProcessor) VerifyPayment(ctx context.Context, id string) (*payment_types.LookupResponse, error) {
	if strings.TrimSpace(id) == "" {
		return nil, apperrors.ValidationError("transaction id is required to verify a payment", nil)
	}
	response, statusCode, err := flw.Network.Get(ctx, fmt.Sprintf("/transactions/%s/verify", url.PathEscape(id)), flw.headers(), nil)
	return flw.lookup("VerifyPayment", response, statusCode, err, "failed to verify transaction")
}

// GetCardBIN looks up issuer metadata. Only the first six digits ever leave
// this process.
func (flw *FlutterwaveCardProcessor) GetCardBIN(ctx context.Context, cardNumber string) (*payment_types.LookupResponse, error) {
	bin := utils.CardBIN(cardNumber)
	if err := validator.ValidatorInstance.ValidateValue(bin, "digits,len=6"); err != nil {
		return nil, apperrors.ValidationError("card number must contain at least six digits", err)
	}
	response, statusCode, err := flw.Network.Get(ctx, fmt.Sprintf("/card-bins/%s", bin), flw.headers(), nil)
	return flw.lookup("GetCardBIN", response, statusCode, err, "failed to resolve card BIN")
}

func (flw *FlutterwaveCardProcessor) headers() *map[string]string {
	return &map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", flw.SecretKey),
		"Content-Type":  "application/json",
	}
}

func (flw *FlutterwaveCardProcessor) validate(operation string, payload any, txRef string) error {
	errs := validator.ValidatorInstance.ValidateStruct(payload)
	if errs == nil {
		return nil
	}
	messages := []string{}
	for _, err := range *errs {
		messages = append(messages, err.Error())
	}
	logger.Warning(fmt.Sprintf("%s payload failed validation", operation), logger.LoggerOptions{
		Key:  "txRef",
		Data: txRef,
	}, logger.LoggerOptions{
		Key:  "errors",
		Data: messages,
	})
	return apperrors.ValidationError(strings.Join(messages, "; "), nil)
}

func (flw *FlutterwaveCardProcessor) classify(operation string, response *[]byte, statusCode *int, err error, preauthorize bool, mode interpretMode, fallbackMessage string, fields ...logger.LoggerOptions) (*payment_types.CardChargeResponse, error) {
	if err != nil {
		logger.Error(fmt.Sprintf("an error occured while trying to call %s", operation), append(fields, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "body",
			Data: redactBody(response),
		})...)
		return nil, apperrors.TransportError(salvageMessage(response, fallbackMessage), err)
	}

	result, err := interpret(*response, preauthorize, mode, fallbackMessage)
	if err != nil {
		logger.Error(fmt.Sprintf("an error occured while trying to unmarshal %s response", operation), append(fields, logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "statusCode",
			Data: statusCode,
		}, logger.LoggerOptions{
			Key:  "body",
			Data: redactBody(response),
		})...)
		return nil, apperrors.TransportError(salvageMessage(response, fallbackMessage), err)
	}

	if result.Data.Status == payment_types.StatusFailed {
		logger.Error(fmt.Sprintf("gateway rejected %s", operation), append(fields, logger.LoggerOptions{
			Key:  "statusCode",
			Data: statusCode,
		}, logger.LoggerOptions{
			Key:  "message",
			Data: result.Message,
		}, logger.LoggerOptions{
			Key:  "body",
			Data: redactBody(response),
		})...)
		return result, apperrors.GatewayRejected(result.Message)
	}

	logger.Info(fmt.Sprintf("%s completed", operation), logger.LoggerOptions{
		Key:  "status",
		Data: result.Data.Status,
	}, logger.LoggerOptions{
		Key:  "nextAction",
		Data: result.Data.NextAction,
	}, logger.LoggerOptions{
		Key:  "flwRef",
		Data: result.Data.FlwRef,
	})
	return result, nil
}

func (flw *FlutterwaveCardProcessor) lookup(operation string, response *[]byte, statusCode *int, err error, fallbackMessage string) (*payment_types.LookupResponse, error) {
	if err != nil {
		logger.Error(fmt.Sprintf("an error occured while trying to call %s", operation), logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "body",
			Data: redactBody(response),
		})
		return nil, apperrors.TransportError(salvageMessage(response, fallbackMessage), err)
	}

	var envelope gatewayEnvelope
	if err := json.Unmarshal(*response, &envelope); err != nil {
		logger.Error(fmt.Sprintf("an error occured while trying to unmarshal %s response", operation), logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "statusCode",
			Data: statusCode,
		}, logger.LoggerOptions{
			Key:  "body",
			Data: redactBody(response),
		})
		return nil, apperrors.TransportError(salvageMessage(response, fallbackMessage), err)
	}

	result := &payment_types.LookupResponse{
		Success: !strings.EqualFold(envelope.Status, gatewayStatusError),
		Message: envelope.Message,
		Data:    envelope.Data,
	}
	if !result.Success {
		if result.Message == "" {
			result.Message = fallbackMessage
		}
		logger.Error(fmt.Sprintf("gateway rejected %s", operation), logger.LoggerOptions{
			Key:  "statusCode",
			Data: statusCode,
		}, logger.LoggerOptions{
			Key:  "body",
			Data: redactBody(response),
		})
		return result, apperrors.GatewayRejected(result.Message)
	}
	return result, nil
}

// salvageMessage pulls a message out of a body that may be truncated or not
// JSON at all.
func salvageMessage(response *[]byte, fallbackMessage string) string {
	if response == nil {
		return fallbackMessage
	}
	matches := messagePattern.FindSubmatch(*response)
	if len(matches) < 2 || len(matches[1]) == 0 {
		return fallbackMessage
	}
	return string(matches[1])
}

func redactBody(response *[]byte) string {
	if response == nil {
		return ""
	}
	return panPattern.ReplaceAllStringFunc(string(*response), utils.MaskPAN)
}
