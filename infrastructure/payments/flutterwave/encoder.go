package flutterwave_card_processor

import (
	"encoding/json"
	"fmt"
	"strings"

	"paygate.io/application/utils"
	"paygate.io/infrastructure/cryptography"
	payment_types "paygate.io/infrastructure/payments/types"
)

const envelopeAlgorithm = "3DES-24"

var sensitiveFields = []string{"cvv", "pin", "otp"}

// EncodePayload serialises payload and encrypts it the way the gateway
// decrypts the client field. encoding/json sorts map keys so equal payloads
// always produce equal ciphertext.
func EncodePayload(payload map[string]any, encryptionKey string) (string, error) {
	serialised, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to serialise charge payload: %w", err)
	}
	return cryptography.EncryptTripleDES(serialised, encryptionKey)
}

func BuildEnvelope(payload map[string]any, encryptionKey string, clientIP string, deviceFingerprint string) (*Envelope, error) {
	client, err := EncodePayload(payload, encryptionKey)
	if err != nil {
		return nil, err
	}
	return &Envelope{
		Client:            client,
		ClientIP:          clientIP,
		DeviceFingerprint: deviceFingerprint,
		Alg:               envelopeAlgorithm,
	}, nil
}

func buildCardPayload(data payment_types.CardPaymentData, redirectURL string) map[string]any {
	if data.RedirectURL != "" {
		redirectURL = data.RedirectURL
	}
	payload := map[string]any{
		"card_number":   data.CardNumber,
		"cvv":           data.CVV,
		"expiry_month":  data.ExpiryMonth,
		"expiry_year":   data.ExpiryYear,
		"currency":      data.Currency,
		"amount":        data.Amount,
		"email":         data.Email,
		"fullname":      data.FullName,
		"tx_ref":        data.TxRef,
		"redirect_url":  redirectURL,
		"usesecureauth": false,
	}
	if data.PhoneNumber != "" {
		payload["phone_number"] = data.PhoneNumber
	}
	if data.Preauthorize {
		payload["preauthorize"] = true
	}
	if len(data.Meta) > 0 {
		payload["meta"] = data.Meta
	}
	if authorization := buildAuthorization(data.Authorization); authorization != nil {
		payload["authorization"] = authorization
	}
	return payload
}

func buildAuthorization(auth *payment_types.AuthorizationData) map[string]any {
	if auth == nil {
		return nil
	}
	switch auth.Mode {
	case payment_types.AuthModePIN:
		return map[string]any{"mode": "pin", "pin": auth.Pin}
	case payment_types.AuthModeOTP:
		return map[string]any{"mode": "otp", "otp": auth.OTP}
	case payment_types.AuthModeRedirect:
		return map[string]any{"mode": "redirect"}
	case payment_types.AuthModeAVSNoAuth:
		return map[string]any{
			"mode":    "avs_noauth",
			"address": auth.Address,
			"city":    auth.City,
			"state":   auth.State,
			"country": auth.Country,
			"zipcode": auth.Zipcode,
		}
	}
	return nil
}

// RedactPayload returns a copy of a charge payload that is safe to log.
func RedactPayload(payload map[string]any) map[string]any {
	redacted := make(map[string]any, len(payload))
	for key, value := range payload {
		switch {
		case key == "card_number":
			redacted[key] = utils.MaskPAN(fmt.Sprint(value))
		case isSensitive(key):
			continue
		default:
			switch nested := value.(type) {
			case map[string]any:
				redacted[key] = RedactPayload(nested)
			case map[string]string:
				redacted[key] = redactStrings(nested)
			default:
				redacted[key] = value
			}
		}
	}
	return redacted
}

// redactStrings covers free-form maps such as meta, where a card number can
// turn up under any key.
func redactStrings(values map[string]string) map[string]string {
	redacted := make(map[string]string, len(values))
	for key, value := range values {
		if isSensitive(key) {
			continue
		}
		redacted[key] = panPattern.ReplaceAllStringFunc(value, utils.MaskPAN)
	}
	return redacted
}

func isSensitive(key string) bool {
	key = strings.ToLower(key)
	return utils.HasItemString(&sensitiveFields, key)
}
