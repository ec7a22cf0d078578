package flutterwave_card_processor

import (
	"encoding/json"
	"strings"

	payment_types "paygate.io/infrastructure/payments/types"
)

type interpretMode int

const (
	// chargeMode allows the pending/challenge branch of a fresh card charge.
	chargeMode interpretMode = iota
	// terminalMode only accepts a successful outcome.
	terminalMode
	// validationMode is terminalMode that names a second challenge explicitly.
	validationMode
	// voidMode expects a voided charge.
	voidMode
)

const (
	gatewayStatusError      = "error"
	gatewayStatusSuccess    = "success"
	chargeStatusSuccessful  = "successful"
	chargeStatusPending     = "pending"
	chargeStatusVoided      = "voided"
	unexpectedRevalidation  = "unexpected re-validation requested."
	unsupportedAuthModeText = "unsupported authorization mode requested by gateway"
)

// interpret classifies a gateway body. It only errors when the body is not a
// JSON object; rejections come back as a FAILED response.
func interpret(body []byte, preauthorize bool, mode interpretMode, fallbackMessage string) (*payment_types.CardChargeResponse, error) {
	var envelope gatewayEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, err
	}
	data := decodeChargeData(envelope.Data)
	auth := envelope.authorization()

	response := &payment_types.CardChargeResponse{
		Message: envelope.Message,
		Data: payment_types.CardChargeData{
			GatewayStatus: envelope.Status,
			FlwRef:        data.FlwRef,
			TxRef:         data.TxRef,
			TransactionID: data.ID,
			Amount:        data.Amount,
			Currency:      data.Currency,
			Card:          summariseCard(data.Card),
			Raw:           json.RawMessage(body),
		},
	}
	if data.Status != "" {
		response.Data.GatewayStatus = data.Status
	}

	if strings.EqualFold(envelope.Status, gatewayStatusError) {
		message := envelope.Message
		if message == "" {
			message = fallbackMessage
		}
		// an error body is terminal; nothing else from it is surfaced
		return reject(&payment_types.CardChargeResponse{
			Data: payment_types.CardChargeData{
				GatewayStatus: envelope.Status,
				Raw:           json.RawMessage(body),
			},
		}, message), nil
	}

	chargeStatus := strings.ToLower(data.Status)
	switch {
	case chargeStatus == chargeStatusSuccessful:
		return settle(response, payment_types.StatusSuccess, payment_types.ActionComplete), nil
	case chargeStatus == chargeStatusVoided && mode == voidMode:
		return settle(response, payment_types.StatusVoided, payment_types.ActionVoid), nil
	}

	switch mode {
	case chargeMode:
		return interpretChallenge(response, envelope, data, auth, preauthorize, fallbackMessage), nil
	case validationMode:
		if chargeStatus == chargeStatusPending && hasModeHint(auth, data) {
			return reject(response, unexpectedRevalidation), nil
		}
	}
	return reject(response, fallbackMessage), nil
}

func interpretChallenge(response *payment_types.CardChargeResponse, envelope gatewayEnvelope, data chargeData, auth *authorizationMeta, preauthorize bool, fallbackMessage string) *payment_types.CardChargeResponse {
	chargeStatus := strings.ToLower(data.Status)

	// the gateway asks for pin or address before it will create the charge
	if chargeStatus == "" && strings.EqualFold(envelope.Status, gatewayStatusSuccess) && auth != nil {
		action := actionForMode(auth, data)
		if action == payment_types.ActionValidatePIN || action == payment_types.ActionValidateAVS {
			response.Success = true
			response.Data.Status = payment_types.StatusRequiresAuth
			response.Data.NextAction = action
			response.Data.AuthFields = auth.Fields
			return response
		}
	}

	if chargeStatus != chargeStatusPending {
		return reject(response, fallbackMessage)
	}

	if !hasModeHint(auth, data) {
		response.Success = true
		response.Data.Status = payment_types.StatusPending
		return response
	}

	action := actionForMode(auth, data)
	if action == payment_types.ActionNone {
		return reject(response, unsupportedAuthModeText)
	}
	response.Success = true
	response.Data.NextAction = action
	response.Data.RedirectURL = redirectURL(auth, data)
	if auth != nil {
		response.Data.AuthFields = auth.Fields
	}
	if preauthorize {
		response.Data.Status = payment_types.StatusRequiresValidation
		response.Data.RequiresValidation = true
	} else {
		response.Data.Status = payment_types.StatusPending
	}
	return response
}

func hasModeHint(auth *authorizationMeta, data chargeData) bool {
	return (auth != nil && auth.Mode != "") || redirectURL(auth, data) != ""
}

func actionForMode(auth *authorizationMeta, data chargeData) payment_types.PaymentAction {
	mode := ""
	if auth != nil {
		mode = strings.ToLower(auth.Mode)
	}
	switch mode {
	case "otp":
		return payment_types.ActionValidateOTP
	case "pin":
		return payment_types.ActionValidatePIN
	case "redirect":
		return payment_types.ActionRedirect
	case "avs", "avs_noauth":
		return payment_types.ActionValidateAVS
	case "":
		if redirectURL(auth, data) != "" {
			return payment_types.ActionRedirect
		}
	}
	return payment_types.ActionNone
}

func redirectURL(auth *authorizationMeta, data chargeData) string {
	if auth != nil && isURL(auth.Redirect) {
		return auth.Redirect
	}
	// auth_url is "N/A" unless the charge really needs a redirect
	if isURL(data.AuthURL) {
		return data.AuthURL
	}
	return ""
}

func summariseCard(card *cardDetails) *payment_types.CardSummary {
	if card == nil {
		return nil
	}
	return &payment_types.CardSummary{
		First6:  card.First6Digits,
		Last4:   card.Last4Digits,
		Issuer:  card.Issuer,
		Type:    card.Type,
		Country: card.Country,
		Expiry:  card.Expiry,
		Token:   card.Token,
	}
}

func settle(response *payment_types.CardChargeResponse, status payment_types.PaymentStatus, action payment_types.PaymentAction) *payment_types.CardChargeResponse {
	response.Success = true
	response.Data.Status = status
	response.Data.NextAction = action
	return response
}

func reject(response *payment_types.CardChargeResponse, message string) *payment_types.CardChargeResponse {
	response.Success = false
	response.Message = message
	response.Data.Status = payment_types.StatusFailed
	response.Data.NextAction = payment_types.ActionFailed
	response.Data.RequiresValidation = false
	return response
}
