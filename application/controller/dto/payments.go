package dto

import (
	momo_collection_processor "paygate.io/infrastructure/payments/momo"
	payment_types "paygate.io/infrastructure/payments/types"
)

// ChargeCardDTO is the card charge body accepted over HTTP. The client ip and
// device fingerprint come from the request, never from the body.
type ChargeCardDTO struct {
	CardNumber    string                           `json:"card_number"`
	CVV           string                           `json:"cvv"`
	ExpiryMonth   string                           `json:"expiry_month"`
	ExpiryYear    string                           `json:"expiry_year"`
	Amount        float64                          `json:"amount"`
	Currency      string                           `json:"currency"`
	TxRef         string                           `json:"tx_ref"`
	Email         string                           `json:"email"`
	FullName      string                           `json:"fullname"`
	PhoneNumber   string                           `json:"phone_number"`
	Preauthorize  bool                             `json:"preauthorize"`
	RedirectURL   string                           `json:"redirect_url"`
	Meta          map[string]string                `json:"meta"`
	Authorization *payment_types.AuthorizationData `json:"authorization"`
}

func (d *ChargeCardDTO) ToPaymentData(clientIP string, deviceFingerprint string) payment_types.CardPaymentData {
	return payment_types.CardPaymentData{
		CardNumber:        d.CardNumber,
		CVV:               d.CVV,
		ExpiryMonth:       d.ExpiryMonth,
		ExpiryYear:        d.ExpiryYear,
		Amount:            d.Amount,
		Currency:          d.Currency,
		TxRef:             d.TxRef,
		Email:             d.Email,
		FullName:          d.FullName,
		PhoneNumber:       d.PhoneNumber,
		Preauthorize:      d.Preauthorize,
		RedirectURL:       d.RedirectURL,
		ClientIP:          clientIP,
		DeviceFingerprint: deviceFingerprint,
		Meta:              d.Meta,
		Authorization:     d.Authorization,
	}
}

type TokenChargeDTO = payment_types.TokenizedChargeData

type ValidateChargeDTO struct {
	FlwRef string                       `json:"flw_ref" validate:"required"`
	OTP    string                       `json:"otp" validate:"required,digits"`
	Type   payment_types.ValidationType `json:"type" validate:"omitempty,oneof=card account"`
}

type CapturePreauthorizationDTO struct {
	Amount float64 `json:"amount" validate:"gte=0"`
}

type RequestToPayDTO = momo_collection_processor.MoMoPaymentRequest
