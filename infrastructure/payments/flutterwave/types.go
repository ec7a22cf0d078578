package flutterwave_card_processor

import (
	"encoding/json"
	"strings"
)

// gatewayEnvelope is the outer shape shared by every v3 response. data is kept
// raw because its shape differs per endpoint and is null on most errors.
type gatewayEnvelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    *chargeMeta     `json:"meta"`
}

type chargeData struct {
	ID                int64        `json:"id"`
	TxRef             string       `json:"tx_ref"`
	FlwRef            string       `json:"flw_ref"`
	DeviceFingerprint string       `json:"device_fingerprint"`
	Amount            float64      `json:"amount"`
	ChargedAmount     float64      `json:"charged_amount"`
	Currency          string       `json:"currency"`
	Status            string       `json:"status"`
	ProcessorResponse string       `json:"processor_response"`
	AuthModel         string       `json:"auth_model"`
	AuthURL           string       `json:"auth_url"`
	PaymentType       string       `json:"payment_type"`
	Card              *cardDetails `json:"card"`
}

type cardDetails struct {
	First6Digits string `json:"first_6digits"`
	Last4Digits  string `json:"last_4digits"`
	Issuer       string `json:"issuer"`
	Country      string `json:"country"`
	Type         string `json:"type"`
	Expiry       string `json:"expiry"`
	Token        string `json:"token"`
}

type chargeMeta struct {
	Authorization *authorizationMeta `json:"authorization"`
}

type authorizationMeta struct {
	Mode     string   `json:"mode"`
	Fields   []string `json:"fields"`
	Endpoint string   `json:"endpoint"`
	Redirect string   `json:"redirect"`
}

// Envelope is the request body of an encrypted card charge.
type Envelope struct {
	Client            string `json:"client"`
	ClientIP          string `json:"client_ip"`
	DeviceFingerprint string `json:"device_fingerprint"`
	Alg               string `json:"alg"`
}

func decodeChargeData(raw json.RawMessage) chargeData {
	var data chargeData
	if len(raw) == 0 {
		return data
	}
	// non-object data (null, arrays, strings) leaves every field empty
	_ = json.Unmarshal(raw, &data)
	return data
}

func (e gatewayEnvelope) authorization() *authorizationMeta {
	if e.Meta == nil {
		return nil
	}
	return e.Meta.Authorization
}

func isURL(value string) bool {
	return strings.HasPrefix(value, "https://") || strings.HasPrefix(value, "http://")
}
