package payment_types

import (
	"context"
	"encoding/json"
)

type CardProcessor interface {
	ChargeCard(ctx context.Context, data CardPaymentData) (*CardChargeResponse, error)
	ChargeWithToken(ctx context.Context, data TokenizedChargeData) (*CardChargeResponse, error)
	ValidateCharge(ctx context.Context, flwRef string, otp string, validationType ValidationType) (*CardChargeResponse, error)
	VoidPreauthorization(ctx context.Context, id string) (*CardChargeResponse, error)
	CapturePreauthorization(ctx context.Context, id string, amount float64) (*CardChargeResponse, error)
	VerifyPayment(ctx context.Context, id string) (*LookupResponse, error)
	GetCardBIN(ctx context.Context, cardNumber string) (*LookupResponse, error)
}

type PaymentStatus string

const (
	StatusPending            PaymentStatus = "PENDING"
	StatusSuccess            PaymentStatus = "SUCCESS"
	StatusFailed             PaymentStatus = "FAILED"
	StatusRequiresAuth       PaymentStatus = "REQUIRES_AUTH"
	StatusRequiresValidation PaymentStatus = "REQUIRES_VALIDATION"
	StatusVoided             PaymentStatus = "VOIDED"
)

func (s PaymentStatus) IsTerminal() bool {
	return s == StatusSuccess || s == StatusFailed || s == StatusVoided
}

type PaymentAction string

const (
	ActionNone        PaymentAction = ""
	ActionValidateOTP PaymentAction = "VALIDATE_OTP"
	ActionValidatePIN PaymentAction = "VALIDATE_PIN"
	ActionRedirect    PaymentAction = "REDIRECT"
	ActionValidateAVS PaymentAction = "VALIDATE_AVS"
	ActionComplete    PaymentAction = "COMPLETE"
	ActionFailed      PaymentAction = "FAILED"
	ActionVoid        PaymentAction = "VOID"
)

type AuthorizationMode string

const (
	AuthModePIN       AuthorizationMode = "PIN"
	AuthModeOTP       AuthorizationMode = "OTP"
	AuthModeRedirect  AuthorizationMode = "REDIRECT"
	AuthModeAVSNoAuth AuthorizationMode = "AVS_NOAUTH"
	AuthModeNone      AuthorizationMode = "NONE"
)

// AuthorizationData carries the challenge response for one mode. Fields that
// do not belong to Mode are ignored when the payload is built.
type AuthorizationData struct {
	Mode    AuthorizationMode `json:"mode" validate:"required,oneof=PIN OTP REDIRECT AVS_NOAUTH NONE"`
	Pin     string            `json:"pin,omitempty" validate:"required_if=Mode PIN"`
	OTP     string            `json:"otp,omitempty" validate:"required_if=Mode OTP"`
	Address string            `json:"address,omitempty" validate:"required_if=Mode AVS_NOAUTH"`
	City    string            `json:"city,omitempty" validate:"required_if=Mode AVS_NOAUTH"`
	State   string            `json:"state,omitempty" validate:"required_if=Mode AVS_NOAUTH"`
	Country string            `json:"country,omitempty" validate:"required_if=Mode AVS_NOAUTH"`
	Zipcode string            `json:"zipcode,omitempty" validate:"required_if=Mode AVS_NOAUTH"`
}

type CardPaymentData struct {
	CardNumber        string             `json:"card_number" validate:"required,luhn"`
	CVV               string             `json:"cvv" validate:"required,digits,min=3,max=4"`
	ExpiryMonth       string             `json:"expiry_month" validate:"required,expiry_month"`
	ExpiryYear        string             `json:"expiry_year" validate:"required,expiry_year"`
	Amount            float64            `json:"amount" validate:"gt=0"`
	Currency          string             `json:"currency" validate:"omitempty,len=3"`
	TxRef             string             `json:"tx_ref" validate:"required"`
	Email             string             `json:"email" validate:"required,email"`
	FullName          string             `json:"fullname"`
	PhoneNumber       string             `json:"phone_number"`
	Preauthorize      bool               `json:"preauthorize"`
	RedirectURL       string             `json:"redirect_url" validate:"omitempty,url"`
	ClientIP          string             `json:"client_ip"`
	DeviceFingerprint string             `json:"device_fingerprint"`
	Meta              map[string]string  `json:"meta,omitempty"`
	Authorization     *AuthorizationData `json:"authorization,omitempty"`
}

type TokenizedChargeData struct {
	Token     string  `json:"token" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Currency  string  `json:"currency" validate:"omitempty,len=3"`
	Email     string  `json:"email" validate:"required,email"`
	TxRef     string  `json:"tx_ref" validate:"required"`
	Narration string  `json:"narration"`
	Country   string  `json:"country" validate:"omitempty,len=2"`
}

type ValidationType string

const (
	ValidationTypeCard    ValidationType = "card"
	ValidationTypeAccount ValidationType = "account"
)

// ChargeAttempt is the correlation state a caller keeps between a charge and
// its follow-up calls. Nothing in this module stores it.
type ChargeAttempt struct {
	TxRef    string        `json:"txRef"`
	FlwRef   string        `json:"flwRef"`
	Amount   float64       `json:"amount"`
	Currency string        `json:"currency"`
	Status   PaymentStatus `json:"status"`
}

type CardChargeResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Data    CardChargeData `json:"data"`
}

type CardChargeData struct {
	GatewayStatus      string          `json:"gatewayStatus"`
	Status             PaymentStatus   `json:"status"`
	NextAction         PaymentAction   `json:"nextAction,omitempty"`
	RequiresValidation bool            `json:"requiresValidation"`
	FlwRef             string          `json:"flwRef,omitempty"`
	TxRef              string          `json:"txRef,omitempty"`
	TransactionID      int64           `json:"transactionId,omitempty"`
	Amount             float64         `json:"amount,omitempty"`
	Currency           string          `json:"currency,omitempty"`
	RedirectURL        string          `json:"redirectUrl,omitempty"`
	AuthFields         []string        `json:"authFields,omitempty"`
	Card               *CardSummary    `json:"card,omitempty"`
	Raw                json.RawMessage `json:"raw,omitempty"`
}

type CardSummary struct {
	First6  string `json:"first6"`
	Last4   string `json:"last4"`
	Issuer  string `json:"issuer,omitempty"`
	Type    string `json:"type,omitempty"`
	Country string `json:"country,omitempty"`
	Expiry  string `json:"expiry,omitempty"`
	Token   string `json:"token,omitempty"`
}

func (r *CardChargeResponse) Attempt() ChargeAttempt {
	return ChargeAttempt{
		TxRef:    r.Data.TxRef,
		FlwRef:   r.Data.FlwRef,
		Amount:   r.Data.Amount,
		Currency: r.Data.Currency,
		Status:   r.Data.Status,
	}
}

// LookupResponse passes a read-only gateway body through untouched.
type LookupResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}
