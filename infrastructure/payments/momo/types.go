package momo_collection_processor

// MoMoStatus is the provider's own vocabulary and is not mapped onto card
// statuses.
type MoMoStatus string

const (
	MoMoStatusPending    MoMoStatus = "PENDING"
	MoMoStatusSuccessful MoMoStatus = "SUCCESSFUL"
	MoMoStatusFailed     MoMoStatus = "FAILED"
)

type AccessToken struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type MoMoPaymentRequest struct {
	Amount       float64 `json:"amount" validate:"gt=0"`
	Currency     string  `json:"currency" validate:"required,len=3"`
	ExternalID   string  `json:"externalId" validate:"required"`
	PayerMSISDN  string  `json:"payerMsisdn" validate:"required,digits,min=8,max=15"`
	PayerMessage string  `json:"payerMessage"`
	PayeeNote    string  `json:"payeeNote"`
}

type RequestToPayResult struct {
	ReferenceID string     `json:"referenceId"`
	Status      MoMoStatus `json:"status"`
}

type Party struct {
	PartyIDType string `json:"partyIdType"`
	PartyID     string `json:"partyId"`
}

type RequestToPayStatus struct {
	Amount                 string     `json:"amount"`
	Currency               string     `json:"currency"`
	FinancialTransactionID string     `json:"financialTransactionId,omitempty"`
	ExternalID             string     `json:"externalId"`
	Payer                  Party      `json:"payer"`
	PayerMessage           string     `json:"payerMessage,omitempty"`
	PayeeNote              string     `json:"payeeNote,omitempty"`
	Status                 MoMoStatus `json:"status"`
	Reason                 any        `json:"reason,omitempty"`
}

type requestToPayBody struct {
	Amount       string `json:"amount"`
	Currency     string `json:"currency"`
	ExternalID   string `json:"externalId"`
	Payer        Party  `json:"payer"`
	PayerMessage string `json:"payerMessage"`
	PayeeNote    string `json:"payeeNote"`
}

type providerError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Error   string `json:"error"`
}
