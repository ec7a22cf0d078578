package infrastructure

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "paygate.io/application/appErrors"
	"paygate.io/infrastructure/env"
	"paygate.io/infrastructure/payments"
	momo_collection_processor "paygate.io/infrastructure/payments/momo"
	payment_types "paygate.io/infrastructure/payments/types"
)

type fakeCardProcessor struct {
	charged     *payment_types.CardPaymentData
	captured    float64
	capturedID  string
	lookedUpBIN string
	err         error
	response    *payment_types.CardChargeResponse
}

func (f *fakeCardProcessor) ChargeCard(_ context.Context, data payment_types.CardPaymentData) (*payment_types.CardChargeResponse, error) {
	f.charged = &data
	return f.response, f.err
}

func (f *fakeCardProcessor) ChargeWithToken(context.Context, payment_types.TokenizedChargeData) (*payment_types.CardChargeResponse, error) {
	return f.response, f.err
}

func (f *fakeCardProcessor) ValidateCharge(context.Context, string, string, payment_types.ValidationType) (*payment_types.CardChargeResponse, error) {
	return f.response, f.err
}

func (f *fakeCardProcessor) VoidPreauthorization(context.Context, string) (*payment_types.CardChargeResponse, error) {
	return f.response, f.err
}

func (f *fakeCardProcessor) CapturePreauthorization(_ context.Context, id string, amount float64) (*payment_types.CardChargeResponse, error) {
	f.capturedID = id
	f.captured = amount
	return f.response, f.err
}

func (f *fakeCardProcessor) VerifyPayment(context.Context, string) (*payment_types.LookupResponse, error) {
	return &payment_types.LookupResponse{Success: true, Message: "Transaction fetched successfully", Data: json.RawMessage(`{"id":1}`)}, f.err
}

func (f *fakeCardProcessor) GetCardBIN(_ context.Context, cardNumber string) (*payment_types.LookupResponse, error) {
	f.lookedUpBIN = cardNumber
	return &payment_types.LookupResponse{Success: true, Data: json.RawMessage(`{"bin":"553188"}`)}, f.err
}

type fakeMoMoProcessor struct{}

func (fakeMoMoProcessor) RequestToPay(context.Context, momo_collection_processor.MoMoPaymentRequest) (*momo_collection_processor.RequestToPayResult, error) {
	return &momo_collection_processor.RequestToPayResult{ReferenceID: "b0a8b7e2-3c1f-4f5e-9d0a-1b2c3d4e5f60", Status: momo_collection_processor.MoMoStatusPending}, nil
}

func (fakeMoMoProcessor) GetRequestToPayStatus(context.Context, string) (*momo_collection_processor.RequestToPayStatus, error) {
	return nil, apperrors.TransportError("mobile money provider is unavailable", nil)
}

func testConfig() *env.Config {
	return &env.Config{
		Env:     "test",
		Port:    "8080",
		GinMode: "test",
	}
}

func withProcessors(t *testing.T, card payment_types.CardProcessor, momo payments.MobileMoneyProcessor) {
	t.Helper()
	previousCard, previousMoMo := payments.CardProcessor, payments.MoMoProcessor
	payments.CardProcessor, payments.MoMoProcessor = card, momo
	t.Cleanup(func() {
		payments.CardProcessor, payments.MoMoProcessor = previousCard, previousMoMo
	})
}

func perform(t *testing.T, method string, path string, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	router := NewRouter(testConfig())
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded), recorder.Body.String())
	return recorder, decoded
}

const chargeBody = `{"card_number":"5531886652142950","cvv":"564","expiry_month":"09","expiry_year":"32","amount":100,"currency":"NGN","tx_ref":"MC-3243e","email":"user@flw.com","preauthorize":true}`

func TestPing(t *testing.T) {
	recorder, body := perform(t, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "pong!", body["message"])
}

func TestChargeCardRouteResolvesDevice(t *testing.T) {
	card := &fakeCardProcessor{response: &payment_types.CardChargeResponse{
		Success: true,
		Message: "Charge initiated",
		Data: payment_types.CardChargeData{
			Status:             payment_types.StatusRequiresValidation,
			NextAction:         payment_types.ActionValidateOTP,
			RequiresValidation: true,
			FlwRef:             "FLW123",
		},
	}}
	withProcessors(t, card, nil)

	recorder, body := perform(t, http.MethodPost, "/api/v1/payments/card/charge", chargeBody, map[string]string{
		"X-Device-Id":     "62wd23423rq324323qew1",
		"X-Forwarded-For": "154.123.220.1",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Charge initiated", body["message"])
	assert.Equal(t, 3121.0, body["response_code"])
	assert.NotEmpty(t, recorder.Header().Get("X-Request-Id"))

	payload := body["body"].(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "REQUIRES_VALIDATION", payload["status"])
	assert.Equal(t, "VALIDATE_OTP", payload["nextAction"])
	assert.Equal(t, "FLW123", payload["flwRef"])

	require.NotNil(t, card.charged)
	assert.Equal(t, "62wd23423rq324323qew1", card.charged.DeviceFingerprint)
	assert.NotEmpty(t, card.charged.ClientIP)
	assert.True(t, card.charged.Preauthorize)
}

func TestChargeCardRouteFingerprintsUserAgent(t *testing.T) {
	card := &fakeCardProcessor{response: &payment_types.CardChargeResponse{Success: true}}
	withProcessors(t, card, nil)

	recorder, _ := perform(t, http.MethodPost, "/api/v1/payments/card/charge", chargeBody, map[string]string{
		"X-Request-Id": "01HZX3J1Q5N8Z2",
	})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "01HZX3J1Q5N8Z2", recorder.Header().Get("X-Request-Id"))
	require.NotNil(t, card.charged)
	assert.Len(t, card.charged.DeviceFingerprint, 32)
}

func TestMissingDeviceIsRejected(t *testing.T) {
	withProcessors(t, &fakeCardProcessor{}, nil)
	router := NewRouter(testConfig())
	request := httptest.NewRequest(http.MethodPost, "/api/v1/payments/card/charge", strings.NewReader(chargeBody))
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestPaymentErrorsMapToStatusCodes(t *testing.T) {
	failed := &payment_types.CardChargeResponse{
		Message: "Invalid card",
		Data:    payment_types.CardChargeData{Status: payment_types.StatusFailed, NextAction: payment_types.ActionFailed},
	}
	tests := []struct {
		name        string
		err         error
		response    *payment_types.CardChargeResponse
		wantCode    int
		wantMessage string
	}{
		{name: "validation", err: apperrors.ValidationError("pin is required when Mode is PIN", nil), wantCode: http.StatusUnprocessableEntity},
		{name: "gateway rejected", err: apperrors.GatewayRejected("Invalid card"), response: failed, wantCode: http.StatusBadRequest, wantMessage: "Invalid card"},
		{name: "transport", err: apperrors.TransportError("failed to charge card", context.DeadlineExceeded), wantCode: http.StatusServiceUnavailable},
		{name: "configuration", err: apperrors.ConfigurationError("flutterwave secret key is required", nil), wantCode: http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withProcessors(t, &fakeCardProcessor{err: tt.err, response: tt.response}, nil)
			recorder, body := perform(t, http.MethodPost, "/api/v1/payments/card/charge", chargeBody, nil)
			assert.Equal(t, tt.wantCode, recorder.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, body["message"])
				assert.Equal(t, 4010.0, body["response_code"])
				assert.Equal(t, "FAILED", body["body"].(map[string]any)["data"].(map[string]any)["status"])
			}
		})
	}
}

func TestMalformedBodyIsRejected(t *testing.T) {
	withProcessors(t, &fakeCardProcessor{}, nil)
	recorder, _ := perform(t, http.MethodPost, "/api/v1/payments/card/charge", `{"amount":`, nil)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestValidateRouteChecksBody(t *testing.T) {
	withProcessors(t, &fakeCardProcessor{response: &payment_types.CardChargeResponse{Success: true}}, nil)
	recorder, body := perform(t, http.MethodPost, "/api/v1/payments/card/validate", `{"flw_ref":"FLW123","otp":"12a45"}`, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	assert.NotEmpty(t, body["errors"])

	recorder, _ = perform(t, http.MethodPost, "/api/v1/payments/card/validate", `{"flw_ref":"FLW123","otp":"12345"}`, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCaptureRoute(t *testing.T) {
	card := &fakeCardProcessor{response: &payment_types.CardChargeResponse{Success: true}}
	withProcessors(t, card, nil)

	recorder, _ := perform(t, http.MethodPost, "/api/v1/payments/card/4197/capture", `{"amount":40}`, nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "4197", card.capturedID)
	assert.Equal(t, 40.0, card.captured)

	recorder, _ = perform(t, http.MethodPost, "/api/v1/payments/card/4198/capture", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "4198", card.capturedID)
	assert.Equal(t, 0.0, card.captured)
}

func TestLookupRoutes(t *testing.T) {
	card := &fakeCardProcessor{}
	withProcessors(t, card, nil)

	recorder, body := perform(t, http.MethodGet, "/api/v1/payments/transactions/288200/verify", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "Transaction fetched successfully", body["message"])

	recorder, _ = perform(t, http.MethodGet, "/api/v1/payments/card-bins/553188", "", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, "553188", card.lookedUpBIN)
}

func TestMoMoRoutes(t *testing.T) {
	withProcessors(t, &fakeCardProcessor{}, fakeMoMoProcessor{})

	recorder, body := perform(t, http.MethodPost, "/api/v1/payments/momo/request-to-pay", `{"amount":500,"currency":"EUR","externalId":"order-7","payerMsisdn":"46733123454"}`, nil)
	assert.Equal(t, http.StatusAccepted, recorder.Code)
	assert.Equal(t, "PENDING", body["body"].(map[string]any)["status"])

	recorder, _ = perform(t, http.MethodGet, "/api/v1/payments/momo/request-to-pay/b0a8b7e2-3c1f-4f5e-9d0a-1b2c3d4e5f60", "", nil)
	assert.Equal(t, http.StatusServiceUnavailable, recorder.Code)
}

func TestMoMoRoutesWhenDisabled(t *testing.T) {
	withProcessors(t, &fakeCardProcessor{}, nil)
	recorder, _ := perform(t, http.MethodPost, "/api/v1/payments/momo/request-to-pay", `{"amount":500}`, nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUnknownRoute(t *testing.T) {
	recorder, _ := perform(t, http.MethodGet, "/api/v1/payments/refunds", "", nil)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}
