package payments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "paygate.io/application/appErrors"
	"paygate.io/infrastructure/env"
)

func testConfig() *env.Config {
	return &env.Config{
		Env:     "test",
		Port:    "8080",
		GinMode: "test",
		Flutterwave: env.FlutterwaveConfig{
			BaseURL:       "https://api.flutterwave.com/v3",
			SecretKey:     "FLWSECK_TEST-5c3f1e0a9b",
			EncryptionKey: "FLWSECK_TEST3f9a1c2d7e8b",
			RedirectURL:   "https://merchant.example.com/return",
			Timeout:       time.Second,
		},
	}
}

func TestInitialisePaymentProcessorsCardOnly(t *testing.T) {
	MoMoProcessor = nil
	require.NoError(t, InitialisePaymentProcessors(testConfig(), nil))
	assert.NotNil(t, CardProcessor)
	assert.Nil(t, MoMoProcessor)
}

func TestInitialisePaymentProcessorsWithMoMo(t *testing.T) {
	config := testConfig()
	config.MoMo = &env.MoMoConfig{
		BaseURL:           "https://sandbox.momodeveloper.mtn.com",
		APIUser:           "api-user",
		APIKey:            "api-key",
		SubscriptionKey:   "sub-key",
		TargetEnvironment: "sandbox",
	}
	require.NoError(t, InitialisePaymentProcessors(config, nil))
	assert.NotNil(t, MoMoProcessor)
}

func TestInitialisePaymentProcessorsFailsFast(t *testing.T) {
	config := testConfig()
	config.Flutterwave.EncryptionKey = "short"
	err := InitialisePaymentProcessors(config, nil)
	assert.True(t, apperrors.IsKind(err, apperrors.ConfigurationErrorKind))
}
