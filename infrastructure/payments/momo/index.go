package momo_collection_processor

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	apperrors "paygate.io/application/appErrors"
	"paygate.io/infrastructure/env"
	"paygate.io/infrastructure/logger"
	"paygate.io/infrastructure/network"
	"paygate.io/infrastructure/validator"
)

const (
	TokenCacheKey       = "momo:collection:token"
	tokenExpiryLeeway   = 60 * time.Second
	breakerTripAfter    = 5
	breakerOpenDuration = 30 * time.Second
)

// errCallerCancelled marks calls the caller gave up on. They say nothing about
// the provider so the breaker does not count them.
var errCallerCancelled = errors.New("caller cancelled the request")

// TokenCache is the subset of the redis repository the processor needs.
type TokenCache interface {
	CreateEntry(ctx context.Context, key string, payload interface{}, ttl time.Duration) bool
	FindOne(ctx context.Context, key string) *string
	DeleteOne(ctx context.Context, key string) bool
}

// MoMoCollectionProcessor wraps the MTN MoMo collection product. Every call
// goes through one circuit breaker; nothing is retried.
type MoMoCollectionProcessor struct {
	Network *network.NetworkController
	Config  env.MoMoConfig
	Cache   TokenCache
	breaker *gobreaker.CircuitBreaker
}

// NewMoMoCollectionProcessor builds the processor. cache may be nil, in which
// case a token is requested for every call.
func NewMoMoCollectionProcessor(config env.MoMoConfig, timeout time.Duration, cache TokenCache) (*MoMoCollectionProcessor, error) {
	if errs := validator.ValidatorInstance.ValidateStruct(config); errs != nil {
		return nil, apperrors.ConfigurationError("mobile money configuration is invalid", errors.Join(*errs...))
	}
	return &MoMoCollectionProcessor{
		Network: network.NewNetworkController(config.BaseURL, timeout),
		Config:  config,
		Cache:   cache,
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "momo-collection",
			MaxRequests: 1,
			Timeout:     breakerOpenDuration,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= breakerTripAfter
			},
			// only an unreachable provider counts against the breaker
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, errCallerCancelled) || !apperrors.IsKind(err, apperrors.TransportErrorKind)
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				logger.Warning("circuit breaker changed state", logger.LoggerOptions{
					Key:  "breaker",
					Data: name,
				}, logger.LoggerOptions{
					Key:  "from",
					Data: from.String(),
				}, logger.LoggerOptions{
					Key:  "to",
					Data: to.String(),
				})
			},
		}),
	}, nil
}

// CreateAccessToken returns the cached token when there is one. A cached token
// keeps the expires_in it was issued with.
func (momo *MoMoCollectionProcessor) CreateAccessToken(ctx context.Context) (*AccessToken, error) {
	if token := momo.cachedToken(ctx); token != nil {
		return token, nil
	}

	body, err := momo.execute(ctx, "CreateAccessToken", http.StatusOK, func() (*[]byte, *int, error) {
		return momo.Network.Post(ctx, "/collection/token/", &map[string]string{
			"Ocp-Apim-Subscription-Key": momo.Config.SubscriptionKey,
		}, nil, nil, false, &network.BasicAuth{
			Username: momo.Config.APIUser,
			Password: momo.Config.APIKey,
		})
	})
	if err != nil {
		return nil, err
	}

	var token AccessToken
	if err := json.Unmarshal(body, &token); err != nil || token.AccessToken == "" {
		logger.Error("an error occured while trying to unmarshal CreateAccessToken response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, apperrors.TransportError("mobile money token response was malformed", err)
	}

	ttl := time.Duration(token.ExpiresIn)*time.Second - tokenExpiryLeeway
	if momo.Cache != nil && ttl > 0 {
		if encoded, err := json.Marshal(token); err == nil {
			momo.Cache.CreateEntry(ctx, TokenCacheKey, string(encoded), ttl)
		}
	}
	return &token, nil
}

func (momo *MoMoCollectionProcessor) cachedToken(ctx context.Context) *AccessToken {
	if momo.Cache == nil {
		return nil
	}
	cached := momo.Cache.FindOne(ctx, TokenCacheKey)
	if cached == nil {
		return nil
	}
	var token AccessToken
	if err := json.Unmarshal([]byte(*cached), &token); err != nil || token.AccessToken == "" {
		momo.Cache.DeleteOne(ctx, TokenCacheKey)
		return nil
	}
	return &token
}

// RequestToPay asks the payer to approve a debit. The provider answers 202 and
// the outcome is read later with GetRequestToPayStatus.
func (momo *MoMoCollectionProcessor) RequestToPay(ctx context.Context, payload MoMoPaymentRequest) (*RequestToPayResult, error) {
	if errs := validator.ValidatorInstance.ValidateStruct(payload); errs != nil {
		messages := []string{}
		for _, err := range *errs {
			messages = append(messages, err.Error())
		}
		return nil, apperrors.ValidationError(strings.Join(messages, "; "), nil)
	}
	token, err := momo.CreateAccessToken(ctx)
	if err != nil {
		return nil, err
	}

	referenceID := uuid.NewString()
	headers := momo.headers(token.AccessToken)
	(*headers)["X-Reference-Id"] = referenceID
	if momo.Config.CallbackURL != "" {
		(*headers)["X-Callback-Url"] = momo.Config.CallbackURL
	}
	_, err = momo.execute(ctx, "RequestToPay", http.StatusAccepted, func() (*[]byte, *int, error) {
		return momo.Network.Post(ctx, "/collection/v1_0/requesttopay", headers, requestToPayBody{
			Amount:     strconv.FormatFloat(payload.Amount, 'f', -1, 64),
			Currency:   payload.Currency,
			ExternalID: payload.ExternalID,
			Payer: Party{
				PartyIDType: "MSISDN",
				PartyID:     payload.PayerMSISDN,
			},
			PayerMessage: payload.PayerMessage,
			PayeeNote:    payload.PayeeNote,
		}, nil, false, nil)
	})
	if err != nil {
		return nil, err
	}
	logger.Info("RequestToPay accepted", logger.LoggerOptions{
		Key:  "referenceId",
		Data: referenceID,
	}, logger.LoggerOptions{
		Key:  "externalId",
		Data: payload.ExternalID,
	})
	return &RequestToPayResult{ReferenceID: referenceID, Status: MoMoStatusPending}, nil
}

func (momo *MoMoCollectionProcessor) GetRequestToPayStatus(ctx context.Context, referenceID string) (*RequestToPayStatus, error) {
	if err := validator.ValidatorInstance.ValidateValue(referenceID, "required,uuid"); err != nil {
		return nil, apperrors.ValidationError("reference id must be a uuid", err)
	}
	token, err := momo.CreateAccessToken(ctx)
	if err != nil {
		return nil, err
	}
	body, err := momo.execute(ctx, "GetRequestToPayStatus", http.StatusOK, func() (*[]byte, *int, error) {
		return momo.Network.Get(ctx, fmt.Sprintf("/collection/v1_0/requesttopay/%s", url.PathEscape(referenceID)), momo.headers(token.AccessToken), nil)
	})
	if err != nil {
		return nil, err
	}
	var status RequestToPayStatus
	if err := json.Unmarshal(body, &status); err != nil {
		logger.Error("an error occured while trying to unmarshal GetRequestToPayStatus response", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "body",
			Data: string(body),
		})
		return nil, apperrors.TransportError("mobile money status response was malformed", err)
	}
	return &status, nil
}

func (momo *MoMoCollectionProcessor) headers(token string) *map[string]string {
	return &map[string]string{
		"Authorization":             fmt.Sprintf("Bearer %s", token),
		"X-Target-Environment":      momo.Config.TargetEnvironment,
		"Ocp-Apim-Subscription-Key": momo.Config.SubscriptionKey,
	}
}

// execute runs one request through the breaker and sorts the outcome into the
// payment error kinds. A 401 evicts the cached token so the next call logs in
// again.
func (momo *MoMoCollectionProcessor) execute(ctx context.Context, operation string, expectedStatus int, request func() (*[]byte, *int, error)) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, apperrors.TransportError(fmt.Sprintf("mobile money %s was cancelled", operation), err)
	}
	result, err := momo.breaker.Execute(func() (interface{}, error) {
		response, statusCode, err := request()
		body := []byte{}
		if response != nil {
			body = *response
		}
		if err != nil && ctx.Err() != nil {
			return nil, apperrors.TransportError(fmt.Sprintf("mobile money %s was cancelled", operation), errors.Join(errCallerCancelled, err))
		}
		if err != nil {
			logger.Error(fmt.Sprintf("an error occured while trying to call %s", operation), logger.LoggerOptions{
				Key:  "error",
				Data: err,
			})
			return nil, apperrors.TransportError(fmt.Sprintf("failed to call mobile money %s", operation), err)
		}
		if *statusCode == expectedStatus {
			return body, nil
		}
		logger.Error(fmt.Sprintf("mobile money rejected %s", operation), logger.LoggerOptions{
			Key:  "statusCode",
			Data: *statusCode,
		}, logger.LoggerOptions{
			Key:  "body",
			Data: string(body),
		})
		if *statusCode == http.StatusUnauthorized && momo.Cache != nil {
			momo.Cache.DeleteOne(ctx, TokenCacheKey)
		}
		message := providerMessage(body, fmt.Sprintf("mobile money %s failed", operation))
		if *statusCode >= http.StatusInternalServerError {
			return nil, apperrors.TransportError(message, fmt.Errorf("unexpected status code %d", *statusCode))
		}
		return nil, apperrors.GatewayRejected(message)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, apperrors.TransportError("mobile money provider is unavailable", err)
		}
		return nil, err
	}
	return result.([]byte), nil
}

func providerMessage(body []byte, fallbackMessage string) string {
	var payload providerError
	if err := json.Unmarshal(body, &payload); err != nil {
		return fallbackMessage
	}
	switch {
	case payload.Message != "":
		return payload.Message
	case payload.Error != "":
		return payload.Error
	case payload.Code != "":
		return payload.Code
	}
	return fallbackMessage
}
