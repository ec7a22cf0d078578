package payments

import (
	"context"

	"paygate.io/infrastructure/database/connection/cache"
	cacheRepository "paygate.io/infrastructure/database/repository/cache"
	"paygate.io/infrastructure/env"
	"paygate.io/infrastructure/logger"
	flutterwave_card_processor "paygate.io/infrastructure/payments/flutterwave"
	momo_collection_processor "paygate.io/infrastructure/payments/momo"
	payment_types "paygate.io/infrastructure/payments/types"
)

// MobileMoneyProcessor is kept apart from CardProcessor; the two providers
// share no status vocabulary.
type MobileMoneyProcessor interface {
	RequestToPay(ctx context.Context, payload momo_collection_processor.MoMoPaymentRequest) (*momo_collection_processor.RequestToPayResult, error)
	GetRequestToPayStatus(ctx context.Context, referenceID string) (*momo_collection_processor.RequestToPayStatus, error)
}

var (
	CardProcessor payment_types.CardProcessor
	// MoMoProcessor stays nil when mobile money is not configured.
	MoMoProcessor MobileMoneyProcessor
)

func InitialisePaymentProcessors(config *env.Config, redisClient *cache.RedisClient) error {
	cardProcessor, err := flutterwave_card_processor.NewFlutterwaveCardProcessor(config.Flutterwave)
	if err != nil {
		return err
	}
	CardProcessor = cardProcessor

	if config.MoMo == nil {
		logger.Info("mobile money is not configured")
		return nil
	}
	var tokenCache momo_collection_processor.TokenCache
	if redisClient != nil {
		tokenCache = cacheRepository.NewRedisRepository(redisClient.Client)
	}
	momoProcessor, err := momo_collection_processor.NewMoMoCollectionProcessor(*config.MoMo, config.Flutterwave.Timeout, tokenCache)
	if err != nil {
		return err
	}
	MoMoProcessor = momoProcessor
	return nil
}
