package controller

import (
	"errors"
	"net/http"

	apperrors "paygate.io/application/appErrors"
	"paygate.io/application/constants"
	"paygate.io/application/controller/dto"
	"paygate.io/application/interfaces"
	"paygate.io/infrastructure/payments"
	payment_types "paygate.io/infrastructure/payments/types"
	server_response "paygate.io/infrastructure/serverResponse"
	"paygate.io/infrastructure/validator"
)

func ChargeCard(ctx *interfaces.ApplicationContext[dto.ChargeCardDTO]) {
	response, err := payments.CardProcessor.ChargeCard(ctx.Ctx.Request.Context(), ctx.Body.ToPaymentData(ctx.ClientIP, ctx.DeviceID))
	respondWithCharge(ctx.Ctx, response, err, "charge initiated")
}

func ChargeWithToken(ctx *interfaces.ApplicationContext[dto.TokenChargeDTO]) {
	response, err := payments.CardProcessor.ChargeWithToken(ctx.Ctx.Request.Context(), *ctx.Body)
	respondWithCharge(ctx.Ctx, response, err, "charge completed")
}

func ValidateCharge(ctx *interfaces.ApplicationContext[dto.ValidateChargeDTO]) {
	if errs := validator.ValidatorInstance.ValidateStruct(ctx.Body); errs != nil {
		apperrors.ValidationFailedError(ctx.Ctx, errs)
		return
	}
	response, err := payments.CardProcessor.ValidateCharge(ctx.Ctx.Request.Context(), ctx.Body.FlwRef, ctx.Body.OTP, ctx.Body.Type)
	respondWithCharge(ctx.Ctx, response, err, "charge validated")
}

func VoidPreauthorization(ctx *interfaces.ApplicationContext[any]) {
	response, err := payments.CardProcessor.VoidPreauthorization(ctx.Ctx.Request.Context(), ctx.Param["id"])
	respondWithCharge(ctx.Ctx, response, err, "preauthorization voided")
}

func CapturePreauthorization(ctx *interfaces.ApplicationContext[dto.CapturePreauthorizationDTO]) {
	if errs := validator.ValidatorInstance.ValidateStruct(ctx.Body); errs != nil {
		apperrors.ValidationFailedError(ctx.Ctx, errs)
		return
	}
	response, err := payments.CardProcessor.CapturePreauthorization(ctx.Ctx.Request.Context(), ctx.Param["id"], ctx.Body.Amount)
	respondWithCharge(ctx.Ctx, response, err, "preauthorization captured")
}

func VerifyPayment(ctx *interfaces.ApplicationContext[any]) {
	response, err := payments.CardProcessor.VerifyPayment(ctx.Ctx.Request.Context(), ctx.Param["id"])
	respondWithLookup(ctx.Ctx, response, err, "transaction fetched")
}

func GetCardBIN(ctx *interfaces.ApplicationContext[any]) {
	response, err := payments.CardProcessor.GetCardBIN(ctx.Ctx.Request.Context(), ctx.Param["bin"])
	respondWithLookup(ctx.Ctx, response, err, "card bin resolved")
}

func RequestToPay(ctx *interfaces.ApplicationContext[dto.RequestToPayDTO]) {
	if payments.MoMoProcessor == nil {
		apperrors.NotFoundError(ctx.Ctx, "mobile money is not enabled")
		return
	}
	result, err := payments.MoMoProcessor.RequestToPay(ctx.Ctx.Request.Context(), *ctx.Body)
	if err != nil {
		apperrors.RespondWithPaymentError(ctx.Ctx, err, nil)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusAccepted, "request to pay accepted", result, nil, nil)
}

func GetRequestToPayStatus(ctx *interfaces.ApplicationContext[any]) {
	if payments.MoMoProcessor == nil {
		apperrors.NotFoundError(ctx.Ctx, "mobile money is not enabled")
		return
	}
	status, err := payments.MoMoProcessor.GetRequestToPayStatus(ctx.Ctx.Request.Context(), ctx.Param["referenceId"])
	if err != nil {
		apperrors.RespondWithPaymentError(ctx.Ctx, err, nil)
		return
	}
	server_response.Responder.Respond(ctx.Ctx, http.StatusOK, "request to pay status fetched", status, nil, nil)
}

func respondWithCharge(ctx any, response *payment_types.CardChargeResponse, err error, message string) {
	if err != nil {
		var payload any
		if response != nil {
			payload = response
			if apperrors.IsKind(err, apperrors.GatewayRejectedKind) {
				apperrors.ClientError(ctx, response.Message, response, nil, &constants.CHARGE_FAILED)
				return
			}
		}
		apperrors.RespondWithPaymentError(ctx, err, payload)
		return
	}
	if response == nil {
		apperrors.FatalServerError(ctx, errors.New("processor returned no response"))
		return
	}
	if response.Message != "" {
		message = response.Message
	}
	server_response.Responder.Respond(ctx, http.StatusOK, message, response, nil, responseCode(response))
}

// responseCode tells the client which screen to show next.
func responseCode(response *payment_types.CardChargeResponse) *uint {
	data := response.Data
	switch data.NextAction {
	case payment_types.ActionComplete:
		return &constants.CHARGE_COMPLETED
	case payment_types.ActionVoid:
		return &constants.CHARGE_VOIDED
	case payment_types.ActionValidatePIN:
		if data.Status == payment_types.StatusRequiresValidation {
			return &constants.CHARGE_VALIDATE_PIN
		}
		return &constants.CHARGE_REQUIRES_PIN
	case payment_types.ActionValidateOTP:
		return &constants.CHARGE_REQUIRES_OTP
	case payment_types.ActionRedirect:
		return &constants.CHARGE_REQUIRES_REDIRECT
	case payment_types.ActionValidateAVS:
		return &constants.CHARGE_REQUIRES_ADDRESS
	case payment_types.ActionFailed:
		return &constants.CHARGE_FAILED
	}
	if data.Status.IsTerminal() {
		switch data.Status {
		case payment_types.StatusSuccess:
			return &constants.CHARGE_COMPLETED
		case payment_types.StatusVoided:
			return &constants.CHARGE_VOIDED
		}
		return &constants.CHARGE_FAILED
	}
	if data.Status == payment_types.StatusPending {
		return &constants.CHARGE_PENDING
	}
	return nil
}

func respondWithLookup(ctx any, response *payment_types.LookupResponse, err error, message string) {
	if err != nil {
		var payload any
		if response != nil {
			payload = response
		}
		apperrors.RespondWithPaymentError(ctx, err, payload)
		return
	}
	if response.Message != "" {
		message = response.Message
	}
	server_response.Responder.Respond(ctx, http.StatusOK, message, response, nil, nil)
}
