package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/International-Combat-Archery-Alliance/registration-payments/ptr"
	"github.com/International-Combat-Archery-Alliance/registration-payments/registration"
	"github.com/google/uuid"
)

func registrationToApiRegistration(reg registration.Registration) Registration {
	var amountPaid float64
	if reg.AmountPaid != nil {
		amountPaid = reg.AmountPaid.AsMajorUnits()
	}

	return Registration{
		Id:            reg.ID,
		Name:          reg.Name,
		Email:         reg.Email,
		Phone:         reg.Phone,
		Event:         reg.Event,
		PaymentStatus: RegistrationPaymentStatus(reg.PaymentStatus),
		AmountPaid:    amountPaid,
		PayerName:     reg.PayerName,
		TransactionId: reg.TransactionID,
		RegisteredAt:  reg.RegisteredAt,
		UpdatedAt:     reg.UpdatedAt,
	}
}

func (a *API) PostApiRegister(ctx context.Context, request PostApiRegisterRequestObject) (PostApiRegisterResponseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	reg, err := registration.CreateRegistration(ctx, registration.NewRegistration{
		Name:  ptr.Deref(request.Body.Name),
		Email: ptr.Deref(request.Body.Email),
		Phone: ptr.Deref(request.Body.Phone),
		Event: ptr.Deref(request.Body.Event),
	}, a.db)
	if err != nil {
		logger.Error("Error trying to register", slog.String("error", err.Error()))

		return PostApiRegister500JSONResponse{
			Message: "Failed to register",
			Code:    InternalError,
		}, nil
	}

	logger.Info("Created registration", slog.String("registration-id", reg.ID.String()), slog.String("event", reg.Event))

	return PostApiRegister200JSONResponse{Id: reg.ID}, nil
}

func (a *API) GetApiRegisterId(ctx context.Context, request GetApiRegisterIdRequestObject) (GetApiRegisterIdResponseObject, error) {
	logger := a.getLoggerOrBaseLogger(ctx)

	id, err := uuid.Parse(request.Id)
	// Nothing can be stored under an id that isn't a uuid
	if err != nil || id == uuid.Nil {
		return GetApiRegisterId404JSONResponse{
			Message: "Registration not found",
			Code:    NotFound,
		}, nil
	}

	reg, err := a.db.GetRegistration(ctx, id)
	if err != nil {
		statusCode, e := errorResponse(err, "Failed to get registration")
		if statusCode == http.StatusNotFound {
			return GetApiRegisterId404JSONResponse(e), nil
		}

		logger.Error("Failed to get registration", slog.String("error", err.Error()), slog.String("registration-id", id.String()))
		return GetApiRegisterId500JSONResponse(e), nil
	}

	return GetApiRegisterId200JSONResponse(registrationToApiRegistration(reg)), nil
}
