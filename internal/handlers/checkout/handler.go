package checkout

import (
	"context"
	"hotelres/infras/otel"
	bookingModel "hotelres/internal/domains/booking/model"
	"hotelres/internal/domains/checkout/model/dto"
	"hotelres/internal/domains/checkout/service"
	paymentModel "hotelres/internal/domains/payment/model"
	paymentService "hotelres/internal/domains/payment/service"
	receiptService "hotelres/internal/domains/receipt/service"
	"hotelres/shared/constant"
	"hotelres/shared/failure"
	"hotelres/shared/validator"
	"hotelres/transport/http/middleware"
	"hotelres/transport/http/response"
	"maps"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	registry service.Registry
	receipt  receiptService.Receipt
	otel     otel.Otel
}

func New(registry service.Registry, receipt receiptService.Receipt, otel otel.Otel) Handler {
	return Handler{
		registry: registry,
		receipt:  receipt,
		otel:     otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Route("/checkouts", func(r chi.Router) {
		r.Post("/", handler.Create)
		r.Get("/{id}", handler.Get)
		r.Patch("/{id}/draft", handler.UpdateDraft)
		r.Post("/{id}/submit", handler.Submit)
		r.Post("/{id}/payment/check", handler.CheckPayment)
		r.Post("/{id}/payment", handler.Pay)
		r.Post("/{id}/back", handler.Back)
		r.Post("/{id}/new", handler.StartNewBooking)
	})
}

// machine resolves the checkout in the path and syncs it with the request session.
func (handler *Handler) machine(w http.ResponseWriter, r *http.Request) (*service.Machine, bool) {
	machine, err := handler.registry.Get(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return nil, false
	}

	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		machine.OnSessionRestored(identity)
	} else {
		machine.OnSessionCleared()
	}

	return machine, true
}

func writeView(w http.ResponseWriter, code int, machine *service.Machine) {
	res := dto.ViewResponse{}
	res.FromModel(machine.View())

	response.WithJSON(w, code, res)
}

// Create starts a checkout
// @Summary Start a checkout
// @Description Creates a checkout in the configuring state with an empty draft.
// @Tags Checkout
// @Produce json
// @Success 201 {object} response.Data[dto.ViewResponse]
// @Router /v1/checkouts [post]
func (handler *Handler) Create(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateCheckout")
	defer scope.End()

	machine := handler.registry.Create()

	if identity, ok := middleware.IdentityFromContext(r.Context()); ok {
		machine.OnSessionRestored(identity)
	}

	scope.SetAttribute("checkout.id", machine.ID())

	writeView(w, http.StatusCreated, machine)
}

// Get returns the current checkout view
// @Summary Get a checkout
// @Description Returns the draft, its price breakdown and the checkout state.
// @Tags Checkout
// @Produce json
// @Param id path string true "Checkout ID"
// @Success 200 {object} response.Data[dto.ViewResponse]
// @Failure 404 {object} response.Error
// @Router /v1/checkouts/{id} [get]
// @Security BearerAuth
func (handler *Handler) Get(w http.ResponseWriter, r *http.Request) {
	machine, ok := handler.machine(w, r)
	if !ok {
		return
	}

	writeView(w, http.StatusOK, machine)
}

// UpdateDraft changes the booking selection
// @Summary Update the draft
// @Description Applies every present field at once. Nothing changes when one of them is rejected.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Checkout ID"
// @Param request body dto.DraftPatchRequest true "Draft changes"
// @Success 200 {object} response.Data[dto.ViewResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Router /v1/checkouts/{id}/draft [patch]
// @Security BearerAuth
func (handler *Handler) UpdateDraft(w http.ResponseWriter, r *http.Request) {
	_, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateDraft")
	defer scope.End()

	req := dto.DraftPatchRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	machine, ok := handler.machine(w, r)
	if !ok {
		return
	}

	if err := machine.Edit(applyPatch(req)); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	writeView(w, http.StatusOK, machine)
}

func applyPatch(req dto.DraftPatchRequest) func(d *service.DraftEditor) error {
	return func(d *service.DraftEditor) error {
		if req.CheckIn != nil {
			checkIn, err := dto.ParseDate(req.CheckIn)
			if err != nil {
				return failure.BadRequest(err)
			}

			d.SetCheckIn(checkIn)
		}

		if req.CheckOut != nil {
			checkOut, err := dto.ParseDate(req.CheckOut)
			if err != nil {
				return failure.BadRequest(err)
			}

			d.SetCheckOut(checkOut)
		}

		for _, key := range slices.Sorted(maps.Keys(req.Rooms)) {
			if err := d.SetRoomQuantity(key, req.Rooms[key]); err != nil {
				return err
			}
		}

		if req.GuestCount != nil {
			if err := d.SetGuestCount(*req.GuestCount); err != nil {
				return err
			}
		}

		for _, key := range slices.Sorted(maps.Keys(req.Services)) {
			if err := d.SetService(key, req.Services[key]); err != nil {
				return err
			}
		}

		if req.SpecialRequests != nil {
			d.SetSpecialRequests(*req.SpecialRequests)
		}

		return nil
	}
}

// Submit moves to payment
// @Summary Proceed to payment
// @Description Snapshots the draft into a booking. Requires complete dates, at least one room and a signed-in guest.
// @Tags Checkout
// @Produce json
// @Param id path string true "Checkout ID"
// @Success 200 {object} response.Data[dto.ViewResponse]
// @Failure 401 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/checkouts/{id}/submit [post]
// @Security BearerAuth
func (handler *Handler) Submit(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Submit")
	defer scope.End()

	machine, ok := handler.machine(w, r)
	if !ok {
		return
	}

	if err := machine.Submit(ctx); err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	writeView(w, http.StatusOK, machine)
}

// CheckPayment reports whether the payment details are complete
// @Summary Check payment details
// @Description Reports whether the fields the method needs are present without charging anything.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Checkout ID"
// @Param request body dto.PaymentRequest true "Payment details"
// @Success 200 {object} response.Data[dto.PaymentCheckResponse]
// @Failure 400 {object} response.Error
// @Router /v1/checkouts/{id}/payment/check [post]
func (handler *Handler) CheckPayment(w http.ResponseWriter, r *http.Request) {
	req := dto.PaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		response.WithError(w, err)

		return
	}

	if _, err := handler.registry.Get(chi.URLParam(r, constant.RequestParamID)); err != nil {
		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, dto.PaymentCheckResponse{
		Method:   req.Method,
		Complete: paymentService.IsPaymentInputComplete(paymentModel.Method(req.Method), req.ToFields()),
	})
}

// Pay charges the booking
// @Summary Pay for the booking
// @Description Charges the booking total. A declined payment keeps the checkout in paying so it can be retried.
// @Tags Checkout
// @Accept json
// @Produce json
// @Param id path string true "Checkout ID"
// @Param request body dto.PaymentRequest true "Payment details"
// @Success 200 {object} response.Data[dto.ViewResponse]
// @Failure 402 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 422 {object} response.Error
// @Router /v1/checkouts/{id}/payment [post]
func (handler *Handler) Pay(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".Pay")
	defer scope.End()

	req := dto.PaymentRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	machine, err := handler.registry.Get(chi.URLParam(r, constant.RequestParamID))
	if err != nil {
		response.WithError(w, err)

		return
	}

	booking, result, err := machine.Pay(ctx, paymentModel.Method(req.Method), req.ToFields())
	if err != nil {
		scope.TraceError(err)

		response.WithError(w, err)

		return
	}

	go handler.archive(context.WithoutCancel(ctx), booking, result)

	view := machine.View()

	scope.AddEvent("Booking confirmed")

	res := dto.ViewResponse{}
	res.FromModel(view)

	response.WithJSON(w, http.StatusOK, res)
}

func (handler *Handler) archive(ctx context.Context, booking bookingModel.Booking, result paymentModel.Result) {
	if _, err := handler.receipt.Archive(ctx, booking, result); err != nil {
		log.Error().Err(err).Str("transaction_id", result.TransactionID).Msg("failed to archive receipt")
	}
}

// Back returns to the draft
// @Summary Back to configuring
// @Description Drops the pending booking and keeps the draft as it was.
// @Tags Checkout
// @Produce json
// @Param id path string true "Checkout ID"
// @Success 200 {object} response.Data[dto.ViewResponse]
// @Failure 409 {object} response.Error
// @Router /v1/checkouts/{id}/back [post]
func (handler *Handler) Back(w http.ResponseWriter, r *http.Request) {
	machine, ok := handler.machine(w, r)
	if !ok {
		return
	}

	if err := machine.Back(); err != nil {
		response.WithError(w, err)

		return
	}

	writeView(w, http.StatusOK, machine)
}

// StartNewBooking resets a confirmed checkout
// @Summary Start a new booking
// @Description Clears the draft and the confirmed booking. The session is kept.
// @Tags Checkout
// @Produce json
// @Param id path string true "Checkout ID"
// @Success 200 {object} response.Data[dto.ViewResponse]
// @Failure 409 {object} response.Error
// @Router /v1/checkouts/{id}/new [post]
func (handler *Handler) StartNewBooking(w http.ResponseWriter, r *http.Request) {
	machine, ok := handler.machine(w, r)
	if !ok {
		return
	}

	if err := machine.StartNewBooking(); err != nil {
		response.WithError(w, err)

		return
	}

	writeView(w, http.StatusOK, machine)
}
