package receipt

import (
	"hotelres/infras/otel"
	"hotelres/internal/domains/receipt/model/dto"
	"hotelres/internal/domains/receipt/service"
	"hotelres/shared/constant"
	"hotelres/shared/failure"
	"hotelres/shared/validator"
	"hotelres/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Receipt
	otel    otel.Otel
}

func New(service service.Receipt, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/receipts/{transactionID}", handler.GetReceipt)
}

// GetReceipt returns an archived receipt
// @Summary Get a receipt
// @Description Looks up a confirmed booking by its transaction ID.
// @Tags Receipt
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} response.Data[dto.ReceiptResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/receipts/{transactionID} [get]
func (handler *Handler) GetReceipt(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReceipt")
	defer scope.End()

	var (
		res dto.ReceiptResponse
		err error
	)

	transactionID := chi.URLParam(r, constant.RequestParamTransactionID)

	// Matches the receipts.transaction_id column.
	if err = validator.ValidateVar(transactionID, "max=64"); err != nil {
		response.WithError(w, failure.BadRequestFromString("transaction id is too long"))

		return
	}

	res, err = handler.service.Get(ctx, transactionID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("transaction_id", transactionID).Msg("failed to get receipt")

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, res)
}
