package payment

import (
	"hotelres/config"
	"hotelres/internal/domains/payment/model"
	"hotelres/internal/domains/payment/model/dto"
	"hotelres/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	cfg *config.Config
}

func New(cfg *config.Config) Handler {
	return Handler{
		cfg: cfg,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/payments/methods", handler.GetMethods)
}

// GetMethods lists the accepted payment methods
// @Summary Payment methods
// @Description Accepted methods with their labels, plus the account details for bank transfers.
// @Tags Payment
// @Produce json
// @Success 200 {object} response.Data[dto.MethodsResponse]
// @Router /v1/payments/methods [get]
func (handler *Handler) GetMethods(w http.ResponseWriter, _ *http.Request) {
	res := dto.MethodsResponse{}
	res.FromModel(model.Methods(), model.NewBankTransferInstructions(handler.cfg))

	response.WithJSON(w, http.StatusOK, res)
}
