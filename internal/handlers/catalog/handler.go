package catalog

import (
	"hotelres/internal/domains/catalog/model/dto"
	"hotelres/internal/domains/catalog/service"
	"hotelres/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type Handler struct {
	catalog service.Catalog
}

func New(catalog service.Catalog) Handler {
	return Handler{
		catalog: catalog,
	}
}

func (handler *Handler) Router(r chi.Router) {
	r.Get("/catalog", handler.GetCatalog)
}

// GetCatalog lists what can be booked
// @Summary Get the catalog
// @Description Hotel details, every room type and the enabled services, in catalog order.
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Data[dto.CatalogResponse]
// @Router /v1/catalog [get]
func (handler *Handler) GetCatalog(w http.ResponseWriter, _ *http.Request) {
	res := dto.CatalogResponse{}
	res.FromCatalog(handler.catalog.Hotel(), handler.catalog.RoomTypes(), handler.catalog.EnabledServices())

	response.WithJSON(w, http.StatusOK, res)
}
