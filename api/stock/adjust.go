package stock

import (
	"net/http"
	"stockmate_server/api/health"
	"stockmate_server/lib"
	"stockmate_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// AdjustStock handles PUT /products/{id}/stock. The body carries the absolute
// new stock level; a decrease is recorded as a sale at the current price.
func (srm *StockRoutesManager) AdjustStock(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.AdjustStockRequest](r)
	if err != nil {
		srm.logger.Warn("Failed to extract stock body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	product, sale, err := srm.stock.AdjustStock(r.Context(), id, body.NewStock)
	if err != nil {
		switch {
		case lib.IsValidation(err):
			gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("Product not found"), gecho.Send())
		default:
			srm.logger.Error("Stock adjustment failed", gecho.Field("error", err), gecho.Field("id", id))
			gecho.InternalServerError(w, gecho.WithMessage("Failed to adjust stock"), gecho.Send())
		}
		return
	}

	if sale != nil {
		health.SalesRecorded.Inc()
	}

	gecho.Success(w,
		gecho.WithMessage("Stock updated"),
		gecho.WithData(map[string]any{
			"product": product,
			"sale":    sale,
		}),
		gecho.Send(),
	)
}
