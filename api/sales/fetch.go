package sales

import (
	"net/http"
	"strconv"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// GetSummary handles GET /sales/summary, the dashboard payload.
func (srm *SalesRoutesManager) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := srm.sales.GetSummary(r.Context())
	if err != nil {
		srm.logger.Error("Failed to build sales summary", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to fetch sales summary"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(summary),
		gecho.Send(),
	)
}

// ListRecent handles GET /sales/recent
func (srm *SalesRoutesManager) ListRecent(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if val, err := strconv.Atoi(limitStr); err == nil {
			limit = val
		}
	}

	transactions, err := srm.sales.ListRecent(r.Context(), limit)
	if err != nil {
		srm.logger.Error("Failed to fetch recent sales", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to fetch recent sales"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"sales": transactions,
			"count": len(transactions),
		}),
		gecho.Send(),
	)
}

// ListByProduct handles GET /sales/product/{id}
func (srm *SalesRoutesManager) ListByProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	transactions, err := srm.sales.ListByProduct(r.Context(), id)
	if err != nil {
		srm.logger.Error("Failed to fetch sales by product", gecho.Field("error", err), gecho.Field("id", id))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to fetch product sales"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"sales": transactions,
			"count": len(transactions),
		}),
		gecho.Send(),
	)
}
