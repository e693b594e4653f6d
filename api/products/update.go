package products

import (
	"net/http"
	"stockmate_server/lib"
	"stockmate_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// UpdateProduct handles PATCH /products/{id}. Stock is not accepted here;
// stock moves only through the stock adjustment endpoint so every decrease
// leaves a sale record behind.
func (prm *ProductRoutesManager) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid product ID"), gecho.Send())
		return
	}

	body, err := lib.ExtractAndValidateBody[structs.UpdateProductRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	product, err := prm.products.UpdateProduct(r.Context(), id, body)
	if err != nil {
		switch {
		case lib.IsValidation(err):
			gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage(err.Error()), gecho.Send())
		default:
			prm.logger.Error("Failed to update product", gecho.Field("error", err), gecho.Field("id", id))
			gecho.InternalServerError(w, gecho.WithMessage("Failed to update product"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product updated"),
		gecho.WithData(product),
		gecho.Send(),
	)
}
