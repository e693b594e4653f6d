package products

import (
	"net/http"
	"stockmate_server/lib"
	"stockmate_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateProduct handles POST /products
func (prm *ProductRoutesManager) CreateProduct(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateProductRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract product body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	product, err := prm.products.CreateProduct(r.Context(), body)
	if err != nil {
		switch {
		case lib.IsValidation(err):
			gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("Category not found"), gecho.Send())
		default:
			prm.logger.Error("Failed to create product", gecho.Field("error", err))
			gecho.InternalServerError(w, gecho.WithMessage("Failed to create product"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Product created"),
		gecho.WithData(product),
		gecho.Send(),
	)
}
