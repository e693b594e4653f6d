package products

import (
	"net/http"
	"stockmate_server/lib"
	"stockmate_server/structs"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
)

// BulkImport handles POST /products/bulk-import. Each uploaded image becomes
// a placeholder product in the chosen category, ready to be renamed and
// priced one by one afterwards.
func (prm *ProductRoutesManager) BulkImport(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.BulkImportRequest](r)
	if err != nil {
		prm.logger.Warn("Failed to extract bulk import body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	categoryID, err := uuid.Parse(body.CategoryID)
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category ID"), gecho.Send())
		return
	}

	products, err := prm.products.BulkImportFromImages(r.Context(), categoryID, body.Images)
	if err != nil {
		switch {
		case lib.IsValidation(err):
			gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("Category not found"), gecho.Send())
		default:
			prm.logger.Error("Bulk import failed", gecho.Field("error", err))
			gecho.InternalServerError(w, gecho.WithMessage("Bulk import failed"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Products imported"),
		gecho.WithData(map[string]any{
			"products": products,
			"count":    len(products),
		}),
		gecho.Send(),
	)
}
