package categories

import (
	"net/http"
	"stockmate_server/lib"
	"stockmate_server/structs"

	"github.com/MonkyMars/gecho"
)

// CreateCategory handles POST /categories. Names are unique ignoring case.
func (crm *CategoryRoutesManager) CreateCategory(w http.ResponseWriter, r *http.Request) {
	body, err := lib.ExtractAndValidateBody[structs.CreateCategoryRequest](r)
	if err != nil {
		crm.logger.Warn("Failed to extract category body", gecho.Field("error", err))
		gecho.BadRequest(w, gecho.WithMessage("Invalid request body"), gecho.Send())
		return
	}

	category, err := crm.categories.CreateCategory(r.Context(), body.Name, body.Color)
	if err != nil {
		switch {
		case lib.IsValidation(err):
			gecho.BadRequest(w, gecho.WithMessage(err.Error()), gecho.Send())
		case lib.IsConflict(err):
			gecho.Conflict(w, gecho.WithMessage("A category with this name already exists"), gecho.Send())
		default:
			crm.logger.Error("Failed to create category", gecho.Field("error", err))
			gecho.InternalServerError(w, gecho.WithMessage("Failed to create category"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category created"),
		gecho.WithData(category),
		gecho.Send(),
	)
}
