package categories

import (
	"net/http"
	"stockmate_server/lib"

	"github.com/MonkyMars/gecho"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// DeleteCategory handles DELETE /categories/{id}. Deletion is refused while
// any product still references the category.
func (crm *CategoryRoutesManager) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		gecho.BadRequest(w, gecho.WithMessage("Invalid category ID"), gecho.Send())
		return
	}

	if err := crm.categories.DeleteCategory(r.Context(), id); err != nil {
		switch {
		case lib.IsNotFound(err):
			gecho.NotFound(w, gecho.WithMessage("Category not found"), gecho.Send())
		case lib.IsBlocked(err):
			gecho.Conflict(w, gecho.WithMessage("Move or delete its products before deleting this category"), gecho.Send())
		default:
			crm.logger.Error("Failed to delete category", gecho.Field("error", err), gecho.Field("id", id))
			gecho.InternalServerError(w, gecho.WithMessage("Failed to delete category"), gecho.Send())
		}
		return
	}

	gecho.Success(w,
		gecho.WithMessage("Category deleted"),
		gecho.Send(),
	)
}
