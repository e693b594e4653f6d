package categories

import (
	"net/http"

	"github.com/MonkyMars/gecho"
)

// ListCategories handles GET /categories, each entry carrying a live product count.
func (crm *CategoryRoutesManager) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := crm.categories.ListCategories(r.Context())
	if err != nil {
		crm.logger.Error("Failed to list categories", gecho.Field("error", err))
		gecho.InternalServerError(w,
			gecho.WithMessage("Failed to fetch categories"),
			gecho.Send(),
		)
		return
	}

	gecho.Success(w,
		gecho.WithData(map[string]any{
			"categories": categories,
			"count":      len(categories),
		}),
		gecho.Send(),
	)
}
