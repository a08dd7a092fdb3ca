package http

import (
	"net/http"
	"strconv"

	"github.com/Ashira-hub/online-ordering-system/internal/domain"
	"github.com/Ashira-hub/online-ordering-system/internal/products"
)

type ProductHandler struct {
	catalog *products.Catalog
}

func NewProductHandler(catalog *products.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type ProductListResponseDTO struct {
	Items []domain.Product `json:"items"`
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := products.Filter{
		Store: q.Get("store"),
		Query: q.Get("q"),
		Sort:  q.Get("sort"),
	}

	var err error
	if filter.PriceMin, err = parsePrice(q.Get("priceMin")); err != nil {
		respondError(w, http.StatusBadRequest, "priceMin must be a number")
		return
	}
	if filter.PriceMax, err = parsePrice(q.Get("priceMax")); err != nil {
		respondError(w, http.StatusBadRequest, "priceMax must be a number")
		return
	}

	respondJSON(w, http.StatusOK, ProductListResponseDTO{Items: h.catalog.Find(filter)})
}

func parsePrice(raw string) (*float64, error) {
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
