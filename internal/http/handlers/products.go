package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/hongminglow/blogcart-be/internal/http/respond"
	"github.com/hongminglow/blogcart-be/internal/models"
	"github.com/hongminglow/blogcart-be/internal/models/dto"
	"github.com/hongminglow/blogcart-be/internal/storage"
)

// ProductsHandler owns the catalog endpoints. The catalog is public: no
// authentication or ownership gating applies (the listing user is recorded
// via authorId in the request body).
type ProductsHandler struct {
	store  storage.ProductStore
	logger *zap.Logger
}

// NewProductsHandler constructs the handler.
func NewProductsHandler(store storage.ProductStore, logger *zap.Logger) *ProductsHandler {
	return &ProductsHandler{store: store, logger: logger}
}

// Register attaches catalog routes.
func (h *ProductsHandler) Register(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Post("/", h.handleCreate)
		r.Get("/", h.handleList)
		r.Get("/search", h.handleSearch)
		r.Get("/{id}", h.handleGet)
	})
}

func (h *ProductsHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.ProductRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Fail(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" || req.Price == 0 || req.StockQuantity == 0 ||
		strings.TrimSpace(req.AuthorID) == "" {
		respond.Fail(w, http.StatusBadRequest, "Missing required fields")
		return
	}

	product, err := h.store.CreateProduct(r.Context(), models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Brand:         req.Brand,
		Category:      req.Category,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Variants:      req.Variants,
		Rating:        req.Rating,
		TotalReviews:  req.TotalReviews,
		Tags:          req.Tags,
		AuthorID:      req.AuthorID,
	})
	if err != nil {
		h.logger.Error("create product failed", zap.Error(err))
		respond.Fail(w, http.StatusInternalServerError, "Error creating product")
		return
	}

	respond.Success(w, http.StatusCreated, product)
}

func (h *ProductsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	products, err := h.store.ListProducts(r.Context())
	if err != nil {
		h.logger.Error("list products failed", zap.Error(err))
		respond.Fail(w, http.StatusInternalServerError, "Error fetching products")
		return
	}
	respond.Success(w, http.StatusOK, products)
}

func (h *ProductsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	product, err := h.store.FindProductByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respond.Fail(w, http.StatusNotFound, "Product not found")
			return
		}
		h.logger.Error("fetch product failed", zap.String("product_id", id), zap.Error(err))
		respond.Fail(w, http.StatusInternalServerError, "Error fetching product")
		return
	}
	respond.Success(w, http.StatusOK, product)
}

func (h *ProductsHandler) handleSearch(w http.ResponseWriter, r *http.Request) {
	filter, err := searchFilter(r.URL.Query())
	if err != nil {
		respond.Fail(w, http.StatusBadRequest, err.Error())
		return
	}

	products, err := h.store.SearchProducts(r.Context(), filter)
	if err != nil {
		h.logger.Error("search products failed", zap.Error(err))
		respond.Fail(w, http.StatusInternalServerError, "Error searching products")
		return
	}
	if len(products) == 0 {
		respond.Fail(w, http.StatusNotFound, "No products matched the search criteria")
		return
	}

	respond.JSON(w, http.StatusOK, dto.ProductSearchResponse{
		Success:  true,
		Count:    len(products),
		Products: products,
	})
}

// searchFilter builds a store filter from query parameters. Tags arrive as
// a comma-separated list; numeric bounds must parse or the search is
// rejected.
func searchFilter(query map[string][]string) (storage.ProductFilter, error) {
	get := func(key string) string {
		if vals := query[key]; len(vals) > 0 {
			return strings.TrimSpace(vals[0])
		}
		return ""
	}

	filter := storage.ProductFilter{
		Name:     get("name"),
		Brand:    get("brand"),
		Category: get("category"),
	}

	if raw := get("tags"); raw != "" {
		for _, tag := range strings.Split(raw, ",") {
			if trimmed := strings.TrimSpace(tag); trimmed != "" {
				filter.Tags = append(filter.Tags, trimmed)
			}
		}
	}

	bounds := []struct {
		key  string
		dest **float64
	}{
		{"minPrice", &filter.MinPrice},
		{"maxPrice", &filter.MaxPrice},
		{"rating", &filter.MinRating},
	}
	for _, bound := range bounds {
		raw := get(bound.key)
		if raw == "" {
			continue
		}
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return storage.ProductFilter{}, errors.New("Invalid numeric value for " + bound.key)
		}
		*bound.dest = &value
	}

	return filter, nil
}
