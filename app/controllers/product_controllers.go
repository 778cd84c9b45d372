package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/logger"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/upload"
)

// ProductController exposes the catalog's HTTP surface. Handlers stay
// thin: parse input, call the service, map the failure kind to a status.
type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

// respondError maps a service failure to the catalog's status
// conventions: validation and not-found both answer 400, update
// failures and everything unexpected answer 500 with the message
// surfaced verbatim.
func respondError(w http.ResponseWriter, err error) {
	switch services.KindOf(err) {
	case services.KindValidation, services.KindNotFound:
		response.Error(w, http.StatusBadRequest, err.Error())
	default:
		response.Error(w, http.StatusInternalServerError, err.Error())
	}
}

// parseProductInput reads the field payload from an already-parsed
// form. Numeric fields parse leniently to zero and malformed category
// or brand ids are dropped to nil, matching how the catalog has always
// treated loose input on these fields.
func parseProductInput(r *http.Request) services.ProductInput {
	price, _ := strconv.ParseFloat(r.FormValue("price"), 64)
	quantity, _ := strconv.Atoi(r.FormValue("quantity"))

	in := services.ProductInput{
		Title:            r.FormValue("title"),
		Price:            price,
		Quantity:         quantity,
		ShortDescription: r.FormValue("short_description"),
		Description:      r.FormValue("description"),
	}
	if oid, err := primitive.ObjectIDFromHex(r.FormValue("category")); err == nil {
		in.Category = &oid
	}
	if oid, err := primitive.ObjectIDFromHex(r.FormValue("brand")); err == nil {
		in.Brand = &oid
	}
	return in
}

// List handles GET /api/get-products?page=&limit=&search=
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	q := repositories.ParseListQuery(r.URL.Query())
	products, err := c.service.List(r.Context(), q)
	if err != nil {
		respondError(w, err)
		return
	}
	response.SuccessWithFilepath(w, products, "Fetched!", c.service.Filepath())
}

// Highlights handles GET /api/get-products-aggr
func (c *ProductController) Highlights(w http.ResponseWriter, r *http.Request) {
	views, err := c.service.Highlights(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, views, "Fetched!")
}

// Get handles GET /api/get-product/{product_id}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product_id")
	view, err := c.service.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	response.SuccessWithFilepath(w, view, "Fetched!", c.service.Filepath())
}

// Create handles POST /api/add-product (multipart).
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	files, err := upload.SaveProductFiles(r, config.AssetNamespace())
	if err != nil {
		logger.WithCtx(r.Context()).Error("product upload failed", "error", err)
		response.Internal(w, err)
		return
	}

	product, err := c.service.Create(r.Context(), parseProductInput(r), files)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Created(w, product, "Created")
}

// Update handles PUT /api/update-product/{product_id} (multipart).
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	files, err := upload.SaveProductFiles(r, config.AssetNamespace())
	if err != nil {
		logger.WithCtx(r.Context()).Error("product upload failed", "error", err)
		response.Internal(w, err)
		return
	}

	id := chi.URLParam(r, "product_id")
	if err := c.service.Update(r.Context(), id, parseProductInput(r), files); err != nil {
		respondError(w, err)
		return
	}
	response.Message(w, "Product updated successfully")
}

// Delete handles DELETE /api/delete-product/{product_id}
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "product_id")
	if err := c.service.Delete(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	response.Message(w, "Deleted")
}
