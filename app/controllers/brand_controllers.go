package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/config"
	"github.com/shashiranjanraj/vastra/pkg/response"
	"github.com/shashiranjanraj/vastra/pkg/upload"
	"github.com/shashiranjanraj/vastra/pkg/validate"
)

type BrandController struct {
	service *services.BrandService
}

func NewBrandController(service *services.BrandService) *BrandController {
	return &BrandController{service: service}
}

type brandForm struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"nullable,max=1000"`
	Status      string `json:"status" validate:"nullable,integer"`
}

func (c *BrandController) List(w http.ResponseWriter, r *http.Request) {
	brands, err := c.service.All(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, brands, "Fetched!")
}

func (c *BrandController) Get(w http.ResponseWriter, r *http.Request) {
	brand, err := c.service.Get(r.Context(), chi.URLParam(r, "brand_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, brand, "Fetched!")
}

func (c *BrandController) Create(w http.ResponseWriter, r *http.Request) {
	files, err := upload.SaveProductFiles(r, config.AssetNamespace())
	if err != nil {
		response.Internal(w, err)
		return
	}

	form := brandForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
	}
	if errs := validate.Struct(&form); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	status, _ := strconv.Atoi(form.Status)
	brand, err := c.service.Create(r.Context(), services.BrandInput{
		Name:        form.Name,
		Description: form.Description,
		Status:      status,
	}, files)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Created(w, brand, "Created")
}

func (c *BrandController) Update(w http.ResponseWriter, r *http.Request) {
	files, err := upload.SaveProductFiles(r, config.AssetNamespace())
	if err != nil {
		response.Internal(w, err)
		return
	}

	form := brandForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
	}
	if errs := validate.Struct(&form); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	status, _ := strconv.Atoi(form.Status)
	id := chi.URLParam(r, "brand_id")
	if err := c.service.Update(r.Context(), id, services.BrandInput{
		Name:        form.Name,
		Description: form.Description,
		Status:      status,
	}, files); err != nil {
		respondError(w, err)
		return
	}
	response.Message(w, "Brand updated successfully")
}

func (c *BrandController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "brand_id")); err != nil {
		respondError(w, err)
		return
	}
	response.Message(w, "Deleted")
}
