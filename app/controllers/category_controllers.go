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

type CategoryController struct {
	service *services.CategoryService
}

func NewCategoryController(service *services.CategoryService) *CategoryController {
	return &CategoryController{service: service}
}

type categoryForm struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Description string `json:"description" validate:"nullable,max=1000"`
	Status      string `json:"status" validate:"nullable,integer"`
}

func (c *CategoryController) List(w http.ResponseWriter, r *http.Request) {
	categories, err := c.service.All(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, categories, "Fetched!")
}

func (c *CategoryController) Get(w http.ResponseWriter, r *http.Request) {
	category, err := c.service.Get(r.Context(), chi.URLParam(r, "category_id"))
	if err != nil {
		respondError(w, err)
		return
	}
	response.Success(w, category, "Fetched!")
}

func (c *CategoryController) Create(w http.ResponseWriter, r *http.Request) {
	files, err := upload.SaveProductFiles(r, config.AssetNamespace())
	if err != nil {
		response.Internal(w, err)
		return
	}

	form := categoryForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
	}
	if errs := validate.Struct(&form); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	status, _ := strconv.Atoi(form.Status)
	category, err := c.service.Create(r.Context(), services.CategoryInput{
		Name:        form.Name,
		Description: form.Description,
		Status:      status,
	}, files)
	if err != nil {
		respondError(w, err)
		return
	}
	response.Created(w, category, "Created")
}

func (c *CategoryController) Update(w http.ResponseWriter, r *http.Request) {
	files, err := upload.SaveProductFiles(r, config.AssetNamespace())
	if err != nil {
		response.Internal(w, err)
		return
	}

	form := categoryForm{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Status:      r.FormValue("status"),
	}
	if errs := validate.Struct(&form); validate.HasErrors(errs) {
		response.ValidationError(w, errs)
		return
	}

	status, _ := strconv.Atoi(form.Status)
	id := chi.URLParam(r, "category_id")
	if err := c.service.Update(r.Context(), id, services.CategoryInput{
		Name:        form.Name,
		Description: form.Description,
		Status:      status,
	}, files); err != nil {
		respondError(w, err)
		return
	}
	response.Message(w, "Category updated successfully")
}

func (c *CategoryController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.service.Delete(r.Context(), chi.URLParam(r, "category_id")); err != nil {
		respondError(w, err)
		return
	}
	response.Message(w, "Deleted")
}
