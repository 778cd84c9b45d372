package routes

import (
	"github.com/shashiranjanraj/vastra/app/controllers"
	"github.com/shashiranjanraj/vastra/app/repositories"
	"github.com/shashiranjanraj/vastra/app/services"
	"github.com/shashiranjanraj/vastra/pkg/router"
)

// RegisterAPI wires the catalog endpoints. Route paths keep the
// verb-prefixed shape existing storefront clients already call.
func RegisterAPI(r *router.Router) {
	productController := controllers.NewProductController(
		services.NewProductService(repositories.NewProductRepository()),
	)
	categoryController := controllers.NewCategoryController(
		services.NewCategoryService(repositories.NewCategoryRepository()),
	)
	brandController := controllers.NewBrandController(
		services.NewBrandService(repositories.NewBrandRepository()),
	)

	api := r.Group("/api")

	api.Get("/get-products", "products.list", productController.List)
	api.Get("/get-products-aggr", "products.highlights", productController.Highlights)
	api.Get("/get-product/{product_id}", "products.show", productController.Get)
	api.Post("/add-product", "products.create", productController.Create)
	api.Put("/update-product/{product_id}", "products.update", productController.Update)
	api.Delete("/delete-product/{product_id}", "products.delete", productController.Delete)

	api.Get("/get-categories", "categories.list", categoryController.List)
	api.Get("/get-category/{category_id}", "categories.show", categoryController.Get)
	api.Post("/add-category", "categories.create", categoryController.Create)
	api.Put("/update-category/{category_id}", "categories.update", categoryController.Update)
	api.Delete("/delete-category/{category_id}", "categories.delete", categoryController.Delete)

	api.Get("/get-brands", "brands.list", brandController.List)
	api.Get("/get-brand/{brand_id}", "brands.show", brandController.Get)
	api.Post("/add-brand", "brands.create", brandController.Create)
	api.Put("/update-brand/{brand_id}", "brands.update", brandController.Update)
	api.Delete("/delete-brand/{brand_id}", "brands.delete", brandController.Delete)
}
