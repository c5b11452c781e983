package handlers

import (
	"ordermgr/internal/models"
	"ordermgr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service    *services.ProductService
	categories *services.CategoryService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, categories *services.CategoryService) *ProductHandler {
	return &ProductHandler{
		service:    service,
		categories: categories,
	}
}

type productRequest struct {
	Name       string         `json:"name" form:"name"`
	Price      submittedPrice `json:"price" form:"price"`
	CategoryID *uint          `json:"category_id" form:"category_id"`
}

func (r productRequest) toModel(id uint) (*models.Product, error) {
	price, err := services.RequirePrice(r.Price.ptr())
	if err != nil {
		return nil, err
	}
	product := &models.Product{ID: id, Name: r.Name, Price: price, CategoryID: r.CategoryID}
	if product.CategoryID != nil && *product.CategoryID == 0 {
		product.CategoryID = nil
	}
	return product, nil
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/products")
	routes.Get("/", h.HandleList)
	routes.Get("/create", h.HandleCreateForm)
	routes.Post("/create", h.HandleCreate)
	routes.Get("/:id/edit", h.HandleEditForm)
	routes.Post("/:id/edit", h.HandleEdit)
	routes.Post("/:id/delete", h.HandleDelete)
	routes.Delete("/:id", h.HandleDelete)
}

// HandleList retrieves all products with their category names.
func (h *ProductHandler) HandleList(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(products)
}

// HandleCreateForm returns the category picker for a new product.
func (h *ProductHandler) HandleCreateForm(c *fiber.Ctx) error {
	categories, err := h.categories.GetAllCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"categories": categories})
}

// HandleCreate creates a new product.
func (h *ProductHandler) HandleCreate(c *fiber.Ctx) error {
	var req productRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	product, err := req.toModel(0)
	if err != nil {
		return err
	}
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleEditForm returns the product with the category picker.
func (h *ProductHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	categories, err := h.categories.GetAllCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"product": product, "categories": categories})
}

// HandleEdit updates an existing product.
func (h *ProductHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req productRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	product, err := req.toModel(id)
	if err != nil {
		return err
	}
	if err := h.service.UpdateProduct(c.UserContext(), product); err != nil {
		return err
	}
	return c.JSON(product)
}

// HandleDelete deletes a product by its ID.
func (h *ProductHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return deleted(c, "Product", id)
}
