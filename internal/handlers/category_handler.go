package handlers

import (
	"ordermgr/internal/models"
	"ordermgr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// RegisterRoutes registers the category routes with the Fiber app.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/categories")
	routes.Get("/", h.HandleList)
	routes.Get("/create", h.HandleCreateForm)
	routes.Post("/create", h.HandleCreate)
	routes.Get("/:id/edit", h.HandleEditForm)
	routes.Post("/:id/edit", h.HandleEdit)
	routes.Post("/:id/delete", h.HandleDelete)
	routes.Delete("/:id", h.HandleDelete)
}

func (h *CategoryHandler) HandleList(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleCreateForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"category": models.Category{}})
}

func (h *CategoryHandler) HandleCreate(c *fiber.Ctx) error {
	var category models.Category
	if err := parseBody(c, &category); err != nil {
		return err
	}
	category.ID = 0
	if err := h.service.CreateCategory(c.UserContext(), &category); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	category, err := h.service.GetCategoryByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"category": category})
}

func (h *CategoryHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var category models.Category
	if err := parseBody(c, &category); err != nil {
		return err
	}
	category.ID = id
	if err := h.service.UpdateCategory(c.UserContext(), &category); err != nil {
		return err
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return err
	}
	return deleted(c, "Category", id)
}
