package handlers

import (
	"ordermgr/internal/models"
	"ordermgr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CustomerHandler handles HTTP requests for customers.
type CustomerHandler struct {
	service *services.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler.
func NewCustomerHandler(service *services.CustomerService) *CustomerHandler {
	return &CustomerHandler{service: service}
}

// RegisterRoutes registers the customer routes with the Fiber app.
func (h *CustomerHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/customers")
	routes.Get("/", h.HandleList)
	routes.Get("/create", h.HandleCreateForm)
	routes.Post("/create", h.HandleCreate)
	routes.Get("/:id/edit", h.HandleEditForm)
	routes.Post("/:id/edit", h.HandleEdit)
	routes.Post("/:id/delete", h.HandleDelete)
	routes.Delete("/:id", h.HandleDelete)
}

func (h *CustomerHandler) HandleList(c *fiber.Ctx) error {
	customers, err := h.service.GetAllCustomers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(customers)
}

func (h *CustomerHandler) HandleCreateForm(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"customer": models.Customer{}})
}

// HandleCreate registers a new customer. A taken email answers 409.
func (h *CustomerHandler) HandleCreate(c *fiber.Ctx) error {
	var customer models.Customer
	if err := parseBody(c, &customer); err != nil {
		return err
	}
	customer.ID = 0
	if err := h.service.CreateCustomer(c.UserContext(), &customer); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(customer)
}

func (h *CustomerHandler) HandleEditForm(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	customer, err := h.service.GetCustomerByID(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"customer": customer})
}

func (h *CustomerHandler) HandleEdit(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var customer models.Customer
	if err := parseBody(c, &customer); err != nil {
		return err
	}
	customer.ID = id
	if err := h.service.UpdateCustomer(c.UserContext(), &customer); err != nil {
		return err
	}
	return c.JSON(customer)
}

func (h *CustomerHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteCustomer(c.UserContext(), id); err != nil {
		return err
	}
	return deleted(c, "Customer", id)
}
