package handlers

import (
	"ordermgr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	service   *services.OrderService
	customers *services.CustomerService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(service *services.OrderService, customers *services.CustomerService) *OrderHandler {
	return &OrderHandler{
		service:   service,
		customers: customers,
	}
}

type orderRequest struct {
	CustomerID uint `json:"customer_id" form:"customer_id"`
}

// RegisterRoutes registers the order routes with the Fiber app. Conclude and
// delete change state and are therefore POST (or DELETE) only.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/create", h.HandleCreateForm)
	orderRoutes.Post("/create", h.HandleCreateOrder)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Get("/:id/edit", h.HandleEditForm)
	orderRoutes.Post("/:id/edit", h.HandleEditOrder)
	orderRoutes.Post("/:id/conclude", h.HandleConcludeOrder)
	orderRoutes.Post("/:id/delete", h.HandleDeleteOrder)
	orderRoutes.Delete("/:id", h.HandleDeleteOrder)
}

// HandleGetOrders lists every order with customer name and total.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.Totals().OrderSummaries(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(orders)
}

// HandleGetOrderByID returns an order with its lines and total.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.service.Totals().OrderDetail(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

// HandleCreateForm returns the customer picker for a new order.
func (h *OrderHandler) HandleCreateForm(c *fiber.Ctx) error {
	customers, err := h.customers.GetAllCustomers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"customers": customers})
}

// HandleCreateOrder opens a new order for a customer.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req orderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	order, err := h.service.CreateOrder(c.UserContext(), req.CustomerID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

// HandleEditForm returns the order with the customer picker.
func (h *OrderHandler) HandleEditForm(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	detail, err := h.service.Totals().OrderDetail(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	customers, err := h.customers.GetAllCustomers(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"order": detail.Order, "customers": customers})
}

// HandleEditOrder reassigns an open order to another customer.
func (h *OrderHandler) HandleEditOrder(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var req orderRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	order, err := h.service.EditOrder(c.UserContext(), orderID, req.CustomerID)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// HandleConcludeOrder concludes an order. Repeating it is harmless.
func (h *OrderHandler) HandleConcludeOrder(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	order, err := h.service.ConcludeOrder(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(order)
}

// HandleDeleteOrder deletes an open order and its items.
func (h *OrderHandler) HandleDeleteOrder(c *fiber.Ctx) error {
	orderID, err := paramID(c, "id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteOrder(c.UserContext(), orderID); err != nil {
		return err
	}
	return deleted(c, "Order", orderID)
}
