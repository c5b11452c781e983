package handlers

import (
	"ordermgr/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderItemHandler handles HTTP requests for the items of an order.
type OrderItemHandler struct {
	orders   *services.OrderService
	products *services.ProductService
}

// NewOrderItemHandler creates a new OrderItemHandler.
func NewOrderItemHandler(orders *services.OrderService, products *services.ProductService) *OrderItemHandler {
	return &OrderItemHandler{
		orders:   orders,
		products: products,
	}
}

type orderItemRequest struct {
	ProductID uint `json:"product_id" form:"product_id"`
	Quantity  int  `json:"quantity" form:"quantity"`
}

// RegisterRoutes registers the order item routes with the Fiber app.
func (h *OrderItemHandler) RegisterRoutes(router fiber.Router) {
	routes := router.Group("/order_items")
	routes.Get("/", h.HandleListAll)
	routes.Get("/:order_id/list", h.HandleList)
	routes.Post("/:order_id/list", h.HandleList)
	routes.Get("/:order_id/create", h.HandleCreateForm)
	routes.Post("/:order_id/create", h.HandleCreate)
	routes.Get("/:item_id/edit", h.HandleEditForm)
	routes.Post("/:item_id/edit", h.HandleEdit)
	routes.Post("/:item_id/delete", h.HandleDelete)
	routes.Delete("/:item_id", h.HandleDelete)
}

// HandleListAll returns the items of every order.
func (h *OrderItemHandler) HandleListAll(c *fiber.Ctx) error {
	lines, err := h.orders.Totals().AllLines(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(lines)
}

// HandleList returns the order with its lines and total.
func (h *OrderItemHandler) HandleList(c *fiber.Ctx) error {
	orderID, err := paramID(c, "order_id")
	if err != nil {
		return err
	}
	detail, err := h.orders.Totals().OrderDetail(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(detail)
}

// HandleCreateForm returns the order and the product picker.
func (h *OrderItemHandler) HandleCreateForm(c *fiber.Ctx) error {
	orderID, err := paramID(c, "order_id")
	if err != nil {
		return err
	}
	order, err := h.orders.GetOrderByID(c.UserContext(), orderID)
	if err != nil {
		return err
	}
	products, err := h.products.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"order": order, "products": products})
}

// HandleCreate adds an item to an open order.
func (h *OrderItemHandler) HandleCreate(c *fiber.Ctx) error {
	orderID, err := paramID(c, "order_id")
	if err != nil {
		return err
	}
	var req orderItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.orders.AddOrderItem(c.UserContext(), orderID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(item)
}

// HandleEditForm returns the item and the product picker.
func (h *OrderItemHandler) HandleEditForm(c *fiber.Ctx) error {
	itemID, err := paramID(c, "item_id")
	if err != nil {
		return err
	}
	item, err := h.orders.GetOrderItemByID(c.UserContext(), itemID)
	if err != nil {
		return err
	}
	products, err := h.products.GetAllProducts(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"order_item": item, "products": products})
}

// HandleEdit changes product and quantity of an item on an open order.
func (h *OrderItemHandler) HandleEdit(c *fiber.Ctx) error {
	itemID, err := paramID(c, "item_id")
	if err != nil {
		return err
	}
	var req orderItemRequest
	if err := parseBody(c, &req); err != nil {
		return err
	}
	item, err := h.orders.EditOrderItem(c.UserContext(), itemID, req.ProductID, req.Quantity)
	if err != nil {
		return err
	}
	return c.JSON(item)
}

// HandleDelete removes an item from an open order.
func (h *OrderItemHandler) HandleDelete(c *fiber.Ctx) error {
	itemID, err := paramID(c, "item_id")
	if err != nil {
		return err
	}
	item, err := h.orders.DeleteOrderItem(c.UserContext(), itemID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message":  "Order item deleted successfully",
		"order_id": item.OrderID,
	})
}
