// Package app wires repositories, services and handlers into a Fiber app.
package app

import (
	"time"

	"ordermgr/internal/handlers"
	"ordermgr/internal/middleware"
	"ordermgr/internal/repositories"
	"ordermgr/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Options carries the optional collaborators of the app.
type Options struct {
	// Publisher receives order lifecycle events. Nil disables publishing.
	Publisher services.EventPublisher
	// Now overrides the clock used for order dates.
	Now func() time.Time
	// DisableRequestLog turns off the per-request access log.
	DisableRequestLog bool
}

// New builds the Fiber app serving the order management API on db.
func New(db *gorm.DB, opts Options) *fiber.App {
	handlers.RegisterParsers()

	uow := repositories.NewGORMUnitOfWork(db)

	categoryService := services.NewCategoryService(uow.Categories())
	productService := services.NewProductService(uow.Products(), uow.Categories())
	customerService := services.NewCustomerService(uow.Customers())
	orderService := services.NewOrderService(uow, opts.Publisher, opts.Now)

	app := fiber.New(fiber.Config{
		AppName:      "ordermgr",
		ErrorHandler: middleware.ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	if !opts.DisableRequestLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
		}))
	}

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/products", fiber.StatusFound)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		sqlDB, err := db.DB()
		if err == nil {
			err = sqlDB.PingContext(c.UserContext())
		}
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status":   "unhealthy",
				"database": "down",
				"error":    err.Error(),
			})
		}
		return c.JSON(fiber.Map{
			"status":   "healthy",
			"time":     time.Now().Format(time.RFC3339),
			"database": "up",
			"events":   opts.Publisher != nil,
		})
	})

	handlers.NewCategoryHandler(categoryService).RegisterRoutes(app)
	handlers.NewProductHandler(productService, categoryService).RegisterRoutes(app)
	handlers.NewCustomerHandler(customerService).RegisterRoutes(app)
	handlers.NewOrderHandler(orderService, customerService).RegisterRoutes(app)
	handlers.NewOrderItemHandler(orderService, productService).RegisterRoutes(app)

	return app
}
