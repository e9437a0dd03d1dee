package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/billing"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CustomerUC *billing.CustomerUseCase
	Flash      *Flash
	Logger     *logger.Logger
}

// Router registra las vistas de clientes y la API JSON.
func Router(app *fiber.App, deps RouterDeps) {
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.Flash, deps.Logger.Component("customers"))

	// Vistas (formularios con redirect + flash)
	customers := app.Group(customersPath)
	customers.Get("/", customerHandler.Read)
	customers.Get("/page/:page", customerHandler.Read)
	customers.Post("/", customerHandler.Create)
	customers.Post("/balance", customerHandler.UpdateBalance)
	customers.Put("/:id", customerHandler.Update)
	customers.Post("/:id/edit", customerHandler.Update)
	customers.Delete("/:id", customerHandler.Delete)
	customers.Post("/:id/delete", customerHandler.Delete)

	// API
	api := app.Group("/api/customers")
	api.Get("/", customerHandler.GetCustomers)
	api.Get("/:id", customerHandler.GetCustomer)
}
