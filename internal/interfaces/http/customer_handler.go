package http

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Clientes-api/internal/application/billing"
	"github.com/jhoicas/Clientes-api/internal/application/dto"
	"github.com/jhoicas/Clientes-api/internal/domain"
	"github.com/jhoicas/Clientes-api/pkg/logger"
)

const customersPath = "/customers"

// Mensajes flash mostrados al usuario.
const (
	MsgCustomerCreated      = "New customer has been successfully added!"
	MsgCustomerDeleted      = "Customer has been deleted successfully!"
	MsgDuplicatePhone       = "Phone number must be unique. Customer already exists!"
	MsgBalanceNotFound      = "Customer's ID doesn't match. Try Again!"
	MsgCustomerNotFound     = "Customer doesn't exist!"
	MsgCustomerDoesNotExist = "Customer Doesn't Exist"
	MsgInvalidForm          = "Invalid form data."
)

// CustomerHandler maneja las peticiones HTTP de clientes: vistas con flash y endpoints JSON.
type CustomerHandler struct {
	uc    *billing.CustomerUseCase
	flash *Flash
	log   *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *billing.CustomerUseCase, flash *Flash, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, flash: flash, log: log}
}

// Create POST /customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return h.redirect(c, FlashError, MsgInvalidForm)
	}
	if _, err := h.uc.Create(c.UserContext(), in); err != nil {
		return h.redirect(c, FlashError, h.errorMessage(err, MsgCustomerNotFound))
	}
	return h.redirect(c, FlashSuccess, MsgCustomerCreated)
}

// Read GET /customers y GET /customers/page/:page?searchQuery=
func (h *CustomerHandler) Read(c *fiber.Ctx) error {
	msgs, err := h.flash.Pop(c)
	if err != nil {
		h.log.Warn().Err(err).Msg("leer flash")
	}
	page, err := h.uc.List(c.UserContext(), c.Params("page"), c.Query("searchQuery"))
	if err != nil {
		h.log.Error().Err(err).Msg("listar clientes")
		msgs.Error = joinMessages(msgs.Error, err.Error())
		page = &dto.CustomerPage{Customers: []*dto.CustomerResponse{}, Current: 1}
	}
	return c.Render("customers/index", fiber.Map{
		"customers":   page.Customers,
		"queryString": fiber.Map{"query": page.Query},
		"current":     page.Current,
		"pages":       page.Pages,
		"count":       page.Count,
		"success":     msgs.Success,
		"error":       msgs.Error,
	})
}

// Update PUT /customers/:id (también POST /customers/:id/edit)
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return h.redirect(c, FlashError, MsgInvalidForm)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return h.redirect(c, FlashError, h.errorMessage(err, MsgCustomerNotFound))
	}
	return h.redirect(c, FlashSuccess, fmt.Sprintf("Customer info for \"%s\" has been updated successfully!", out.Name))
}

// UpdateBalance POST /customers/balance
func (h *CustomerHandler) UpdateBalance(c *fiber.Ctx) error {
	var in dto.UpdateBalanceRequest
	if err := c.BodyParser(&in); err != nil {
		return h.redirect(c, FlashError, MsgInvalidForm)
	}
	out, err := h.uc.UpdateBalance(c.UserContext(), in)
	if err != nil {
		return h.redirect(c, FlashError, h.errorMessage(err, MsgBalanceNotFound))
	}
	return h.redirect(c, FlashSuccess, fmt.Sprintf("New payment for \"%s\" added successfully!", out.Name))
}

// Delete DELETE /customers/:id (también POST /customers/:id/delete)
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return h.redirect(c, FlashError, h.errorMessage(err, MsgCustomerNotFound))
	}
	return h.redirect(c, FlashSuccess, MsgCustomerDeleted)
}

// GetCustomers godoc
// @Summary      Listar todos los clientes
// @Tags         customers
// @Produce      json
// @Success      200  {array}   dto.CustomerResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) GetCustomers(c *fiber.Ctx) error {
	list, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Msg("listar clientes")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(list)
}

// GetCustomer godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerDetailResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetCustomer(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	switch {
	case err == nil:
		return c.JSON(out)
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: MsgCustomerDoesNotExist})
	case errors.Is(err, domain.ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id inválido"})
	default:
		h.log.Error().Err(err).Str("id", c.Params("id")).Msg("obtener cliente")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

func (h *CustomerHandler) redirect(c *fiber.Ctx, kind, msg string) error {
	if err := h.flash.Set(c, kind, msg); err != nil {
		h.log.Warn().Err(err).Msg("guardar flash")
	}
	return c.Redirect(customersPath, fiber.StatusFound)
}

// errorMessage traduce un error del caso de uso al mensaje flash.
func (h *CustomerHandler) errorMessage(err error, notFound string) string {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return verr.Message
	case errors.Is(err, domain.ErrDuplicate):
		return MsgDuplicatePhone
	case errors.Is(err, domain.ErrOverpayment):
		return billing.MsgPaidExceedsAmount
	case errors.Is(err, domain.ErrNotFound):
		return notFound
	}
	h.log.Error().Err(err).Msg("error de persistencia")
	return "Error While Saving Data - " + err.Error()
}

// joinMessages une mensajes no vacíos para mostrarlos en una sola alerta.
func joinMessages(msgs ...string) string {
	out := make([]string, 0, len(msgs))
	for _, m := range msgs {
		if m != "" {
			out = append(out, m)
		}
	}
	return strings.Join(out, " ")
}
