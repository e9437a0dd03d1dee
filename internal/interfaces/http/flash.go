package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

// Tipos de mensaje flash.
const (
	FlashSuccess = "success"
	FlashError   = "error"
)

// FlashMessages mensajes pendientes para el próximo render.
type FlashMessages struct {
	Success string
	Error   string
}

// Flash guarda mensajes de un solo uso en la sesión del usuario.
type Flash struct {
	store *session.Store
}

// NewFlash construye el flash sobre un store de sesiones de fiber.
func NewFlash(store *session.Store) *Flash {
	return &Flash{store: store}
}

// Set guarda msg bajo kind (FlashSuccess o FlashError) para la siguiente petición.
func (f *Flash) Set(c *fiber.Ctx, kind, msg string) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return err
	}
	sess.Set(flashKey(kind), msg)
	return sess.Save()
}

// Pop lee y borra los mensajes pendientes.
func (f *Flash) Pop(c *fiber.Ctx) (FlashMessages, error) {
	var out FlashMessages
	sess, err := f.store.Get(c)
	if err != nil {
		return out, err
	}
	success, _ := sess.Get(flashKey(FlashSuccess)).(string)
	failure, _ := sess.Get(flashKey(FlashError)).(string)
	if success == "" && failure == "" {
		return out, nil
	}
	sess.Delete(flashKey(FlashSuccess))
	sess.Delete(flashKey(FlashError))
	out.Success, out.Error = success, failure
	return out, sess.Save()
}

func flashKey(kind string) string {
	return "flash_" + kind
}
