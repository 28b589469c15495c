package http

import (
	"fmt"
	"html"

	"github.com/gofiber/fiber/v2"
)

// Páginas mínimas del portal local. La interacción real ocurre contra /api.
const pageTemplate = `<!doctype html>
<html lang="es">
<head><meta charset="utf-8"><title>%s · Reciboo</title></head>
<body>
<h1>%s</h1>
<p>%s</p>
</body>
</html>`

func page(c *fiber.Ctx, title, body string) error {
	c.Type("html", "utf-8")
	return c.SendString(fmt.Sprintf(pageTemplate, html.EscapeString(title), html.EscapeString(title), html.EscapeString(body)))
}

// HomePage GET / (requiere sesión).
func HomePage(c *fiber.Ctx) error {
	name := ""
	if u := GetUser(c); u != nil {
		name = u.Name
	}
	return page(c, "Carga de facturas por orden de compra", fmt.Sprintf("Sesión iniciada como %s. Usa /api/wizard para continuar.", name))
}

// LoginPage GET /login (solo visitantes).
func LoginPage(c *fiber.Ctx) error {
	return page(c, "Iniciar sesión", "Envía email y contraseña a POST /api/auth/login.")
}

// RegisterPage GET /register (solo visitantes).
func RegisterPage(c *fiber.Ctx) error {
	return page(c, "Registro de proveedor", "El alta de proveedores se realiza con el área de compras.")
}
