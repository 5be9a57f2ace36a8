package routes

import (
	"github.com/gofiber/fiber/v2"

	userController "github.com/shivamnegi1705/khidki-backend/controllers/user"
)

func UserRoutes(app *fiber.App) {
	app.Post("/api/user/register", userController.SignUp)
	app.Post("/api/user/login", userController.Login)
}
