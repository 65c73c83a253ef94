package v1

import (
	"odditor/api/v1/handlers"
	"odditor/internal/live"
	"odditor/internal/poll"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes 注册 HTTP 接口与实时通道
func SetupRoutes(app *fiber.App, store *poll.Store, hub *live.Hub) {
	api := app.Group("/api/v1")

	handlers.RegisterPoll(api, store)
	handlers.RegisterSystem(api.Group("/system"), store, hub)

	handlers.RegisterLive(app, hub, live.NewPipeline(store, hub))
}
