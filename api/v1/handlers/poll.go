package handlers

import (
	"github.com/gofiber/fiber/v2"

	"odditor/internal/models"
	"odditor/internal/poll"
)

type PollHandle struct {
	store *poll.Store
}

func RegisterPoll(api fiber.Router, store *poll.Store) {
	handler := PollHandle{store: store}

	api.Post("/create", handler.CreatePoll)
	api.Get("/poll/:id", handler.GetPoll)
}

// CreatePoll 开一场新投票，返回短码给发起人分享
func (p *PollHandle) CreatePoll(ctx *fiber.Ctx) error {
	var req models.CreateRequest
	if err := ctx.BodyParser(&req); err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	created, err := p.store.Create(req.Name)
	if err != nil {
		return ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Name is required",
		})
	}

	return ctx.JSON(models.CreateResponse{Id: created.Id, Name: created.OwnerName})
}

// GetPoll 按短码取全量快照，大小写不敏感
func (p *PollHandle) GetPoll(ctx *fiber.Ctx) error {
	snap, err := p.store.Get(ctx.Params("id"))
	if err != nil {
		return ctx.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Poll not found",
		})
	}

	return ctx.JSON(snap)
}
