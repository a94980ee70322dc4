package handler

import (
	"context"

	"gb_market/internal/domain/entity"
)

type widgetBoard interface {
	List() []entity.Widget
	Pause(ctx context.Context, id string) (entity.Widget, error)
	Resume(ctx context.Context, id string) (entity.Widget, error)
	Unmount(ctx context.Context, id string) error
}

type scheduler interface {
	IsRunning() bool
	Len() int
}

type Handler struct {
	board     widgetBoard
	scheduler scheduler
	sinks     []string
}

func New(board widgetBoard, scheduler scheduler, sinks []string) *Handler {
	return &Handler{
		board:     board,
		scheduler: scheduler,
		sinks:     sinks,
	}
}
