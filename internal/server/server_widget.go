package server

import (
	"context"
	"fmt"
	"net/http"

	"gb_market/internal/domain/entity"
	"gb_market/pkg/httpx/reply"
	"gb_market/pkg/httpx/req"
	"gb_market/pkg/rest"
)

type widgetBoard interface {
	Mount(ctx context.Context, kind entity.WidgetKind) (entity.Widget, error)
	Unmount(ctx context.Context, id string) error
	Snapshot(id string) (entity.Widget, any, error)
	Pause(ctx context.Context, id string) (entity.Widget, error)
	Resume(ctx context.Context, id string) (entity.Widget, error)
	List() []entity.Widget
}

type WidgetServer struct {
	board  widgetBoard
	stream StreamOptions
}

func NewWidgetServer(board widgetBoard, stream StreamOptions) WidgetServer {
	return WidgetServer{
		board:  board,
		stream: stream,
	}
}

func (s WidgetServer) postV1Widget(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.MountWidgetRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	widget, err := s.board.Mount(ctx, entity.WidgetKind(request.Kind))
	if err != nil {
		return fmt.Errorf("board.Mount: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newRESTWidget(widget))

	return nil
}

func (s WidgetServer) getV1Widgets(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, newRESTWidgets(s.board.List()))

	return nil
}

func (s WidgetServer) getV1Widget(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	widget, data, err := s.board.Snapshot(r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("board.Snapshot: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTSnapshot(widget, data))

	return nil
}

func (s WidgetServer) deleteV1Widget(w http.ResponseWriter, r *http.Request) error {
	if err := s.board.Unmount(r.Context(), r.PathValue("id")); err != nil {
		return fmt.Errorf("board.Unmount: %w", err)
	}

	reply.OK(w)

	return nil
}

func (s WidgetServer) postV1WidgetPause(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	widget, err := s.board.Pause(ctx, r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("board.Pause: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTWidget(widget))

	return nil
}

func (s WidgetServer) postV1WidgetResume(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	widget, err := s.board.Resume(ctx, r.PathValue("id"))
	if err != nil {
		return fmt.Errorf("board.Resume: %w", err)
	}

	reply.JSON(ctx, w, http.StatusOK, newRESTWidget(widget))

	return nil
}
