package server

import (
	"context"
	"errors"
	"net/http"

	"git.appkode.ru/pub/go/failure"

	"gb_market/internal/domain"
	"gb_market/pkg/errcodes"
	"gb_market/pkg/httpx/reply"
	"gb_market/pkg/logx"
)

// replyError maps domain codes onto HTTP statuses; anything else goes through
// the failure kinds in reply.Error.
func replyError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		reply.Error(ctx, w, err)
		return
	}

	switch appErr.Code {
	case errcodes.WidgetNotFound:
		logger(ctx).Info("widget not found", logx.Error(err))
		reply.Status(ctx, w, http.StatusNotFound, appErr.Code, appErr.Message)
	case errcodes.InvalidWidgetKind, errcodes.InvalidWidgetID, errcodes.WidgetNotPausable:
		reply.Error(ctx, w, failure.NewInvalidArgumentErrorFromError(err,
			failure.WithCode(appErr.Code),
			failure.WithDescription(appErr.Message),
		))
	default:
		reply.Error(ctx, w, err)
	}
}
