package errcodes

import "git.appkode.ru/pub/go/failure"

const (
	InternalServerError failure.ErrorCode = "InternalServerError"
	TimeoutExceeded     failure.ErrorCode = "TimeoutExceeded"
	Forbidden           failure.ErrorCode = "Forbidden"
	ValidationError     failure.ErrorCode = "ValidationError"
	NotFound            failure.ErrorCode = "NotFound"

	WidgetNotFound     failure.ErrorCode = "WidgetNotFound"
	InvalidWidgetID    failure.ErrorCode = "InvalidWidgetID"
	InvalidWidgetKind  failure.ErrorCode = "InvalidWidgetKind"
	WidgetNotPausable  failure.ErrorCode = "WidgetNotPausable"
	CatalogInvalid     failure.ErrorCode = "CatalogInvalid"
	NegotiationFailure failure.ErrorCode = "NegotiationFetchFailed"
	NotificationFailed failure.ErrorCode = "NotificationFailed"
)
