// Wire types of the public HTTP API.
package rest

import "time"

type Widget struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	MountedAt time.Time `json:"mountedAt"`
	Paused    bool      `json:"paused"`
}

// MountWidgetRequest Запрос на монтирование виджета
type MountWidgetRequest struct {
	Kind string `json:"kind" validate:"required,oneof=flash_deals price_drops market_pulse group_negotiation"`
}

type WidgetList struct {
	Widgets []Widget `json:"widgets"`
}

// WidgetSnapshot widget description plus its kind-specific state.
type WidgetSnapshot struct {
	Widget Widget `json:"widget"`
	Data   any    `json:"data"`
}

// Error Модель ошибок
type Error struct {
	// Code Код ошибки
	Code ErrorCode `json:"code"`

	// Message Сообщение об ошибке (для отображения в UI в будущем)
	Message string `json:"message"`

	SupportID string `json:"supportId"`
}

// ErrorCode Код ошибки
type ErrorCode string
