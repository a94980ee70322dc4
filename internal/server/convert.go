package server

import (
	"gb_market/internal/domain/entity"
	"gb_market/pkg/rest"
)

func newRESTWidget(w entity.Widget) rest.Widget {
	return rest.Widget{
		ID:        w.ID,
		Kind:      w.Kind.String(),
		MountedAt: w.MountedAt,
		Paused:    w.Paused,
	}
}

func newRESTWidgets(widgets []entity.Widget) rest.WidgetList {
	list := rest.WidgetList{Widgets: make([]rest.Widget, 0, len(widgets))}

	for _, w := range widgets {
		list.Widgets = append(list.Widgets, newRESTWidget(w))
	}

	return list
}

func newRESTSnapshot(w entity.Widget, data any) rest.WidgetSnapshot {
	return rest.WidgetSnapshot{
		Widget: newRESTWidget(w),
		Data:   data,
	}
}
