package server

// Server объединяет HTTP серверы отдельных сущностей. Сейчас это только
// виджеты, но их может быть несколько.
type Server struct {
	WidgetServer
}

func NewServer(
	widgetServer WidgetServer,
) Server {
	return Server{
		WidgetServer: widgetServer,
	}
}
