package view

const StartMessage = `👋 <b>Market simulation control</b>

/status - scheduler and notifier state
/widgets - mounted widgets
/pause <code>ID</code> - pause a price drop or pulse widget
/resume <code>ID</code> - resume it
/unmount <code>ID</code> - remove a widget`

const (
	StatusTemplate = `📊 <b>Status</b>

⏱ <b>Scheduler:</b> %s
🔁 <b>Subscriptions:</b> %d
🧩 <b>Widgets:</b> %d
📣 <b>Sinks:</b> %s
`
	WidgetsEmpty    = "📋 <b>No widgets mounted</b>"
	WidgetsHeader   = "📋 <b>Widgets (%d):</b>\n\n"
	WidgetTemplate  = "%d. <code>%s</code> %s %s\n"
	MissingArgument = "❌ Usage: /%s <code>ID</code>"
	ActionDone      = "✅ <code>%s</code> %s"
	ActionFailed    = "❌ %s"
)
