package services

// Calendar change event types pushed to connected screens after a commit.
const (
	EventSessionCreated = "session_created"
	EventSessionUpdated = "session_updated"
	EventSessionDeleted = "session_deleted"
	EventClientUpdated  = "client_updated"
)

// ChangeNotifier is the single post-commit notification hook. Implemented by
// the websocket hub; a nil-safe noop is used when no hub is wired (tests).
type ChangeNotifier interface {
	NotifyCalendarChanged(eventType string, clientID, sessionID int64)
}

type noopNotifier struct{}

func (noopNotifier) NotifyCalendarChanged(string, int64, int64) {}

func orNoop(notifier ChangeNotifier) ChangeNotifier {
	if notifier == nil {
		return noopNotifier{}
	}
	return notifier
}
