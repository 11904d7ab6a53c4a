package model

// Zone classifies an open record's collection risk, in escalating order.
type Zone string

// Zone constants.
const (
	ZoneGreen  Zone = "GREEN"
	ZoneYellow Zone = "YELLOW"
	ZoneOrange Zone = "ORANGE"
	ZoneRed    Zone = "RED"

	// ZoneUnknown is a legacy state from earlier revisions of the classifier
	// that lacked a due-date signal. The current classifier never emits it;
	// it is kept so stored documents from old runs still round-trip.
	ZoneUnknown Zone = "UNKNOWN"
)

// Action is the collection step keyed off a record's zone.
type Action string

// Action constants.
const (
	ActionNone     Action = "NO_ACTION"
	ActionMail     Action = "MAIL"
	ActionCall     Action = "CALL"
	ActionEscalate Action = "ESCALATE"
)

// ActionForZone maps a zone to the collection action downstream agents run.
func ActionForZone(z Zone) Action {
	switch z {
	case ZoneGreen:
		return ActionNone
	case ZoneYellow:
		return ActionMail
	case ZoneOrange:
		return ActionCall
	case ZoneRed:
		return ActionEscalate
	default:
		return ActionNone
	}
}
