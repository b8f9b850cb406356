package token

// Event is a structural event reported by a [Scanner].
type Event struct {
	Type EventType

	// Token is the token the event was read from. For EventKey and
	// EventValue its Bytes are the raw key or value, quotes included.
	Token Token
}

// EventType represents the type of a structural event.
type EventType int

const (
	EventBeginObject EventType = iota
	EventEndObject
	EventBeginArray
	EventEndArray
	EventKey
	EventValue
)

func (t EventType) String() string {
	switch t {
	case EventBeginObject:
		return "BeginObject"
	case EventEndObject:
		return "EndObject"
	case EventBeginArray:
		return "BeginArray"
	case EventEndArray:
		return "EndArray"
	case EventKey:
		return "Key"
	case EventValue:
		return "Value"
	default:
		return "Unknown"
	}
}
