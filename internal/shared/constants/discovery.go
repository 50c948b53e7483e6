package constants

// Event statuses mirrored from the upstream events API
const (
	EventStatusPublished = "published"
	EventStatusCancelled = "cancelled"
	EventStatusDraft     = "draft"
)

const (
	SoldOutLabel    = "SOLD OUT"
	FromLabelFormat = "from %s%s"

	DateLayout = "2006-01-02"
)

// Kafka headers set on published availability messages
const (
	HeaderMessageType = "message_type"
	HeaderEventID     = "event_id"
	HeaderSource      = "source"

	MessageTypeAvailabilityChanged = "availability_changed"
	MessageSource                  = "clubly-discovery"
)
