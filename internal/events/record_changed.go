package events

import "time"

const RecordChangedTopic = "workforce.record-changed"

// RecordChangedEvent is broadcast after a successful write so clients
// watching the workforce screens can refresh. Emission is best-effort
// and happens outside the repository layer.
type RecordChangedEvent struct {
	EventType  string    `json:"eventType"` // e.g. employee_added
	Kind       string    `json:"kind"`      // e.g. employees
	RecordID   string    `json:"recordId"`
	RequestID  string    `json:"requestId,omitempty"`
	Data       any       `json:"data,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

func NewRecordChanged(eventType, kind, recordID, requestID string, data any) RecordChangedEvent {
	return RecordChangedEvent{
		EventType:  eventType,
		Kind:       kind,
		RecordID:   recordID,
		RequestID:  requestID,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}
