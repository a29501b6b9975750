package entities

import (
	"time"

	"github.com/google/uuid"
)

// ChangeEventType represents the kind of change that was published
type ChangeEventType string

const (
	ChangeEventAppointment    ChangeEventType = "appointment.changed"
	ChangeEventDoctor         ChangeEventType = "doctor.changed"
	ChangeEventPatient        ChangeEventType = "patient.changed"
	ChangeEventUser           ChangeEventType = "user.changed"
	ChangeEventReference      ChangeEventType = "reference.changed"
	ChangeEventSettingChanged ChangeEventType = "setting.changed"
	ChangeEventNews           ChangeEventType = "news.changed"
)

// ChangeAction is the mutation that produced an event.
type ChangeAction string

const (
	ChangeActionCreated ChangeAction = "created"
	ChangeActionUpdated ChangeAction = "updated"
	ChangeActionDeleted ChangeAction = "deleted"
)

// ChangeEvent notifies subscribers that stored data changed
type ChangeEvent struct {
	ID        string          `json:"id"`
	Type      ChangeEventType `json:"type"`
	Action    ChangeAction    `json:"action"`
	EntityID  int64           `json:"entity_id"`
	DoctorID  int64           `json:"doctor_id,omitempty"`
	PatientID int64           `json:"patient_id,omitempty"`
	ActorID   int64           `json:"actor_id,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewChangeEvent creates a new change event
func NewChangeEvent(eventType ChangeEventType, action ChangeAction, entityID int64) *ChangeEvent {
	return &ChangeEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Action:    action,
		EntityID:  entityID,
		Timestamp: time.Now().UTC(),
	}
}
