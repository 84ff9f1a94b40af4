package kafka

import (
	"encoding/json"
	"time"
)

// NewParcelLifecycleEvent builds the event published once per parcel
// history append.
func NewParcelLifecycleEvent(parcelID int, status, message string, at time.Time) ParcelLifecycleEvent {
	return ParcelLifecycleEvent{
		ParcelID: parcelID,
		Status:   status,
		Message:  message,
		At:       at,
	}
}

// NewCommandResult builds the reply envelope for one processed command.
// When err is nil, data is marshaled into Data; otherwise OK is false and
// Error carries err's message — Go error values are never serialized
// directly onto the wire.
func NewCommandResult(correlationID string, cmd CommandName, data interface{}, err error) CommandResult {
	if err != nil {
		return CommandResult{
			CorrelationID: correlationID,
			Command:       cmd,
			OK:            false,
			Error:         err.Error(),
		}
	}

	var raw json.RawMessage
	if data != nil {
		encoded, marshalErr := json.Marshal(data)
		if marshalErr != nil {
			return CommandResult{
				CorrelationID: correlationID,
				Command:       cmd,
				OK:            false,
				Error:         marshalErr.Error(),
			}
		}
		raw = encoded
	}

	return CommandResult{
		CorrelationID: correlationID,
		Command:       cmd,
		OK:            true,
		Data:          raw,
	}
}
