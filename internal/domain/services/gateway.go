package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/swiftex-sim/swiftex/internal/domain/vo"
	"github.com/swiftex-sim/swiftex/internal/infrastructure/kafka"
)

// Gateway adapts an Engine to kafka.CommandHandler, decoding each command
// envelope's payload and translating the Engine's return values into a
// CommandResult. It is the only piece of the domain layer aware that Kafka
// exists.
type Gateway struct {
	engine *Engine
}

// NewGateway wraps engine for command dispatch.
func NewGateway(engine *Engine) *Gateway {
	return &Gateway{engine: engine}
}

// Handle implements kafka.CommandHandler.
func (g *Gateway) Handle(_ context.Context, envelope kafka.CommandEnvelope) kafka.CommandResult {
	data, err := g.dispatch(envelope)

	return kafka.NewCommandResult(envelope.CorrelationID, envelope.Command, data, err)
}

func (g *Gateway) dispatch(envelope kafka.CommandEnvelope) (interface{}, error) {
	switch envelope.Command {
	case kafka.CommandRegisterParcel:
		var payload kafka.RegisterParcelPayload
		if err := decodePayload(envelope, &payload); err != nil {
			return nil, err
		}

		return g.engine.RegisterParcel(
			payload.ID, payload.SourceCityID, payload.DestCityID,
			payload.Weight, payload.Priority, payload.PreferAlternative,
		)

	case kafka.CommandProcessPickupQueue:
		moved, err := g.engine.ProcessPickupQueue()
		if err != nil {
			return nil, err
		}

		return struct {
			Moved int `json:"moved"`
		}{Moved: moved}, nil

	case kafka.CommandDispatch:
		return g.engine.Dispatch(), nil

	case kafka.CommandUndoLast:
		msg, err := g.engine.UndoLast()
		if err != nil {
			return nil, err
		}

		return struct {
			Message string `json:"message"`
		}{Message: msg}, nil

	case kafka.CommandTrack:
		var payload kafka.TrackPayload
		if err := decodePayload(envelope, &payload); err != nil {
			return nil, err
		}

		return g.engine.Track(payload.ID)

	case kafka.CommandList:
		var payload kafka.ListPayload
		if err := decodePayload(envelope, &payload); err != nil {
			return nil, err
		}

		return g.engine.List(ListFilter(payload.Filter))

	case kafka.CommandViewHeapPreview:
		var payload kafka.ViewHeapPreviewPayload
		if err := decodePayload(envelope, &payload); err != nil {
			return nil, err
		}

		return g.engine.ViewHeapPreview(payload.K), nil

	case kafka.CommandViewFleet:
		return g.engine.ViewFleet(), nil

	case kafka.CommandMissingReport:
		return g.engine.MissingReport(), nil

	case kafka.CommandArchiveInOrder:
		return g.engine.ArchiveInOrder(), nil

	case kafka.CommandAnalytics:
		return g.engine.Analytics(), nil

	case kafka.CommandSetRoadStatus:
		var payload kafka.SetRoadStatusPayload
		if err := decodePayload(envelope, &payload); err != nil {
			return nil, err
		}

		status, err := vo.ParseRoadStatus(payload.Status)
		if err != nil {
			return nil, err
		}

		return nil, g.engine.SetRoadStatus(payload.U, payload.V, status)

	case kafka.CommandResetDay:
		g.engine.ResetDay()

		return nil, nil

	default:
		return nil, fmt.Errorf("%w: %q", kafka.ErrUnknownCommand, envelope.Command)
	}
}

func decodePayload(envelope kafka.CommandEnvelope, out interface{}) error {
	if len(envelope.Payload) == 0 {
		return fmt.Errorf("%w: %q", kafka.ErrMissingPayload, envelope.Command)
	}
	if err := json.Unmarshal(envelope.Payload, out); err != nil {
		return fmt.Errorf("%w: %v", kafka.ErrInvalidPayload, err)
	}

	return nil
}
