package services

import (
	"context"
	"time"

	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/entities"
	"github.com/anushahashmi071/CareGroup-sub001/internal/domain/providers"
	"github.com/anushahashmi071/CareGroup-sub001/internal/infrastructure/observability"
	apperrors "github.com/anushahashmi071/CareGroup-sub001/pkg/errors"
)

// Clock returns the current time. Services take one so tests can pin "today".
type Clock func() time.Time

func systemClock() time.Time { return time.Now() }

// requireRole fails with Forbidden unless the caller has one of roles.
func requireRole(auth entities.AuthContext, roles ...entities.Role) error {
	for _, r := range roles {
		if auth.Role == r {
			return nil
		}
	}
	return apperrors.NewForbiddenError("insufficient permissions")
}

// requireProfile fails when a doctor or patient caller has no linked profile.
func requireProfile(auth entities.AuthContext) error {
	if !auth.IsAdmin() && auth.ProfileID == 0 {
		return apperrors.NewForbiddenError("account has no linked profile")
	}
	return nil
}

// publish sends a change event. A nil bus or a failed publish is logged and
// never fails the mutation that produced the event.
func publish(ctx context.Context, bus providers.EventBus, event *entities.ChangeEvent) {
	if bus == nil {
		return
	}
	if err := bus.Publish(ctx, providers.EventChannelChanges, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("event_type", string(event.Type)).
			Int64("entity_id", event.EntityID).
			Msg("failed to publish change event")
	}
}

func changeEvent(auth entities.AuthContext, t entities.ChangeEventType, action entities.ChangeAction, id int64) *entities.ChangeEvent {
	e := entities.NewChangeEvent(t, action, id)
	e.ActorID = auth.UserID
	return e
}
