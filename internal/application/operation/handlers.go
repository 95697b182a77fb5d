package operation

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	appartner "github.com/realestate/backend/internal/application/partner"
	"github.com/realestate/backend/internal/application/unitofwork"
	"github.com/realestate/backend/internal/domain/operation"
	"github.com/realestate/backend/internal/domain/partner"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// Command names routed through the application
const (
	CommandOpen   = "operation.open"
	CommandClose  = "operation.close"
	CommandCancel = "operation.cancel"
)

// RepositoryKey is the scope binding for the operation repository
const RepositoryKey = "operation_repository"

// OpenCommand opens a new operation for a property handled by a partner
type OpenCommand struct {
	PropertyID uuid.UUID
	PartnerID  uuid.UUID
	Type       shared.OperationType
	Amount     valueobject.Money
}

// CloseCommand completes an open operation
type CloseCommand struct {
	OperationID uuid.UUID
}

// CancelCommand abandons an open operation
type CancelCommand struct {
	OperationID uuid.UUID
}

// Register wires the operation handlers into the application's routing table.
// Closing touches both the operation and its partner inside the same unit of
// work, so the close handler declares both repositories.
func Register(app *unitofwork.App) {
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandOpen,
		Deps:    []string{RepositoryKey},
		Handler: handleOpen,
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandClose,
		Deps:    []string{RepositoryKey, appartner.RepositoryKey},
		Handler: handleClose,
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandCancel,
		Deps:    []string{RepositoryKey},
		Handler: handleCancel,
	})
}

func handleOpen(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(OpenCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandOpen, payload))
	}
	repo, err := unitofwork.Dep[operation.Repository](deps, RepositoryKey)
	if err != nil {
		return nil, err
	}

	o, err := operation.NewOperation(shared.NextID(), cmd.PropertyID, cmd.PartnerID, cmd.Type, cmd.Amount)
	if err != nil {
		return nil, err
	}
	if err := repo.Add(ctx, o); err != nil {
		return nil, err
	}
	if err := repo.Persist(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

// handleClose closes the operation and registers a close achievement with the
// operation's amount on the partner, atomically. Either both aggregates
// commit or neither does.
func handleClose(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(CloseCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandClose, payload))
	}
	operations, err := unitofwork.Dep[operation.Repository](deps, RepositoryKey)
	if err != nil {
		return nil, err
	}
	partners, err := unitofwork.Dep[partner.Repository](deps, appartner.RepositoryKey)
	if err != nil {
		return nil, err
	}

	o, err := operations.GetByID(ctx, cmd.OperationID)
	if err != nil {
		return nil, err
	}
	if err := o.Close(); err != nil {
		return nil, err
	}

	period, err := o.ClosedPeriod()
	if err != nil {
		return nil, err
	}
	p, err := partners.GetByID(ctx, o.PartnerID)
	if err != nil {
		return nil, err
	}
	if err := p.RegisterAchievement(shared.AchievementClose, o.Amount, period); err != nil {
		return nil, err
	}

	if err := operations.Persist(ctx, o); err != nil {
		return nil, err
	}
	if err := partners.Persist(ctx, p); err != nil {
		return nil, err
	}
	return o, nil
}

func handleCancel(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(CancelCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandCancel, payload))
	}
	repo, err := unitofwork.Dep[operation.Repository](deps, RepositoryKey)
	if err != nil {
		return nil, err
	}

	o, err := repo.GetByID(ctx, cmd.OperationID)
	if err != nil {
		return nil, err
	}
	if err := o.Cancel(); err != nil {
		return nil, err
	}
	if err := repo.Persist(ctx, o); err != nil {
		return nil, err
	}
	return o, nil
}

func badPayload(command string, payload any) error {
	return fmt.Errorf("command %s received a %T payload", command, payload)
}
