package strategy

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/application/unitofwork"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
	"github.com/realestate/backend/internal/domain/strategy"
)

// Command names routed through the application
const (
	CommandCreate   = "strategy.create"
	CommandActivate = "strategy.activate"
	CommandExtend   = "strategy.extend"
	CommandStop     = "strategy.stop"
)

// RepositoryKey is the scope binding for the strategy repository
const RepositoryKey = "strategy_repository"

// CreateCommand creates a strategy in draft state
type CreateCommand struct {
	Name          string
	PartnerID     uuid.UUID
	Range         valueobject.DateRange
	TargetRevenue valueobject.Money
}

// ActivateCommand starts a draft strategy
type ActivateCommand struct {
	StrategyID uuid.UUID
}

// ExtendCommand pushes an active strategy's end date out by Days
type ExtendCommand struct {
	StrategyID uuid.UUID
	Days       int
}

// StopCommand ends an active strategy now
type StopCommand struct {
	StrategyID uuid.UUID
}

// Register wires the strategy handlers into the application's routing table
func Register(app *unitofwork.App) {
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandCreate,
		Deps:    []string{RepositoryKey},
		Handler: handleCreate,
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandActivate,
		Deps:    []string{RepositoryKey},
		Handler: handleActivate,
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandExtend,
		Deps:    []string{RepositoryKey},
		Handler: handleExtend,
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandStop,
		Deps:    []string{RepositoryKey},
		Handler: handleStop,
	})
}

func handleCreate(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(CreateCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandCreate, payload))
	}
	repo, err := unitofwork.Dep[strategy.Repository](deps, RepositoryKey)
	if err != nil {
		return nil, err
	}

	s, err := strategy.NewStrategy(shared.NextID(), cmd.Name, cmd.PartnerID, cmd.Range, cmd.TargetRevenue)
	if err != nil {
		return nil, err
	}
	if err := repo.Add(ctx, s); err != nil {
		return nil, err
	}
	if err := repo.Persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func handleActivate(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(ActivateCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandActivate, payload))
	}
	return mutate(ctx, deps, cmd.StrategyID, func(s *strategy.Strategy) error { return s.Activate() })
}

func handleExtend(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(ExtendCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandExtend, payload))
	}
	return mutate(ctx, deps, cmd.StrategyID, func(s *strategy.Strategy) error { return s.Extend(cmd.Days) })
}

func handleStop(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(StopCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandStop, payload))
	}
	return mutate(ctx, deps, cmd.StrategyID, func(s *strategy.Strategy) error { return s.Stop() })
}

func mutate(ctx context.Context, deps unitofwork.Dependencies, id uuid.UUID, apply func(*strategy.Strategy) error) (any, error) {
	repo, err := unitofwork.Dep[strategy.Repository](deps, RepositoryKey)
	if err != nil {
		return nil, err
	}

	s, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(s); err != nil {
		return nil, err
	}
	if err := repo.Persist(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func badPayload(command string, payload any) error {
	return fmt.Errorf("command %s received a %T payload", command, payload)
}
