package partner

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/application/unitofwork"
	"github.com/realestate/backend/internal/domain/partner"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
)

// Command names routed through the application
const (
	CommandCreate              = "partner.create"
	CommandActivate            = "partner.activate"
	CommandDeactivate          = "partner.deactivate"
	CommandBan                 = "partner.ban"
	CommandPromote             = "partner.promote"
	CommandRegisterAchievement = "partner.register_achievement"
	CommandRemoveAchievement   = "partner.remove_achievement"
	QueryFeeFor                = "partner.fee_for"
)

// Dependency keys the partner handlers resolve from the scope
const (
	RepositoryKey = "partner_repository"
	EvaluatorKey  = "fee_evaluator"
)

// CreateCommand creates a new partner in the inactive state
type CreateCommand struct {
	Name   string
	UserID uuid.UUID
}

// ActivateCommand activates an existing partner
type ActivateCommand struct {
	PartnerID uuid.UUID
}

// DeactivateCommand suspends a partner
type DeactivateCommand struct {
	PartnerID uuid.UUID
}

// BanCommand permanently blocks a partner
type BanCommand struct {
	PartnerID uuid.UUID
}

// PromoteCommand moves a partner to a new tier
type PromoteCommand struct {
	PartnerID uuid.UUID
	Tier      partner.Tier
}

// AchievementCommand registers or removes an achievement for a period
type AchievementCommand struct {
	PartnerID       uuid.UUID
	AchievementType shared.AchievementType
	Revenue         valueobject.Money
	Period          valueobject.Period
}

// FeeForQuery asks which fee a partner earns for an achievement on an
// operation type
type FeeForQuery struct {
	PartnerID       uuid.UUID
	AchievementType shared.AchievementType
	OperationType   shared.OperationType
}

// Register wires the partner handlers into the application's routing table
func Register(app *unitofwork.App) {
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandCreate,
		Deps:    []string{RepositoryKey},
		Handler: handleCreate,
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandActivate,
		Deps:    []string{RepositoryKey},
		Handler: statusHandler(func(p *partner.Partner) error { return p.Activate() }),
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandDeactivate,
		Deps:    []string{RepositoryKey},
		Handler: statusHandler(func(p *partner.Partner) error { return p.Deactivate() }),
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandBan,
		Deps:    []string{RepositoryKey},
		Handler: statusHandler(func(p *partner.Partner) error { p.Ban(); return nil }),
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandPromote,
		Deps:    []string{RepositoryKey},
		Handler: handlePromote,
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandRegisterAchievement,
		Deps:    []string{RepositoryKey},
		Handler: handleRegisterAchievement,
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: CommandRemoveAchievement,
		Deps:    []string{RepositoryKey},
		Handler: handleRemoveAchievement,
	})
	app.MustRegisterHandler(unitofwork.HandlerDescriptor{
		Command: QueryFeeFor,
		Deps:    []string{RepositoryKey, EvaluatorKey},
		Handler: handleFeeFor,
	})
}

func handleCreate(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(CreateCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandCreate, payload))
	}
	repo, err := unitofwork.Dep[partner.Repository](deps, RepositoryKey)
	if err != nil {
		return nil, err
	}

	p, err := partner.NewPartner(shared.NextID(), cmd.Name, cmd.UserID)
	if err != nil {
		return nil, err
	}
	if err := repo.Add(ctx, p); err != nil {
		return nil, err
	}
	if err := repo.Persist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// statusHandler adapts a single aggregate mutation into a full load-mutate-persist handler
func statusHandler(mutate func(*partner.Partner) error) unitofwork.Handler {
	return func(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
		partnerID, err := partnerIDOf(payload)
		if err != nil {
			return nil, err
		}
		repo, err := unitofwork.Dep[partner.Repository](deps, RepositoryKey)
		if err != nil {
			return nil, err
		}

		p, err := repo.GetByID(ctx, partnerID)
		if err != nil {
			return nil, err
		}
		if err := mutate(p); err != nil {
			return nil, err
		}
		if err := repo.Persist(ctx, p); err != nil {
			return nil, err
		}
		return p, nil
	}
}

func handlePromote(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(PromoteCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandPromote, payload))
	}
	repo, err := unitofwork.Dep[partner.Repository](deps, RepositoryKey)
	if err != nil {
		return nil, err
	}

	p, err := repo.GetByID(ctx, cmd.PartnerID)
	if err != nil {
		return nil, err
	}
	if err := p.Promote(cmd.Tier); err != nil {
		return nil, err
	}
	if err := repo.Persist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func handleRegisterAchievement(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(AchievementCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandRegisterAchievement, payload))
	}
	return applyAchievement(ctx, deps, cmd, (*partner.Partner).RegisterAchievement)
}

func handleRemoveAchievement(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	cmd, ok := payload.(AchievementCommand)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(CommandRemoveAchievement, payload))
	}
	return applyAchievement(ctx, deps, cmd, (*partner.Partner).RemoveAchievement)
}

func applyAchievement(
	ctx context.Context,
	deps unitofwork.Dependencies,
	cmd AchievementCommand,
	apply func(*partner.Partner, shared.AchievementType, valueobject.Money, valueobject.Period) error,
) (any, error) {
	repo, err := unitofwork.Dep[partner.Repository](deps, RepositoryKey)
	if err != nil {
		return nil, err
	}

	p, err := repo.GetByID(ctx, cmd.PartnerID)
	if err != nil {
		return nil, err
	}
	if err := apply(p, cmd.AchievementType, cmd.Revenue, cmd.Period); err != nil {
		return nil, err
	}
	if err := repo.Persist(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func handleFeeFor(ctx context.Context, payload any, deps unitofwork.Dependencies) (any, error) {
	query, ok := payload.(FeeForQuery)
	if !ok {
		return nil, shared.ErrConfiguration.WithCause(badPayload(QueryFeeFor, payload))
	}
	repo, err := unitofwork.Dep[partner.Repository](deps, RepositoryKey)
	if err != nil {
		return nil, err
	}
	evaluator, err := unitofwork.Dep[*partner.Evaluator](deps, EvaluatorKey)
	if err != nil {
		return nil, err
	}

	provider := NewFeesProvider(repo, evaluator)
	return provider.GetFeeFor(ctx, query.PartnerID, query.AchievementType, query.OperationType)
}

func badPayload(command string, payload any) error {
	return fmt.Errorf("command %s received a %T payload", command, payload)
}

func partnerIDOf(payload any) (uuid.UUID, error) {
	switch cmd := payload.(type) {
	case ActivateCommand:
		return cmd.PartnerID, nil
	case DeactivateCommand:
		return cmd.PartnerID, nil
	case BanCommand:
		return cmd.PartnerID, nil
	default:
		return uuid.Nil, shared.ErrConfiguration.WithCause(fmt.Errorf("payload %T does not name a partner", payload))
	}
}
