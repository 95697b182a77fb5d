package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/realestate/backend/internal/application/unitofwork"
	"github.com/realestate/backend/internal/domain/partner"
	"github.com/realestate/backend/internal/domain/shared"
	"github.com/realestate/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type nopSession struct{}

func (nopSession) Commit() error   { return nil }
func (nopSession) Rollback() error { return nil }
func (nopSession) Close() error    { return nil }

type capturingPublisher struct {
	events []shared.DomainEvent
}

func (p *capturingPublisher) Publish(_ context.Context, event shared.DomainEvent) error {
	p.events = append(p.events, event)
	return nil
}

// memoryRepo is an in-memory partner.Repository for handler tests
type memoryRepo struct {
	items  map[uuid.UUID]*partner.Partner
	events []shared.DomainEvent
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{items: make(map[uuid.UUID]*partner.Partner)}
}

func (r *memoryRepo) Add(_ context.Context, p *partner.Partner) error {
	if _, exists := r.items[p.GetID()]; exists {
		return shared.ErrAlreadyExists
	}
	r.items[p.GetID()] = p
	return nil
}

func (r *memoryRepo) Remove(_ context.Context, p *partner.Partner) error {
	delete(r.items, p.GetID())
	return nil
}

func (r *memoryRepo) GetByID(_ context.Context, id uuid.UUID) (*partner.Partner, error) {
	p, ok := r.items[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return p, nil
}

func (r *memoryRepo) Persist(_ context.Context, p *partner.Partner) error {
	r.items[p.GetID()] = p
	r.events = append(r.events, p.GetDomainEvents()...)
	p.ClearDomainEvents()
	return nil
}

func (r *memoryRepo) PersistAll(ctx context.Context) error {
	for _, p := range r.items {
		if err := r.Persist(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (r *memoryRepo) CollectEvents() []shared.DomainEvent {
	events := r.events
	r.events = nil
	return events
}

type fixture struct {
	app       *unitofwork.App
	repo      *memoryRepo
	publisher *capturingPublisher
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repo := newMemoryRepo()
	publisher := &capturingPublisher{}

	sessions := func(context.Context) (unitofwork.Session, error) { return nopSession{}, nil }
	repositories := func(*unitofwork.Scope) []unitofwork.NamedDependency {
		return []unitofwork.NamedDependency{
			{Key: RepositoryKey, Instance: repo},
			{Key: EvaluatorKey, Instance: partner.NewEvaluator()},
		}
	}

	app := unitofwork.NewApp(sessions, repositories, publisher, zaptest.NewLogger(t))
	Register(app)

	return &fixture{app: app, repo: repo, publisher: publisher}
}

func (f *fixture) createActivePartner(t *testing.T) *partner.Partner {
	t.Helper()
	ctx := context.Background()

	result, err := f.app.Execute(ctx, CommandCreate, CreateCommand{Name: "Acme Realty", UserID: uuid.New()}, nil)
	require.NoError(t, err)
	require.NoError(t, result.Err)
	p := result.Value.(*partner.Partner)

	result, err = f.app.Execute(ctx, CommandActivate, ActivateCommand{PartnerID: p.GetID()}, nil)
	require.NoError(t, err)
	require.NoError(t, result.Err)
	return p
}

func money(t *testing.T, amount float64) valueobject.Money {
	t.Helper()
	m, err := valueobject.NewMoneyARSFromFloat(amount)
	require.NoError(t, err)
	return m
}

func period(t *testing.T, year, month int) valueobject.Period {
	t.Helper()
	p, err := valueobject.NewPeriod(year, month)
	require.NoError(t, err)
	return p
}

func TestCreatePartner(t *testing.T) {
	t.Run("stores the partner and publishes the created event", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.app.Execute(context.Background(), CommandCreate, CreateCommand{Name: "Acme Realty", UserID: uuid.New()}, nil)

		require.NoError(t, err)
		require.NoError(t, result.Err)
		p := result.Value.(*partner.Partner)
		assert.Equal(t, shared.PartnershipInactive, p.Status)
		assert.Contains(t, f.repo.items, p.GetID())

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, partner.EventPartnerCreated, f.publisher.events[0].EventType())
	})

	t.Run("empty name rolls back with a rule violation", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.app.Execute(context.Background(), CommandCreate, CreateCommand{Name: "  ", UserID: uuid.New()}, nil)

		require.NoError(t, err)
		assert.True(t, result.RolledBack)
		assert.Equal(t, shared.KindDomainRule, shared.KindOf(result.Err))
		assert.Empty(t, f.repo.items)
		assert.Empty(t, f.publisher.events)
	})
}

func TestPartnerStatusCommands(t *testing.T) {
	t.Run("activate then deactivate", func(t *testing.T) {
		f := newFixture(t)
		p := f.createActivePartner(t)
		assert.Equal(t, shared.PartnershipActive, f.repo.items[p.GetID()].Status)

		result, err := f.app.Execute(context.Background(), CommandDeactivate, DeactivateCommand{PartnerID: p.GetID()}, nil)
		require.NoError(t, err)
		require.NoError(t, result.Err)
		assert.Equal(t, shared.PartnershipInactive, f.repo.items[p.GetID()].Status)
	})

	t.Run("ban publishes the banned event", func(t *testing.T) {
		f := newFixture(t)
		p := f.createActivePartner(t)
		f.publisher.events = nil

		result, err := f.app.Execute(context.Background(), CommandBan, BanCommand{PartnerID: p.GetID()}, nil)
		require.NoError(t, err)
		require.NoError(t, result.Err)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, partner.EventPartnerBanned, f.publisher.events[0].EventType())
	})

	t.Run("unknown partner reports not found", func(t *testing.T) {
		f := newFixture(t)

		result, err := f.app.Execute(context.Background(), CommandActivate, ActivateCommand{PartnerID: uuid.New()}, nil)
		require.NoError(t, err)
		assert.ErrorIs(t, result.Err, shared.ErrNotFound)
	})
}

func TestPromotePartner(t *testing.T) {
	f := newFixture(t)
	p := f.createActivePartner(t)

	result, err := f.app.Execute(context.Background(), CommandPromote, PromoteCommand{PartnerID: p.GetID(), Tier: partner.TierGold}, nil)

	require.NoError(t, err)
	require.NoError(t, result.Err)
	assert.Equal(t, partner.TierGold, f.repo.items[p.GetID()].Tier)
}

func TestRegisterAchievement(t *testing.T) {
	t.Run("accumulates performance and publishes the integration event", func(t *testing.T) {
		f := newFixture(t)
		p := f.createActivePartner(t)
		f.publisher.events = nil
		cmd := AchievementCommand{
			PartnerID:       p.GetID(),
			AchievementType: shared.AchievementClose,
			Revenue:         money(t, 150000),
			Period:          period(t, 2026, 8),
		}

		result, err := f.app.Execute(context.Background(), CommandRegisterAchievement, cmd, nil)

		require.NoError(t, err)
		require.NoError(t, result.Err)
		perf := f.repo.items[p.GetID()].PerformanceFor(cmd.Period)
		require.NotNil(t, perf)
		assert.Equal(t, 1, perf.OperationsClosed)

		require.Len(t, f.publisher.events, 1)
		assert.Equal(t, partner.EventPartnerAchievementRegistered, f.publisher.events[0].EventType())
	})

	t.Run("inactive partner cannot register achievements", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.app.Execute(context.Background(), CommandCreate, CreateCommand{Name: "Idle Realty", UserID: uuid.New()}, nil)
		require.NoError(t, err)
		p := created.Value.(*partner.Partner)

		cmd := AchievementCommand{
			PartnerID:       p.GetID(),
			AchievementType: shared.AchievementClose,
			Revenue:         money(t, 1000),
			Period:          period(t, 2026, 8),
		}
		result, err := f.app.Execute(context.Background(), CommandRegisterAchievement, cmd, nil)

		require.NoError(t, err)
		assert.ErrorIs(t, result.Err, shared.ErrWithoutPermission)
	})

	t.Run("removing an achievement that was never registered is a rule violation", func(t *testing.T) {
		f := newFixture(t)
		p := f.createActivePartner(t)

		cmd := AchievementCommand{
			PartnerID:       p.GetID(),
			AchievementType: shared.AchievementClose,
			Revenue:         money(t, 1000),
			Period:          period(t, 2026, 8),
		}
		result, err := f.app.Execute(context.Background(), CommandRemoveAchievement, cmd, nil)

		require.NoError(t, err)
		assert.Equal(t, shared.KindDomainRule, shared.KindOf(result.Err))
	})
}

func TestFeeForQuery(t *testing.T) {
	t.Run("resolves the tier fee for an active partner", func(t *testing.T) {
		f := newFixture(t)
		p := f.createActivePartner(t)

		query := FeeForQuery{
			PartnerID:       p.GetID(),
			AchievementType: shared.AchievementClose,
			OperationType:   shared.OperationSale,
		}
		result, err := f.app.Execute(context.Background(), QueryFeeFor, query, nil)

		require.NoError(t, err)
		require.NoError(t, result.Err)
		fee := result.Value.(valueobject.Fee)
		assert.True(t, fee.Equals(valueobject.MustFee(1.0)))
	})

	t.Run("inactive partner earns nothing", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.app.Execute(context.Background(), CommandCreate, CreateCommand{Name: "Idle Realty", UserID: uuid.New()}, nil)
		require.NoError(t, err)
		p := created.Value.(*partner.Partner)

		query := FeeForQuery{
			PartnerID:       p.GetID(),
			AchievementType: shared.AchievementClose,
			OperationType:   shared.OperationSale,
		}
		result, err := f.app.Execute(context.Background(), QueryFeeFor, query, nil)

		require.NoError(t, err)
		assert.ErrorIs(t, result.Err, shared.ErrWithoutPermission)
	})
}

func TestFeesProviderDirect(t *testing.T) {
	repo := newMemoryRepo()
	provider := NewFeesProvider(repo, partner.NewEvaluator())
	ctx := context.Background()

	p, err := partner.NewPartner(shared.NextID(), "Gold Realty", uuid.New())
	require.NoError(t, err)
	require.NoError(t, p.Activate())
	require.NoError(t, p.Promote(partner.TierGold))
	require.NoError(t, repo.Add(ctx, p))

	t.Run("gold rent close pays the top fee", func(t *testing.T) {
		fee, err := provider.GetFeeFor(ctx, p.GetID(), shared.AchievementClose, shared.OperationRent)
		require.NoError(t, err)
		assert.True(t, fee.Equals(valueobject.MustFee(4.0)))
	})

	t.Run("unknown partner is not found", func(t *testing.T) {
		_, err := provider.GetFeeFor(ctx, uuid.New(), shared.AchievementClose, shared.OperationSale)
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}
