package service

import (
	"context"
	"time"

	"kanucontrol/internal/domain"
	"kanucontrol/internal/hub"
	"kanucontrol/internal/repository"
	"kanucontrol/internal/repository/sqlite"
)

// Club provides the collaborator operations for persons, clubs, roles and memberships
type Club struct {
	store *sqlite.Store
	hub   *hub.Hub
	now   func() time.Time
}

// NewClub creates a new club service and routes the store's commits to the hub.
// The hub's Run loop must be running for subscriptions to refresh.
func NewClub(store *sqlite.Store, h *hub.Hub) *Club {
	store.OnCommit(h.Broadcast)
	return &Club{
		store: store,
		hub:   h,
		now:   time.Now,
	}
}

// Store returns the underlying store, e.g. for the event and travel cost tables
func (c *Club) Store() *sqlite.Store {
	return c.store
}

// watch subscribes to an ordered full-table read of t
func watch[T any, K comparable](ctx context.Context, h *hub.Hub, t *sqlite.Table[T, K], ordering repository.Ordering) (*hub.Subscription[T], error) {
	name := t.Name()
	if ordering != "" {
		name += "/" + string(ordering)
	}
	return hub.Subscribe(ctx, h, name, func(ctx context.Context) ([]T, error) {
		return t.List(ctx, ordering)
	})
}

// ============================================================================
// Persons
// ============================================================================

// SavePerson inserts or updates a person
func (c *Club) SavePerson(ctx context.Context, p *domain.Person) error {
	return c.store.Personen.Save(ctx, p)
}

// DeletePersons removes persons together with their memberships, participations and travel costs
func (c *Club) DeletePersons(ctx context.Context, ids []int64) (int64, error) {
	return c.store.Personen.DeleteByIDs(ctx, ids)
}

// DeleteAllPersons removes every person
func (c *Club) DeleteAllPersons(ctx context.Context) (int64, error) {
	return c.store.Personen.DeleteAll(ctx)
}

// ChangePersonStatus activates or deactivates a person without touching other fields
func (c *Club) ChangePersonStatus(ctx context.Context, id int64, active bool) (*domain.Person, error) {
	return c.store.ChangePersonStatus(ctx, id, active)
}

// WatchPersons subscribes to all persons in the given order
func (c *Club) WatchPersons(ctx context.Context, ordering repository.Ordering) (*hub.Subscription[domain.Person], error) {
	return watch(ctx, c.hub, c.store.Personen, ordering)
}

// ============================================================================
// Clubs
// ============================================================================

// SaveVerein inserts or updates a club
func (c *Club) SaveVerein(ctx context.Context, v *domain.Verein) error {
	return c.store.Vereine.Save(ctx, v)
}

// DeleteVereine removes clubs; memberships keep their person with an empty club
func (c *Club) DeleteVereine(ctx context.Context, ids []int64) (int64, error) {
	return c.store.Vereine.DeleteByIDs(ctx, ids)
}

// DeleteAllVereine removes every club
func (c *Club) DeleteAllVereine(ctx context.Context) (int64, error) {
	return c.store.Vereine.DeleteAll(ctx)
}

// WatchVereine subscribes to all clubs in the given order
func (c *Club) WatchVereine(ctx context.Context, ordering repository.Ordering) (*hub.Subscription[domain.Verein], error) {
	return watch(ctx, c.hub, c.store.Vereine, ordering)
}

// ============================================================================
// Roles
// ============================================================================

// SaveFunktion inserts or updates a role
func (c *Club) SaveFunktion(ctx context.Context, f *domain.Funktion) error {
	return c.store.Funktionen.Save(ctx, f)
}

// DeleteFunktionen removes roles
func (c *Club) DeleteFunktionen(ctx context.Context, ids []int64) (int64, error) {
	return c.store.Funktionen.DeleteByIDs(ctx, ids)
}

// DeleteAllFunktionen removes every role
func (c *Club) DeleteAllFunktionen(ctx context.Context) (int64, error) {
	return c.store.Funktionen.DeleteAll(ctx)
}

// WatchFunktionen subscribes to all roles in the given order
func (c *Club) WatchFunktionen(ctx context.Context, ordering repository.Ordering) (*hub.Subscription[domain.Funktion], error) {
	return watch(ctx, c.hub, c.store.Funktionen, ordering)
}

// ============================================================================
// Memberships
// ============================================================================

// SaveMitglied inserts or updates a membership
func (c *Club) SaveMitglied(ctx context.Context, m *domain.Mitglied) error {
	return c.store.Mitglieder.Save(ctx, m)
}

// DeleteMitglieder removes memberships
func (c *Club) DeleteMitglieder(ctx context.Context, ids []int64) (int64, error) {
	return c.store.Mitglieder.DeleteByIDs(ctx, ids)
}

// DeleteAllMitglieder removes every membership
func (c *Club) DeleteAllMitglieder(ctx context.Context) (int64, error) {
	return c.store.Mitglieder.DeleteAll(ctx)
}

// WatchMitglieder subscribes to all memberships by id
func (c *Club) WatchMitglieder(ctx context.Context) (*hub.Subscription[domain.Mitglied], error) {
	return watch(ctx, c.hub, c.store.Mitglieder, repository.OrderByID)
}

// WatchRoster subscribes to the membership roster
func (c *Club) WatchRoster(ctx context.Context) (*hub.Subscription[domain.MemberRow], error) {
	return hub.Subscribe(ctx, c.hub, "roster", c.store.MembershipRoster)
}
