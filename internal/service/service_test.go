package service

import (
	"bytes"
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"kanucontrol/internal/domain"
	"kanucontrol/internal/hub"
	"kanucontrol/internal/repository"
	"kanucontrol/internal/repository/sqlite"
)

var testDay = time.Date(2026, time.March, 1, 10, 0, 0, 0, time.UTC)

func newTestClub(t *testing.T) *Club {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "KanuControl.sqlite"), sqlite.Options{
		Now: func() time.Time { return testDay },
	})
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})

	h := hub.New()
	go h.Run(ctx)

	c := NewClub(store, h)
	c.now = func() time.Time { return testDay }
	return c
}

func savePersons(t *testing.T, c *Club, names ...[2]string) []*domain.Person {
	t.Helper()
	var out []*domain.Person
	for _, n := range names {
		p := domain.NewPerson(n[0], n[1])
		if err := c.SavePerson(context.Background(), p); err != nil {
			t.Fatalf("failed to save person: %v", err)
		}
		out = append(out, p)
	}
	return out
}

func fullNames(persons []domain.Person) []string {
	names := make([]string, len(persons))
	for i, p := range persons {
		names[i] = p.NameGesamt
	}
	return names
}

// waitFor reads results until match accepts one or the deadline passes
func waitFor[T any](t *testing.T, sub *hub.Subscription[T], match func([]T) bool) []T {
	t.Helper()
	deadline := time.After(2 * time.Second)
	for {
		select {
		case r, ok := <-sub.Results():
			if !ok {
				t.Fatal("subscription ended")
			}
			if r.Err != nil {
				t.Fatalf("query failed: %v", r.Err)
			}
			if match(r.Items) {
				return r.Items
			}
		case <-deadline:
			t.Fatal("timed out waiting for matching result")
			return nil
		}
	}
}

func TestWatchPersonsInitialSnapshotIsOrdered(t *testing.T) {
	c := newTestClub(t)
	savePersons(t, c, [2]string{"Müller", "Anna"}, [2]string{"Anders", "Bert"}, [2]string{"Zimmer", "Cara"})

	sub, err := c.WatchPersons(context.Background(), repository.OrderByName)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer sub.Close()

	r := <-sub.Results()
	want := []string{"Anders, Bert", "Müller, Anna", "Zimmer, Cara"}
	if got := fullNames(r.Items); !reflect.DeepEqual(want, got) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestWatchPersonsReceivesInsert(t *testing.T) {
	c := newTestClub(t)
	savePersons(t, c, [2]string{"Müller", "Anna"})

	sub, err := c.WatchPersons(context.Background(), repository.OrderByName)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer sub.Close()

	first := <-sub.Results()
	if len(first.Items) != 1 {
		t.Fatalf("expected 1 person, got %d", len(first.Items))
	}

	savePersons(t, c, [2]string{"Anders", "Bert"})

	got := waitFor(t, sub, func(items []domain.Person) bool { return len(items) == 2 })
	want := []string{"Anders, Bert", "Müller, Anna"}
	if !reflect.DeepEqual(want, fullNames(got)) {
		t.Errorf("expected %v, got %v", want, fullNames(got))
	}
}

func TestWatchPersonsSeesStatusChange(t *testing.T) {
	c := newTestClub(t)
	persons := savePersons(t, c, [2]string{"Müller", "Anna"}, [2]string{"Anders", "Bert"})

	sub, err := c.WatchPersons(context.Background(), repository.OrderByStatus)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer sub.Close()
	<-sub.Results()

	if _, err := c.ChangePersonStatus(context.Background(), persons[1].ID, false); err != nil {
		t.Fatalf("change status failed: %v", err)
	}

	got := waitFor(t, sub, func(items []domain.Person) bool {
		return len(items) == 2 && !items[1].Status
	})
	want := []string{"Müller, Anna", "Anders, Bert"}
	if !reflect.DeepEqual(want, fullNames(got)) {
		t.Errorf("expected %v, got %v", want, fullNames(got))
	}
}

func TestWatchUnknownOrdering(t *testing.T) {
	c := newTestClub(t)

	if _, err := c.WatchVereine(context.Background(), repository.OrderByAgeAscending); err == nil {
		t.Fatal("expected error for unsupported ordering")
	}
}

func TestWatchRosterFollowsClubDeletion(t *testing.T) {
	c := newTestClub(t)
	ctx := context.Background()

	p := savePersons(t, c, [2]string{"Müller", "Anna"})[0]
	v := &domain.Verein{Name: "KC Kiel"}
	if err := c.SaveVerein(ctx, v); err != nil {
		t.Fatalf("save verein failed: %v", err)
	}
	if err := c.SaveMitglied(ctx, domain.NewMitglied(p.ID, v.ID, 0)); err != nil {
		t.Fatalf("save mitglied failed: %v", err)
	}

	sub, err := c.WatchRoster(ctx)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer sub.Close()

	first := <-sub.Results()
	if len(first.Items) != 1 || first.Items[0].Verein != "KC Kiel" {
		t.Fatalf("unexpected roster %v", first.Items)
	}

	if _, err := c.DeleteVereine(ctx, []int64{v.ID}); err != nil {
		t.Fatalf("delete verein failed: %v", err)
	}

	waitFor(t, sub, func(rows []domain.MemberRow) bool {
		return len(rows) == 1 && rows[0].Verein == ""
	})
}

func TestWatchFunktionenSeeded(t *testing.T) {
	c := newTestClub(t)

	sub, err := c.WatchFunktionen(context.Background(), repository.OrderByID)
	if err != nil {
		t.Fatalf("watch failed: %v", err)
	}
	defer sub.Close()

	r := <-sub.Results()
	if len(r.Items) != len(domain.SeedFunktionen) {
		t.Errorf("expected %d roles, got %d", len(domain.SeedFunktionen), len(r.Items))
	}
}

func TestDeleteAllPersonsCascadesMemberships(t *testing.T) {
	c := newTestClub(t)
	ctx := context.Background()

	p := savePersons(t, c, [2]string{"Müller", "Anna"})[0]
	v := &domain.Verein{Name: "KC Kiel"}
	if err := c.SaveVerein(ctx, v); err != nil {
		t.Fatalf("save verein failed: %v", err)
	}
	if err := c.SaveMitglied(ctx, domain.NewMitglied(p.ID, v.ID, 0)); err != nil {
		t.Fatalf("save mitglied failed: %v", err)
	}

	n, err := c.DeleteAllPersons(ctx)
	if err != nil {
		t.Fatalf("delete all failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 deleted person, got %d", n)
	}

	count, err := c.Store().Mitglieder.Count(ctx)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("expected no memberships, got %d", count)
	}
}

func TestExportRoster(t *testing.T) {
	c := newTestClub(t)
	ctx := context.Background()

	persons := savePersons(t, c, [2]string{"Zimmer", "Cara"}, [2]string{"Anders", "Bert"})
	persons[0].Geburtstag = "2010-05-01"
	if err := c.SavePerson(ctx, persons[0]); err != nil {
		t.Fatalf("save person failed: %v", err)
	}
	v := &domain.Verein{Name: "KC Kiel", Ort: "Kiel"}
	if err := c.SaveVerein(ctx, v); err != nil {
		t.Fatalf("save verein failed: %v", err)
	}
	if err := c.SaveMitglied(ctx, domain.NewMitglied(persons[0].ID, v.ID, 0)); err != nil {
		t.Fatalf("save mitglied failed: %v", err)
	}

	var buf bytes.Buffer
	if err := c.ExportRoster(ctx, &buf); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("workbook unreadable: %v", err)
	}
	defer f.Close()

	assertSheets := []string{sheetPersonen, sheetVereine, sheetMitglieder}
	if got := f.GetSheetList(); !reflect.DeepEqual(assertSheets, got) {
		t.Fatalf("expected sheets %v, got %v", assertSheets, got)
	}

	rows, err := f.GetRows(sheetPersonen)
	if err != nil {
		t.Fatalf("read persons: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header and 2 persons, got %d rows", len(rows))
	}
	if rows[1][0] != "Anders" || rows[2][0] != "Zimmer" {
		t.Errorf("persons not in name order: %v", rows)
	}
	if rows[2][3] != "15" {
		t.Errorf("expected age 15, got %q", rows[2][3])
	}

	members, err := f.GetRows(sheetMitglieder)
	if err != nil {
		t.Fatalf("read memberships: %v", err)
	}
	if len(members) != 2 || members[1][0] != "Zimmer, Cara" || members[1][1] != "KC Kiel" {
		t.Errorf("unexpected memberships %v", members)
	}
}
