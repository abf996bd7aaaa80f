package service

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"kanucontrol/internal/repository"
)

const (
	sheetPersonen   = "Personen"
	sheetVereine    = "Vereine"
	sheetMitglieder = "Mitglieder"
)

// ExportRoster writes persons, clubs and memberships as an .xlsx workbook with
// one sheet each. All three are read in display order.
func (c *Club) ExportRoster(ctx context.Context, w io.Writer) error {
	persons, err := c.store.Personen.List(ctx, repository.OrderByName)
	if err != nil {
		return fmt.Errorf("export persons: %w", err)
	}
	clubs, err := c.store.Vereine.List(ctx, repository.OrderByName)
	if err != nil {
		return fmt.Errorf("export clubs: %w", err)
	}
	roster, err := c.store.MembershipRoster(ctx)
	if err != nil {
		return fmt.Errorf("export memberships: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetPersonen); err != nil {
		return err
	}
	for _, sheet := range []string{sheetVereine, sheetMitglieder} {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", sheet, err)
		}
	}

	today := c.now()
	personRows := [][]interface{}{
		{"Name", "Vorname", "Geburtstag", "Alter", "PLZ", "Ort", "E-Mail", "Aktiv", "Status seit"},
	}
	for _, p := range persons {
		var age interface{}
		if a := p.Age(today); a >= 0 {
			age = a
		}
		personRows = append(personRows, []interface{}{
			p.Name, p.Vorname, p.Geburtstag, age, p.PLZ, p.Ort, p.Email, yesNo(p.Status), p.StatusDatum,
		})
	}

	clubRows := [][]interface{}{
		{"Name", "Kurz", "Bezirk", "Ort", "Homepage"},
	}
	for _, v := range clubs {
		clubRows = append(clubRows, []interface{}{v.Name, v.Kurz, v.Bezirk, v.Ort, v.Homepage})
	}

	memberRows := [][]interface{}{
		{"Name", "Verein", "Funktion", "Aktiv"},
	}
	for _, m := range roster {
		memberRows = append(memberRows, []interface{}{m.NameGesamt, m.Verein, m.Funktion, yesNo(m.Status)})
	}

	for sheet, rows := range map[string][][]interface{}{
		sheetPersonen:   personRows,
		sheetVereine:    clubRows,
		sheetMitglieder: memberRows,
	} {
		if err := writeRows(f, sheet, rows); err != nil {
			return err
		}
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write %s row %d: %w", sheet, i+1, err)
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "ja"
	}
	return "nein"
}
