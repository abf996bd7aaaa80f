package sqlite

import (
	"context"

	"kanucontrol/internal/domain"
)

const rosterQuery = `
SELECT m.id, p.id, p.nameGesamt, p.status, COALESCE(v.name, ''), COALESCE(f.name, '')
FROM mitglied m
JOIN person p ON p.id = m.personId
LEFT JOIN verein v ON v.id = m.vereinId
LEFT JOIN funktion f ON f.id = m.funktionId
ORDER BY p.nameGesamt COLLATE LOCALIZED_NOCASE, v.name COLLATE LOCALIZED_NOCASE, m.id`

// MembershipRoster lists every membership with the names of its person, club
// and role, ordered by the person's full name. Memberships whose club or role
// was deleted keep an empty name.
func (s *Store) MembershipRoster(ctx context.Context) ([]domain.MemberRow, error) {
	rows, err := s.db.QueryContext(ctx, rosterQuery)
	if err != nil {
		return nil, storageErr("roster", "mitglied", err)
	}
	defer rows.Close()

	roster := []domain.MemberRow{}
	for rows.Next() {
		var r domain.MemberRow
		if err := rows.Scan(&r.MitgliedID, &r.PersonID, &r.NameGesamt, nullBool{&r.Status}, &r.Verein, &r.Funktion); err != nil {
			return nil, storageErr("roster", "mitglied", err)
		}
		roster = append(roster, r)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("roster", "mitglied", err)
	}
	return roster, nil
}
