package sqlite

import (
	"time"

	"kanucontrol/internal/domain"
	"kanucontrol/internal/repository"
)

const byNameLocalized = `"name" COLLATE ` + CollationLocalized + `, "id"`

func validateOnly[T interface{ Validate() error }](row T, _ time.Time) error {
	return row.Validate()
}

func newPersonTable(s *Store) *Table[domain.Person, int64] {
	const byFullName = `"nameGesamt" COLLATE ` + CollationLocalized
	return &Table[domain.Person, int64]{
		store:   s,
		name:    "person",
		key:     "id",
		autoKey: true,
		columns: []string{
			"name", "vorname", "geburtstag", "sex", "strasse", "plz", "ort",
			"telefonFestnetz", "telefonMobil", "email", "nameGesamt",
			"status", "statusDatum", "bank", "iban", "bic",
		},
		orderings: map[repository.Ordering]string{
			repository.OrderByName: byFullName + `, "id"`,
			// persons without a birthday sort last in both directions
			repository.OrderByAgeAscending:  `"geburtstag" IS NULL, "geburtstag" DESC, ` + byFullName + `, "id"`,
			repository.OrderByAgeDescending: `"geburtstag" IS NULL, "geburtstag" ASC, ` + byFullName + `, "id"`,
			repository.OrderByStatus:        `"status" DESC, ` + byFullName + `, "id"`,
		},
		keyOf:  func(p *domain.Person) int64 { return p.ID },
		setKey: func(p *domain.Person, id int64) { p.ID = id },
		values: func(p *domain.Person) []any {
			return []any{
				p.Name, p.Vorname, stringToNull(p.Geburtstag), stringToNull(p.Sex), stringToNull(p.Strasse),
				stringToNull(p.PLZ), stringToNull(p.Ort), stringToNull(p.TelefonFestnetz),
				stringToNull(p.TelefonMobil), stringToNull(p.Email), p.NameGesamt,
				p.Status, p.StatusDatum, stringToNull(p.Bank), stringToNull(p.IBAN), stringToNull(p.BIC),
			}
		},
		dest: func(p *domain.Person) []any {
			return []any{
				&p.ID, &p.Name, &p.Vorname, nullString{&p.Geburtstag}, nullString{&p.Sex}, nullString{&p.Strasse},
				nullString{&p.PLZ}, nullString{&p.Ort}, nullString{&p.TelefonFestnetz},
				nullString{&p.TelefonMobil}, nullString{&p.Email}, &p.NameGesamt,
				nullBool{&p.Status}, &p.StatusDatum, nullString{&p.Bank}, nullString{&p.IBAN}, nullString{&p.BIC},
			}
		},
		prepare: func(p *domain.Person, now time.Time) error {
			if err := p.Validate(); err != nil {
				return err
			}
			p.Derive(now)
			return nil
		},
	}
}

func newVereinTable(s *Store) *Table[domain.Verein, int64] {
	return &Table[domain.Verein, int64]{
		store:   s,
		name:    "verein",
		key:     "id",
		autoKey: true,
		columns: []string{
			"name", "kurz", "bezirk", "strasse", "plz", "ort", "telefon", "homepage",
			"kz", "bank", "kontoinhaber", "iban", "bic", "rechtsform",
		},
		orderings: map[repository.Ordering]string{
			repository.OrderByName: byNameLocalized,
		},
		keyOf:  func(v *domain.Verein) int64 { return v.ID },
		setKey: func(v *domain.Verein, id int64) { v.ID = id },
		values: func(v *domain.Verein) []any {
			return []any{
				v.Name, stringToNull(v.Kurz), stringToNull(v.Bezirk), stringToNull(v.Strasse),
				stringToNull(v.PLZ), stringToNull(v.Ort), stringToNull(v.Telefon), stringToNull(v.Homepage),
				stringToNull(v.KZ), stringToNull(v.Bank), stringToNull(v.Kontoinhaber),
				stringToNull(v.IBAN), stringToNull(v.BIC), stringToNull(v.Rechtsform),
			}
		},
		dest: func(v *domain.Verein) []any {
			return []any{
				&v.ID, &v.Name, nullString{&v.Kurz}, nullString{&v.Bezirk}, nullString{&v.Strasse},
				nullString{&v.PLZ}, nullString{&v.Ort}, nullString{&v.Telefon}, nullString{&v.Homepage},
				nullString{&v.KZ}, nullString{&v.Bank}, nullString{&v.Kontoinhaber},
				nullString{&v.IBAN}, nullString{&v.BIC}, nullString{&v.Rechtsform},
			}
		},
		prepare: validateOnly[*domain.Verein],
	}
}

func newFunktionTable(s *Store) *Table[domain.Funktion, int64] {
	return &Table[domain.Funktion, int64]{
		store:   s,
		name:    "funktion",
		key:     "id",
		autoKey: true,
		columns: []string{"name"},
		orderings: map[repository.Ordering]string{
			repository.OrderByName: byNameLocalized,
		},
		keyOf:   func(f *domain.Funktion) int64 { return f.ID },
		setKey:  func(f *domain.Funktion, id int64) { f.ID = id },
		values:  func(f *domain.Funktion) []any { return []any{f.Name} },
		dest:    func(f *domain.Funktion) []any { return []any{&f.ID, &f.Name} },
		prepare: validateOnly[*domain.Funktion],
	}
}

func newMitgliedTable(s *Store) *Table[domain.Mitglied, int64] {
	return &Table[domain.Mitglied, int64]{
		store:   s,
		name:    "mitglied",
		key:     "id",
		autoKey: true,
		columns: []string{"personId", "vereinId", "funktionId"},
		keyOf:   func(m *domain.Mitglied) int64 { return m.ID },
		setKey:  func(m *domain.Mitglied, id int64) { m.ID = id },
		values: func(m *domain.Mitglied) []any {
			return []any{int64PtrToNull(m.PersonID), int64PtrToNull(m.VereinID), int64PtrToNull(m.FunktionID)}
		},
		dest: func(m *domain.Mitglied) []any {
			return []any{&m.ID, nullInt64Ptr{&m.PersonID}, nullInt64Ptr{&m.VereinID}, nullInt64Ptr{&m.FunktionID}}
		},
		prepare: validateOnly[*domain.Mitglied],
	}
}

func newLandTable(s *Store) *Table[domain.Land, string] {
	return &Table[domain.Land, string]{
		store:   s,
		name:    "land",
		key:     "laenderCode",
		columns: []string{"land", "flagge"},
		orderings: map[repository.Ordering]string{
			repository.OrderByName: `"land" COLLATE ` + CollationLocalized + `, "laenderCode"`,
		},
		keyOf:  func(l *domain.Land) string { return l.Code },
		values: func(l *domain.Land) []any { return []any{l.Name, l.Flagge} },
		dest: func(l *domain.Land) []any {
			return []any{&l.Code, &l.Name, &l.Flagge}
		},
		prepare: validateOnly[*domain.Land],
	}
}

func newKjpPositionTable(s *Store) *Table[domain.KjpPosition, int64] {
	return &Table[domain.KjpPosition, int64]{
		store:   s,
		name:    "kjpPosition",
		key:     "id",
		autoKey: true,
		columns: []string{"kurzname", "name"},
		keyOf:   func(k *domain.KjpPosition) int64 { return k.ID },
		setKey:  func(k *domain.KjpPosition, id int64) { k.ID = id },
		values:  func(k *domain.KjpPosition) []any { return []any{k.Kurzname, k.Name} },
		dest:    func(k *domain.KjpPosition) []any { return []any{&k.ID, &k.Kurzname, &k.Name} },
		prepare: validateOnly[*domain.KjpPosition],
	}
}

func newVeranstaltungTable(s *Store) *Table[domain.Veranstaltung, int64] {
	return &Table[domain.Veranstaltung, int64]{
		store:   s,
		name:    "veranstaltung",
		key:     "id",
		autoKey: true,
		columns: []string{
			"aktiv", "titel", "artDerUnterkunft", "artDerVerpflegung", "plz", "ort", "laenderCode",
			"beginn", "ende",
			"planMann", "planFrau", "istMann", "istFrau",
			"planMitarbeiterMann", "planMitarbeiterFrau", "istMitarbeiterMann", "istMitarbeiterFrau",
			"istMitarbeiterDivers",
			"kjpPositionId", "leiterId", "vereinId",
			"internationaleJugendarbeit", "thematischerSchwerpunkt", "durchfuehrungsort",
		},
		keyOf:  func(v *domain.Veranstaltung) int64 { return v.ID },
		setKey: func(v *domain.Veranstaltung, id int64) { v.ID = id },
		values: func(v *domain.Veranstaltung) []any {
			return []any{
				v.Aktiv, stringToNull(v.Titel), stringToNull(v.ArtDerUnterkunft), stringToNull(v.ArtDerVerpflegung),
				stringToNull(v.PLZ), stringToNull(v.Ort), stringToNull(v.LaenderCode),
				stringToNull(v.Beginn), stringToNull(v.Ende),
				v.PlanMann, v.PlanFrau, v.IstMann, v.IstFrau,
				v.PlanMitarbeiterMann, v.PlanMitarbeiterFrau, v.IstMitarbeiterMann, v.IstMitarbeiterFrau,
				v.IstMitarbeiterDivers,
				int64PtrToNull(v.KjpPositionID), int64PtrToNull(v.LeiterID), int64PtrToNull(v.VereinID),
				v.InternationaleJugendarbeit, v.ThematischerSchwerpunkt, v.Durchfuehrungsort,
			}
		},
		dest: func(v *domain.Veranstaltung) []any {
			return []any{
				&v.ID,
				nullBool{&v.Aktiv}, nullString{&v.Titel}, nullString{&v.ArtDerUnterkunft}, nullString{&v.ArtDerVerpflegung},
				nullString{&v.PLZ}, nullString{&v.Ort}, nullString{&v.LaenderCode},
				nullString{&v.Beginn}, nullString{&v.Ende},
				nullInt{&v.PlanMann}, nullInt{&v.PlanFrau}, nullInt{&v.IstMann}, nullInt{&v.IstFrau},
				nullInt{&v.PlanMitarbeiterMann}, nullInt{&v.PlanMitarbeiterFrau},
				nullInt{&v.IstMitarbeiterMann}, nullInt{&v.IstMitarbeiterFrau},
				nullInt{&v.IstMitarbeiterDivers},
				nullInt64Ptr{&v.KjpPositionID}, nullInt64Ptr{&v.LeiterID}, nullInt64Ptr{&v.VereinID},
				nullBool{&v.InternationaleJugendarbeit}, nullInt{&v.ThematischerSchwerpunkt}, nullInt{&v.Durchfuehrungsort},
			}
		},
		prepare: validateOnly[*domain.Veranstaltung],
	}
}

func newTeilnahmeTable(s *Store) *Table[domain.Teilnahme, int64] {
	return &Table[domain.Teilnahme, int64]{
		store:   s,
		name:    "teilnahme",
		key:     "id",
		autoKey: true,
		columns: []string{"personId", "veranstaltungsId", "funktionId", "beitrag", "ermaessigung"},
		keyOf:   func(t *domain.Teilnahme) int64 { return t.ID },
		setKey:  func(t *domain.Teilnahme, id int64) { t.ID = id },
		values: func(t *domain.Teilnahme) []any {
			return []any{t.PersonID, t.VeranstaltungID, t.FunktionID, t.Beitrag, t.Ermaessigung}
		},
		dest: func(t *domain.Teilnahme) []any {
			return []any{&t.ID, &t.PersonID, &t.VeranstaltungID, &t.FunktionID, nullFloat{&t.Beitrag}, nullFloat{&t.Ermaessigung}}
		},
		prepare: validateOnly[*domain.Teilnahme],
	}
}

func newReisekostenTable(s *Store) *Table[domain.Reisekosten, int64] {
	return &Table[domain.Reisekosten, int64]{
		store:   s,
		name:    "reisekosten",
		key:     "id",
		autoKey: true,
		columns: []string{
			"veranstaltungsId", "personId", "reiseVon", "kmFahrer",
			"kmPauschaleFahrer", "kmPauschaleMitfahrer", "kmVorOrt", "vorschuss",
		},
		keyOf:  func(r *domain.Reisekosten) int64 { return r.ID },
		setKey: func(r *domain.Reisekosten, id int64) { r.ID = id },
		values: func(r *domain.Reisekosten) []any {
			return []any{
				r.VeranstaltungID, r.PersonID, stringToNull(r.ReiseVon), r.KmFahrer,
				r.KmPauschaleFahrer, r.KmPauschaleMitfahrer, r.KmVorOrt, r.Vorschuss,
			}
		},
		dest: func(r *domain.Reisekosten) []any {
			return []any{
				&r.ID, &r.VeranstaltungID, &r.PersonID, nullString{&r.ReiseVon}, nullInt{&r.KmFahrer},
				nullFloat{&r.KmPauschaleFahrer}, nullFloat{&r.KmPauschaleMitfahrer}, nullInt{&r.KmVorOrt}, nullFloat{&r.Vorschuss},
			}
		},
		prepare: validateOnly[*domain.Reisekosten],
	}
}

func newMitfahrerTable(s *Store) *Table[domain.Mitfahrer, int64] {
	return &Table[domain.Mitfahrer, int64]{
		store:   s,
		name:    "mitfahrer",
		key:     "id",
		autoKey: true,
		columns: []string{"personId", "reisekostenId", "kmMitfahrer"},
		keyOf:   func(m *domain.Mitfahrer) int64 { return m.ID },
		setKey:  func(m *domain.Mitfahrer, id int64) { m.ID = id },
		values: func(m *domain.Mitfahrer) []any {
			return []any{m.PersonID, m.ReisekostenID, m.KmMitfahrer}
		},
		dest: func(m *domain.Mitfahrer) []any {
			return []any{&m.ID, &m.PersonID, &m.ReisekostenID, nullInt{&m.KmMitfahrer}}
		},
		prepare: validateOnly[*domain.Mitfahrer],
	}
}

// finanzenColumns lists the category columns followed by the four derived totals
var finanzenColumns = []string{
	"ausgabenVerpflegungPlan", "ausgabenVerpflegungIst",
	"ausgabenUnterkunftPlan", "ausgabenUnterkunftIst",
	"ausgabenFahrkostenPlan", "ausgabenFahrkostenIst",
	"ausgabenMaterialPlan", "ausgabenMaterialIst",
	"ausgabenHonorarkostenPlan", "ausgabenHonorarkostenIst",
	"ausgabenMietePlan", "ausgabenMieteIst",
	"ausgabenSonstigeKostenPlan", "ausgabenSonstigeKostenIst",
	"einnahmenTeilnehmerBeitraegePlan", "einnahmenTeilnehmerBeitraegeIst",
	"einnahmenSpendePlan", "einnahmenSpendeIst",
	"einnahmenPfandPlan", "einnahmenPfandIst",
	"einnahmenSonstigeEinnahmenPlan", "einnahmenSonstigeEinnahmenIst",
	"einnahmenEigenleistungPlan", "einnahmenEigenleistungIst",
	"einnahmenZuschussKJPPlan", "einnahmenZuschussKJPIst",
	"einnahmenSonstigerZuschussPlan", "einnahmenSonstigerZuschussIst",
	"gesamtKostenPlan", "gesamtKostenIst",
	"gesamtEinnahmenPlan", "gesamtEinnahmenIst",
}

// finanzenFields returns pointers to the Finanzen amounts in finanzenColumns order
func finanzenFields(f *domain.Finanzen) []*float64 {
	return []*float64{
		&f.AusgabenVerpflegungPlan, &f.AusgabenVerpflegungIst,
		&f.AusgabenUnterkunftPlan, &f.AusgabenUnterkunftIst,
		&f.AusgabenFahrkostenPlan, &f.AusgabenFahrkostenIst,
		&f.AusgabenMaterialPlan, &f.AusgabenMaterialIst,
		&f.AusgabenHonorarkostenPlan, &f.AusgabenHonorarkostenIst,
		&f.AusgabenMietePlan, &f.AusgabenMieteIst,
		&f.AusgabenSonstigeKostenPlan, &f.AusgabenSonstigeKostenIst,
		&f.EinnahmenTeilnehmerBeitraegePlan, &f.EinnahmenTeilnehmerBeitraegeIst,
		&f.EinnahmenSpendePlan, &f.EinnahmenSpendeIst,
		&f.EinnahmenPfandPlan, &f.EinnahmenPfandIst,
		&f.EinnahmenSonstigeEinnahmenPlan, &f.EinnahmenSonstigeEinnahmenIst,
		&f.EinnahmenEigenleistungPlan, &f.EinnahmenEigenleistungIst,
		&f.EinnahmenZuschussKJPPlan, &f.EinnahmenZuschussKJPIst,
		&f.EinnahmenSonstigerZuschussPlan, &f.EinnahmenSonstigerZuschussIst,
		&f.GesamtKostenPlan, &f.GesamtKostenIst,
		&f.GesamtEinnahmenPlan, &f.GesamtEinnahmenIst,
	}
}

func newFinanzenTable(s *Store) *Table[domain.Finanzen, int64] {
	return &Table[domain.Finanzen, int64]{
		store:   s,
		name:    "finanzen",
		key:     "id",
		columns: finanzenColumns,
		keyOf:   func(f *domain.Finanzen) int64 { return f.VeranstaltungID },
		values: func(f *domain.Finanzen) []any {
			fields := finanzenFields(f)
			out := make([]any, len(fields))
			for i, p := range fields {
				out[i] = *p
			}
			return out
		},
		dest: func(f *domain.Finanzen) []any {
			fields := finanzenFields(f)
			out := make([]any, 0, len(fields)+1)
			out = append(out, &f.VeranstaltungID)
			for _, p := range fields {
				out = append(out, nullFloat{p})
			}
			return out
		},
		prepare: func(f *domain.Finanzen, _ time.Time) error {
			if err := f.Validate(); err != nil {
				return err
			}
			f.Derive()
			return nil
		},
	}
}
