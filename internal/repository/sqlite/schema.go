package sqlite

import (
	"context"
	"database/sql"
)

// MigrationV1 is the identifier of the initial KanuControl schema
const MigrationV1 = "KanuControl_DB_V1.0"

// schemaV1 creates every table of the store. Referencing columns are indexed.
const schemaV1 = `
CREATE TABLE land (
	laenderCode TEXT NOT NULL PRIMARY KEY,
	land TEXT NOT NULL,
	flagge BLOB
);

CREATE TABLE person (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL,
	vorname TEXT NOT NULL,
	geburtstag TEXT,
	sex TEXT,
	strasse TEXT,
	plz TEXT,
	ort TEXT,
	telefonFestnetz TEXT,
	telefonMobil TEXT,
	email TEXT,
	nameGesamt TEXT NOT NULL COLLATE LOCALIZED_NOCASE,
	status BOOLEAN NOT NULL DEFAULT 1,
	statusDatum TEXT NOT NULL,
	bank TEXT,
	iban TEXT,
	bic TEXT
);
CREATE INDEX person_on_nameGesamt ON person(nameGesamt);

CREATE TABLE verein (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL COLLATE LOCALIZED_NOCASE,
	kurz TEXT,
	bezirk TEXT,
	strasse TEXT,
	plz TEXT,
	ort TEXT,
	telefon TEXT,
	homepage TEXT,
	kz TEXT,
	bank TEXT,
	kontoinhaber TEXT,
	iban TEXT,
	bic TEXT,
	rechtsform TEXT
);

CREATE TABLE kjpPosition (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kurzname TEXT NOT NULL,
	name TEXT NOT NULL
);

CREATE TABLE funktion (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL
);

CREATE TABLE veranstaltung (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	aktiv BOOLEAN NOT NULL DEFAULT 0,
	titel TEXT,
	artDerUnterkunft TEXT,
	artDerVerpflegung TEXT,
	plz TEXT,
	ort TEXT,
	laenderCode TEXT REFERENCES land(laenderCode) ON DELETE RESTRICT,
	beginn TEXT,
	ende TEXT,
	planMann INTEGER,
	planFrau INTEGER,
	istMann INTEGER,
	istFrau INTEGER,
	planMitarbeiterMann INTEGER,
	planMitarbeiterFrau INTEGER,
	istMitarbeiterMann INTEGER,
	istMitarbeiterFrau INTEGER,
	istMitarbeiterDivers INTEGER,
	kjpPositionId INTEGER REFERENCES kjpPosition(id) ON DELETE RESTRICT,
	leiterId INTEGER REFERENCES person(id) ON DELETE RESTRICT,
	vereinId INTEGER REFERENCES verein(id) ON DELETE RESTRICT,
	internationaleJugendarbeit BOOLEAN NOT NULL DEFAULT 0,
	thematischerSchwerpunkt INTEGER,
	durchfuehrungsort INTEGER
);
CREATE INDEX veranstaltung_on_laenderCode ON veranstaltung(laenderCode);
CREATE INDEX veranstaltung_on_kjpPositionId ON veranstaltung(kjpPositionId);
CREATE INDEX veranstaltung_on_leiterId ON veranstaltung(leiterId);
CREATE INDEX veranstaltung_on_vereinId ON veranstaltung(vereinId);

CREATE TABLE finanzen (
	id INTEGER PRIMARY KEY REFERENCES veranstaltung(id) ON DELETE CASCADE,
	ausgabenVerpflegungPlan REAL,
	ausgabenVerpflegungIst REAL,
	ausgabenUnterkunftPlan REAL,
	ausgabenUnterkunftIst REAL,
	ausgabenFahrkostenPlan REAL,
	ausgabenFahrkostenIst REAL,
	ausgabenMaterialPlan REAL,
	ausgabenMaterialIst REAL,
	ausgabenHonorarkostenPlan REAL,
	ausgabenHonorarkostenIst REAL,
	ausgabenMietePlan REAL,
	ausgabenMieteIst REAL,
	ausgabenSonstigeKostenPlan REAL,
	ausgabenSonstigeKostenIst REAL,
	einnahmenTeilnehmerBeitraegePlan REAL,
	einnahmenTeilnehmerBeitraegeIst REAL,
	einnahmenSpendePlan REAL,
	einnahmenSpendeIst REAL,
	einnahmenPfandPlan REAL,
	einnahmenPfandIst REAL,
	einnahmenSonstigeEinnahmenPlan REAL,
	einnahmenSonstigeEinnahmenIst REAL,
	einnahmenEigenleistungPlan REAL,
	einnahmenEigenleistungIst REAL,
	einnahmenZuschussKJPPlan REAL,
	einnahmenZuschussKJPIst REAL,
	einnahmenSonstigerZuschussPlan REAL,
	einnahmenSonstigerZuschussIst REAL,
	gesamtKostenPlan REAL,
	gesamtKostenIst REAL,
	gesamtEinnahmenPlan REAL,
	gesamtEinnahmenIst REAL
);

CREATE TABLE reisekosten (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	veranstaltungsId INTEGER NOT NULL REFERENCES veranstaltung(id) ON DELETE RESTRICT,
	personId INTEGER NOT NULL REFERENCES person(id) ON DELETE CASCADE,
	reiseVon TEXT,
	kmFahrer INTEGER,
	kmPauschaleFahrer REAL,
	kmPauschaleMitfahrer REAL,
	kmVorOrt INTEGER,
	vorschuss REAL
);
CREATE INDEX reisekosten_on_veranstaltungsId ON reisekosten(veranstaltungsId);
CREATE INDEX reisekosten_on_personId ON reisekosten(personId);

CREATE TABLE mitfahrer (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	personId INTEGER NOT NULL REFERENCES person(id) ON DELETE CASCADE,
	reisekostenId INTEGER NOT NULL REFERENCES reisekosten(id) ON DELETE CASCADE,
	kmMitfahrer INTEGER
);
CREATE INDEX mitfahrer_on_personId ON mitfahrer(personId);
CREATE INDEX mitfahrer_on_reisekostenId ON mitfahrer(reisekostenId);

CREATE TABLE mitglied (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	personId INTEGER NOT NULL REFERENCES person(id) ON DELETE CASCADE,
	vereinId INTEGER REFERENCES verein(id) ON DELETE SET NULL,
	funktionId INTEGER REFERENCES funktion(id) ON DELETE SET NULL
);
CREATE INDEX mitglied_on_personId ON mitglied(personId);
CREATE INDEX mitglied_on_vereinId ON mitglied(vereinId);
CREATE INDEX mitglied_on_funktionId ON mitglied(funktionId);

CREATE TABLE teilnahme (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	personId INTEGER NOT NULL REFERENCES person(id) ON DELETE CASCADE,
	veranstaltungsId INTEGER NOT NULL REFERENCES veranstaltung(id) ON DELETE RESTRICT,
	funktionId INTEGER NOT NULL REFERENCES funktion(id) ON DELETE RESTRICT,
	beitrag REAL,
	ermaessigung REAL
);
CREATE INDEX teilnahme_on_personId ON teilnahme(personId);
CREATE INDEX teilnahme_on_veranstaltungsId ON teilnahme(veranstaltungsId);
CREATE INDEX teilnahme_on_funktionId ON teilnahme(funktionId);
`

func migrateV1(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, schemaV1)
	return err
}

// newMigrator returns the migrator holding every KanuControl schema step
func newMigrator() *Migrator {
	m := &Migrator{EraseOnSchemaChange: eraseOnSchemaChange}
	m.Register(MigrationV1, migrateV1)
	return m
}
