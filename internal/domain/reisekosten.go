package domain

// Reisekosten is a travel expense claim of a person for an event
type Reisekosten struct {
	ID                   int64   `json:"id" db:"id"`
	VeranstaltungID      int64   `json:"veranstaltungsId" db:"veranstaltungsId" validate:"reference"`
	PersonID             int64   `json:"personId" db:"personId" validate:"reference"`
	ReiseVon             string  `json:"reiseVon,omitempty" db:"reiseVon"`
	KmFahrer             int     `json:"kmFahrer" db:"kmFahrer"`
	KmPauschaleFahrer    float64 `json:"kmPauschaleFahrer" db:"kmPauschaleFahrer"`
	KmPauschaleMitfahrer float64 `json:"kmPauschaleMitfahrer" db:"kmPauschaleMitfahrer"`
	KmVorOrt             int     `json:"kmVorOrt" db:"kmVorOrt"`
	Vorschuss            float64 `json:"vorschuss" db:"vorschuss"`
}

// Validate checks the required references
func (r *Reisekosten) Validate() error {
	return validateEntity("reisekosten", r)
}

// Mitfahrer is a person riding along on someone's travel expense claim
type Mitfahrer struct {
	ID            int64 `json:"id" db:"id"`
	PersonID      int64 `json:"personId" db:"personId" validate:"reference"`
	ReisekostenID int64 `json:"reisekostenId" db:"reisekostenId" validate:"reference"`
	KmMitfahrer   int   `json:"kmMitfahrer" db:"kmMitfahrer"`
}

// Validate checks the required references
func (m *Mitfahrer) Validate() error {
	return validateEntity("mitfahrer", m)
}
