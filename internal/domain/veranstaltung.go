package domain

// Veranstaltung is an event or camp organised by a club
type Veranstaltung struct {
	ID                int64  `json:"id" db:"id"`
	Aktiv             bool   `json:"aktiv" db:"aktiv"`
	Titel             string `json:"titel,omitempty" db:"titel"`
	ArtDerUnterkunft  string `json:"artDerUnterkunft,omitempty" db:"artDerUnterkunft"`
	ArtDerVerpflegung string `json:"artDerVerpflegung,omitempty" db:"artDerVerpflegung"`
	PLZ               string `json:"plz,omitempty" db:"plz"`
	Ort               string `json:"ort,omitempty" db:"ort"`
	LaenderCode       string `json:"laenderCode,omitempty" db:"laenderCode"`
	Beginn            string `json:"beginn,omitempty" db:"beginn"`
	Ende              string `json:"ende,omitempty" db:"ende"`

	// Planned (Plan) and actual (Ist) headcounts of funded participants and staff
	PlanMann             int `json:"planMann" db:"planMann"`
	PlanFrau             int `json:"planFrau" db:"planFrau"`
	IstMann              int `json:"istMann" db:"istMann"`
	IstFrau              int `json:"istFrau" db:"istFrau"`
	PlanMitarbeiterMann  int `json:"planMitarbeiterMann" db:"planMitarbeiterMann"`
	PlanMitarbeiterFrau  int `json:"planMitarbeiterFrau" db:"planMitarbeiterFrau"`
	IstMitarbeiterMann   int `json:"istMitarbeiterMann" db:"istMitarbeiterMann"`
	IstMitarbeiterFrau   int `json:"istMitarbeiterFrau" db:"istMitarbeiterFrau"`
	IstMitarbeiterDivers int `json:"istMitarbeiterDivers" db:"istMitarbeiterDivers"`

	KjpPositionID *int64 `json:"kjpPositionId,omitempty" db:"kjpPositionId"`
	LeiterID      *int64 `json:"leiterId,omitempty" db:"leiterId"`
	VereinID      *int64 `json:"vereinId,omitempty" db:"vereinId"`

	InternationaleJugendarbeit bool `json:"internationaleJugendarbeit" db:"internationaleJugendarbeit"`
	ThematischerSchwerpunkt    int  `json:"thematischerSchwerpunkt" db:"thematischerSchwerpunkt"`
	Durchfuehrungsort          int  `json:"durchfuehrungsort" db:"durchfuehrungsort"`
}

// Validate accepts every event; all columns are optional and the references
// are checked by the schema
func (v *Veranstaltung) Validate() error {
	return nil
}

// Teilnahme is a person's participation in an event, in a role
type Teilnahme struct {
	ID              int64   `json:"id" db:"id"`
	PersonID        int64   `json:"personId" db:"personId" validate:"reference"`
	VeranstaltungID int64   `json:"veranstaltungsId" db:"veranstaltungsId" validate:"reference"`
	FunktionID      int64   `json:"funktionId" db:"funktionId" validate:"reference"`
	Beitrag         float64 `json:"beitrag" db:"beitrag"`
	Ermaessigung    float64 `json:"ermaessigung" db:"ermaessigung"`
}

// Validate checks the required references
func (t *Teilnahme) Validate() error {
	return validateEntity("teilnahme", t)
}
