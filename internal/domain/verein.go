package domain

// Verein is a club of the association
type Verein struct {
	ID       int64  `json:"id" db:"id"`
	Name     string `json:"name" db:"name" validate:"required"`
	Kurz     string `json:"kurz,omitempty" db:"kurz"`
	Bezirk   string `json:"bezirk,omitempty" db:"bezirk"`
	Strasse  string `json:"strasse,omitempty" db:"strasse"`
	PLZ      string `json:"plz,omitempty" db:"plz"`
	Ort      string `json:"ort,omitempty" db:"ort"`
	Telefon  string `json:"telefon,omitempty" db:"telefon"`
	Homepage string `json:"homepage,omitempty" db:"homepage"`

	// KZ is the club registration code issued by the federation (LSB)
	KZ string `json:"kz,omitempty" db:"kz"`

	Bank         string `json:"bank,omitempty" db:"bank"`
	Kontoinhaber string `json:"kontoinhaber,omitempty" db:"kontoinhaber"`
	IBAN         string `json:"iban,omitempty" db:"iban"`
	BIC          string `json:"bic,omitempty" db:"bic"`
	Rechtsform   string `json:"rechtsform,omitempty" db:"rechtsform"`
}

// Validate checks the required fields
func (v *Verein) Validate() error {
	return validateEntity("verein", v)
}
