package domain

import "time"

// DateLayout is the fixed-width text format of date columns (geburtstag, statusDatum, beginn, ende)
const DateLayout = "2006-01-02"

// Person is a club member
type Person struct {
	ID              int64  `json:"id" db:"id"`
	Name            string `json:"name" db:"name" validate:"required"`
	Vorname         string `json:"vorname" db:"vorname"`
	Geburtstag      string `json:"geburtstag,omitempty" db:"geburtstag"`
	Sex             string `json:"sex,omitempty" db:"sex"`
	Strasse         string `json:"strasse,omitempty" db:"strasse"`
	PLZ             string `json:"plz,omitempty" db:"plz"`
	Ort             string `json:"ort,omitempty" db:"ort"`
	TelefonFestnetz string `json:"telefonFestnetz,omitempty" db:"telefonFestnetz"`
	TelefonMobil    string `json:"telefonMobil,omitempty" db:"telefonMobil"`
	Email           string `json:"email,omitempty" db:"email"`

	// NameGesamt is always Name + ", " + Vorname after a save
	NameGesamt string `json:"nameGesamt" db:"nameGesamt"`

	// Status is true for active members; StatusDatum is the date of the last status change
	Status      bool   `json:"status" db:"status"`
	StatusDatum string `json:"statusDatum" db:"statusDatum"`

	Bank string `json:"bank,omitempty" db:"bank"`
	IBAN string `json:"iban,omitempty" db:"iban"`
	BIC  string `json:"bic,omitempty" db:"bic"`
}

// NewPerson creates an unsaved person
func NewPerson(name, vorname string) *Person {
	return &Person{Name: name, Vorname: vorname, Status: true}
}

// FullName returns the sortable "name, vorname" form
func FullName(name, vorname string) string {
	return name + ", " + vorname
}

// Validate checks the required fields
func (p *Person) Validate() error {
	return validateEntity("person", p)
}

// Derive recomputes the fields a save always overwrites.
// Every save marks the person active as of now.
func (p *Person) Derive(now time.Time) {
	p.NameGesamt = FullName(p.Name, p.Vorname)
	p.SetStatus(true, now)
}

// SetStatus sets the status flag and stamps the change date
func (p *Person) SetStatus(active bool, now time.Time) {
	p.Status = active
	p.StatusDatum = now.Format(DateLayout)
}

// Birthday parses Geburtstag; ok is false when it is empty or malformed
func (p *Person) Birthday() (t time.Time, ok bool) {
	if p.Geburtstag == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, p.Geburtstag)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Age returns the age in whole years at the given date, or -1 if the birthday is unknown
func (p *Person) Age(at time.Time) int {
	born, ok := p.Birthday()
	if !ok {
		return -1
	}
	age := at.Year() - born.Year()
	if at.Month() < born.Month() || (at.Month() == born.Month() && at.Day() < born.Day()) {
		age--
	}
	return age
}
