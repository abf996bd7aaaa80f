package domain

// Mitglied is a club membership: a person in a club, optionally holding a role.
//
// VereinID and FunktionID are pointers because deleting the referenced club or
// role clears them in the store. A save still requires both PersonID and VereinID.
type Mitglied struct {
	ID         int64  `json:"id" db:"id"`
	PersonID   *int64 `json:"personenId" db:"personId" validate:"reference"`
	VereinID   *int64 `json:"vereinId" db:"vereinId" validate:"reference"`
	FunktionID *int64 `json:"funktionId,omitempty" db:"funktionId"`
}

// NewMitglied creates an unsaved membership; funktionID 0 means no role
func NewMitglied(personID, vereinID, funktionID int64) *Mitglied {
	m := &Mitglied{PersonID: &personID, VereinID: &vereinID}
	if funktionID != 0 {
		m.FunktionID = &funktionID
	}
	return m
}

// Validate checks the required references
func (m *Mitglied) Validate() error {
	return validateEntity("mitglied", m)
}

// MemberRow is one line of the membership roster
type MemberRow struct {
	MitgliedID int64  `json:"mitgliedId"`
	PersonID   int64  `json:"personId"`
	NameGesamt string `json:"nameGesamt"`
	Status     bool   `json:"status"`
	Verein     string `json:"verein,omitempty"`
	Funktion   string `json:"funktion,omitempty"`
}
