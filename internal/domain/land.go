package domain

// Land is a country, keyed by its code (e.g. "DE")
type Land struct {
	Code   string `json:"laenderCode" db:"laenderCode" validate:"required"`
	Name   string `json:"land" db:"land" validate:"required"`
	Flagge []byte `json:"flagge,omitempty" db:"flagge"`
}

// Validate checks the required fields
func (l *Land) Validate() error {
	return validateEntity("land", l)
}

// KjpPosition is a funding category of the youth plan (Kinder- und Jugendplan)
type KjpPosition struct {
	ID       int64  `json:"id" db:"id"`
	Kurzname string `json:"kurzname" db:"kurzname" validate:"required"`
	Name     string `json:"name" db:"name" validate:"required"`
}

// Validate checks the required fields
func (k *KjpPosition) Validate() error {
	return validateEntity("kjpPosition", k)
}
