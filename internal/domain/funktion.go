package domain

// Funktion is a named role, held in a club (Mitglied) or during an event (Teilnahme)
type Funktion struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"required"`
}

// Validate checks the required fields
func (f *Funktion) Validate() error {
	return validateEntity("funktion", f)
}

// SeedFunktionen is inserted once into an empty funktion table
var SeedFunktionen = []string{
	"Vorsitzende(r)",
	"Geschäftsführer:in",
	"Schatzmeister:in",
	"Jugendwart:in",
	"Wanderwart:in",
	"Bootshauswart:in",
	"Schriftwart:in",
	"Sportwart:in",
}
