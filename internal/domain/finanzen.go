package domain

// Finanzen is the budget of one Veranstaltung: planned (Plan) and actual (Ist) amounts
// per expense and income category. It shares the key of its event and is deleted with it.
type Finanzen struct {
	VeranstaltungID int64 `json:"id" db:"id" validate:"reference"`

	AusgabenVerpflegungPlan    float64 `json:"ausgabenVerpflegungPlan" db:"ausgabenVerpflegungPlan"`
	AusgabenVerpflegungIst     float64 `json:"ausgabenVerpflegungIst" db:"ausgabenVerpflegungIst"`
	AusgabenUnterkunftPlan     float64 `json:"ausgabenUnterkunftPlan" db:"ausgabenUnterkunftPlan"`
	AusgabenUnterkunftIst      float64 `json:"ausgabenUnterkunftIst" db:"ausgabenUnterkunftIst"`
	AusgabenFahrkostenPlan     float64 `json:"ausgabenFahrkostenPlan" db:"ausgabenFahrkostenPlan"`
	AusgabenFahrkostenIst      float64 `json:"ausgabenFahrkostenIst" db:"ausgabenFahrkostenIst"`
	AusgabenMaterialPlan       float64 `json:"ausgabenMaterialPlan" db:"ausgabenMaterialPlan"`
	AusgabenMaterialIst        float64 `json:"ausgabenMaterialIst" db:"ausgabenMaterialIst"`
	AusgabenHonorarkostenPlan  float64 `json:"ausgabenHonorarkostenPlan" db:"ausgabenHonorarkostenPlan"`
	AusgabenHonorarkostenIst   float64 `json:"ausgabenHonorarkostenIst" db:"ausgabenHonorarkostenIst"`
	AusgabenMietePlan          float64 `json:"ausgabenMietePlan" db:"ausgabenMietePlan"`
	AusgabenMieteIst           float64 `json:"ausgabenMieteIst" db:"ausgabenMieteIst"`
	AusgabenSonstigeKostenPlan float64 `json:"ausgabenSonstigeKostenPlan" db:"ausgabenSonstigeKostenPlan"`
	AusgabenSonstigeKostenIst  float64 `json:"ausgabenSonstigeKostenIst" db:"ausgabenSonstigeKostenIst"`

	EinnahmenTeilnehmerBeitraegePlan float64 `json:"einnahmenTeilnehmerBeitraegePlan" db:"einnahmenTeilnehmerBeitraegePlan"`
	EinnahmenTeilnehmerBeitraegeIst  float64 `json:"einnahmenTeilnehmerBeitraegeIst" db:"einnahmenTeilnehmerBeitraegeIst"`
	EinnahmenSpendePlan              float64 `json:"einnahmenSpendePlan" db:"einnahmenSpendePlan"`
	EinnahmenSpendeIst               float64 `json:"einnahmenSpendeIst" db:"einnahmenSpendeIst"`
	EinnahmenPfandPlan               float64 `json:"einnahmenPfandPlan" db:"einnahmenPfandPlan"`
	EinnahmenPfandIst                float64 `json:"einnahmenPfandIst" db:"einnahmenPfandIst"`
	EinnahmenSonstigeEinnahmenPlan   float64 `json:"einnahmenSonstigeEinnahmenPlan" db:"einnahmenSonstigeEinnahmenPlan"`
	EinnahmenSonstigeEinnahmenIst    float64 `json:"einnahmenSonstigeEinnahmenIst" db:"einnahmenSonstigeEinnahmenIst"`
	EinnahmenEigenleistungPlan       float64 `json:"einnahmenEigenleistungPlan" db:"einnahmenEigenleistungPlan"`
	EinnahmenEigenleistungIst        float64 `json:"einnahmenEigenleistungIst" db:"einnahmenEigenleistungIst"`
	EinnahmenZuschussKJPPlan         float64 `json:"einnahmenZuschussKJPPlan" db:"einnahmenZuschussKJPPlan"`
	EinnahmenZuschussKJPIst          float64 `json:"einnahmenZuschussKJPIst" db:"einnahmenZuschussKJPIst"`
	EinnahmenSonstigerZuschussPlan   float64 `json:"einnahmenSonstigerZuschussPlan" db:"einnahmenSonstigerZuschussPlan"`
	EinnahmenSonstigerZuschussIst    float64 `json:"einnahmenSonstigerZuschussIst" db:"einnahmenSonstigerZuschussIst"`

	GesamtKostenPlan    float64 `json:"gesamtKostenPlan" db:"gesamtKostenPlan"`
	GesamtKostenIst     float64 `json:"gesamtKostenIst" db:"gesamtKostenIst"`
	GesamtEinnahmenPlan float64 `json:"gesamtEinnahmenPlan" db:"gesamtEinnahmenPlan"`
	GesamtEinnahmenIst  float64 `json:"gesamtEinnahmenIst" db:"gesamtEinnahmenIst"`
}

// Validate checks the event reference
func (f *Finanzen) Validate() error {
	return validateEntity("finanzen", f)
}

// Derive recomputes the four totals from the category amounts
func (f *Finanzen) Derive() {
	f.GesamtKostenPlan = f.AusgabenVerpflegungPlan + f.AusgabenUnterkunftPlan + f.AusgabenFahrkostenPlan +
		f.AusgabenMaterialPlan + f.AusgabenHonorarkostenPlan + f.AusgabenMietePlan + f.AusgabenSonstigeKostenPlan
	f.GesamtKostenIst = f.AusgabenVerpflegungIst + f.AusgabenUnterkunftIst + f.AusgabenFahrkostenIst +
		f.AusgabenMaterialIst + f.AusgabenHonorarkostenIst + f.AusgabenMieteIst + f.AusgabenSonstigeKostenIst

	f.GesamtEinnahmenPlan = f.EinnahmenTeilnehmerBeitraegePlan + f.EinnahmenSpendePlan + f.EinnahmenPfandPlan +
		f.EinnahmenSonstigeEinnahmenPlan + f.EinnahmenEigenleistungPlan + f.EinnahmenZuschussKJPPlan +
		f.EinnahmenSonstigerZuschussPlan
	f.GesamtEinnahmenIst = f.EinnahmenTeilnehmerBeitraegeIst + f.EinnahmenSpendeIst + f.EinnahmenPfandIst +
		f.EinnahmenSonstigeEinnahmenIst + f.EinnahmenEigenleistungIst + f.EinnahmenZuschussKJPIst +
		f.EinnahmenSonstigerZuschussIst
}

// SaldoPlan returns planned income minus planned cost
func (f *Finanzen) SaldoPlan() float64 {
	return f.GesamtEinnahmenPlan - f.GesamtKostenPlan
}

// SaldoIst returns actual income minus actual cost
func (f *Finanzen) SaldoIst() float64 {
	return f.GesamtEinnahmenIst - f.GesamtKostenIst
}
