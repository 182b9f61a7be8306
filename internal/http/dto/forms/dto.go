// Package forms define los contratos wire de los formularios públicos y del
// dashboard de métricas.
package forms

type ContactRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Mobile  *string `json:"mobile"`
	Address *string `json:"address"`
	Note    *string `json:"note"`
}

type DonationRequest struct {
	Name         string   `json:"name"`
	Email        *string  `json:"email"`
	Mobile       *string  `json:"mobile"`
	State        *string  `json:"state"`
	Address      *string  `json:"address"`
	Amount       *float64 `json:"amount"`
	AdharCardNo  *string  `json:"adharCardNo"`
	PanCardNo    *string  `json:"panCardNo"`
	AdharFileURL *string  `json:"adharFileUrl"`
	PanFileURL   *string  `json:"panFileUrl"`
}

type VolunteerRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email"`
	Mobile  *string `json:"mobile"`
	Address *string `json:"address"`
	Note    *string `json:"note"`
}

type SubmitResponse struct {
	ID string `json:"id"`
}

// MetricsResponse alimenta el dashboard del panel de administración.
// Con range=1 la serie es horaria; si no, diaria.
type MetricsResponse struct {
	RangeDays   int            `json:"rangeDays"`
	Granularity string         `json:"granularity"` // "daily" | "hourly"
	Totals      MetricsTotals  `json:"totals"`
	Daily       []DailyMetric  `json:"daily"`
	VisitPages  map[string]int `json:"visitPages"`
}

type MetricsTotals struct {
	Contacts       int     `json:"contacts"`
	Donations      int     `json:"donations"`
	Volunteers     int     `json:"volunteers"`
	Visits         int     `json:"visits"`
	DonationAmount float64 `json:"donationAmount"`
}

type DailyMetric struct {
	Date       string  `json:"date"` // YYYY-MM-DD, o YYYY-MM-DDTHH:00 en serie horaria
	Contacts   int     `json:"contacts"`
	Donations  int     `json:"donations"`
	Volunteers int     `json:"volunteers"`
	Visits     int     `json:"visits"`
	Amount     float64 `json:"amount"`
}
