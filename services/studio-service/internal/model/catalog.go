package model

// Service is one entry of the studio's static service catalog.
type Service struct {
	Code     string  `json:"code"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Duration string  `json:"duration"`
	// Bookable services appear on the public booking form. Touch-ups are only
	// recorded as treatments.
	Bookable bool `json:"bookable"`
}

var catalog = []Service{
	{Code: "microblading", Name: "Microblading", Price: 350, Duration: "2-3 hours", Bookable: true},
	{Code: "nanoblading", Name: "Nanoblading", Price: 400, Duration: "2-3 hours", Bookable: true},
	{Code: "lip-blushing", Name: "Lip Blushing", Price: 350, Duration: "2-3 hours", Bookable: true},
	{Code: "lash-liner", Name: "Lash Liner", Price: 250, Duration: "1.5-2 hours", Bookable: true},
	{Code: "brow-lamination", Name: "Brow Lamination", Price: 80, Duration: "45-60 mins", Bookable: true},
	{Code: "consultation", Name: "Free Consultation", Price: 0, Duration: "30 mins", Bookable: true},
	{Code: "touch-up", Name: "Touch Up", Price: 0, Duration: "1 hour"},
}

// Services returns a copy of the catalog in display order.
func Services() []Service {
	out := make([]Service, len(catalog))
	copy(out, catalog)
	return out
}

func LookupService(code string) (Service, bool) {
	for _, s := range catalog {
		if s.Code == code {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceName resolves a code to its display name, falling back to the raw code.
func ServiceName(code string) string {
	if s, ok := LookupService(code); ok {
		return s.Name
	}
	return code
}
