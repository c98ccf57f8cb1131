package report

type RangeQuery struct {
	From string `form:"from"`
	To   string `form:"to"`
}

type BucketResponse struct {
	Name    string  `json:"name"`
	Revenue float64 `json:"revenue"`
	Pieces  int     `json:"pieces"`
}

type DayResponse struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
}

type SummaryResponse struct {
	From            string           `json:"from"`
	To              string           `json:"to"`
	Revenue         float64          `json:"revenue"`
	Orders          int              `json:"orders"`
	Pieces          int              `json:"pieces"`
	AverageTicket   float64          `json:"average_ticket"`
	ByCollection    []BucketResponse `json:"by_collection"`
	ByPaymentMethod []BucketResponse `json:"by_payment_method"`
	ByDay           []DayResponse    `json:"by_day"`
}
