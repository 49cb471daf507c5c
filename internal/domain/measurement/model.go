package measurement

// Kind selects which measurement series an entry belongs to.
type Kind string

const (
	KindWeight  Kind = "weight"
	KindBodyFat Kind = "bodyfat"
)

func (k Kind) Valid() bool {
	return k == KindWeight || k == KindBodyFat
}

// Entry is one dated reading. Date is a plain YYYY-MM-DD day; the series
// keeps at most one entry per day.
type Entry struct {
	ID     int     `json:"id"`
	UserID int     `json:"-"`
	Kind   Kind    `json:"-"`
	Date   string  `json:"date"`
	Value  float64 `json:"value"`
}
