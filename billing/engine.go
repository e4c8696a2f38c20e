package billing

// PerBoxSize is billed per box: its sqft factor is always 1.
const PerBoxSize = "12x18"

// Line is the static part of an order the engine needs.
type Line struct {
	Size      string  `json:"size"`
	BoxNumber float64 `json:"boxNumber"`
}

// Figures are the derived money amounts of one order.
type Figures struct {
	SqftFactor  float64 `json:"sqftFactor"`
	BillAmount  float64 `json:"billAmount"`
	CashRate    float64 `json:"cashRate"`
	CashAmount  float64 `json:"cashAmount"`
	TotalAmount float64 `json:"totalAmount"`
}

func SqftFactor(l Line, p Params) float64 {
	if l.Size == PerBoxSize {
		return 1
	}
	return value(p.Sqft)
}

// BillAmount is box * factor * billRate, plus insurance on that base, plus
// tax on base and insurance together.
func BillAmount(l Line, p Params) float64 {
	base := l.BoxNumber * SqftFactor(l, p) * value(p.BillRate)
	insu := base * (value(p.Insu) / 100)
	subtotal := base + insu
	tax := subtotal * (value(p.Tax) / 100)
	return base + insu + tax
}

// CashRate is the gap between market and billed rate. It may be negative.
func CashRate(p Params) float64 {
	return value(p.Rate) - value(p.BillRate)
}

func CashAmount(l Line, p Params) float64 {
	if l.Size == PerBoxSize {
		return l.BoxNumber * CashRate(p)
	}
	return l.BoxNumber * SqftFactor(l, p) * CashRate(p)
}

func Compute(l Line, p Params) Figures {
	bill := BillAmount(l, p)
	cash := CashAmount(l, p)
	return Figures{
		SqftFactor:  SqftFactor(l, p),
		BillAmount:  bill,
		CashRate:    CashRate(p),
		CashAmount:  cash,
		TotalAmount: bill + cash,
	}
}
