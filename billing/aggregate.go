package billing

// Item is an order line paired with the parameters it is billed with.
type Item struct {
	Line   Line
	Params Params
}

type Totals struct {
	TotalBox        float64 `json:"totalBox"`
	TotalBillAmount float64 `json:"totalBillAmount"`
	TotalCashAmount float64 `json:"totalCashAmount"`
}

// FinalTotal is bill plus cash.
func (t Totals) FinalTotal() float64 {
	return t.TotalBillAmount + t.TotalCashAmount
}

func (t Totals) Add(o Totals) Totals {
	return Totals{
		TotalBox:        t.TotalBox + o.TotalBox,
		TotalBillAmount: t.TotalBillAmount + o.TotalBillAmount,
		TotalCashAmount: t.TotalCashAmount + o.TotalCashAmount,
	}
}

// CompanyTotals folds the orders of one company.
func CompanyTotals(items []Item) Totals {
	var t Totals
	for _, it := range items {
		t = t.Add(Totals{
			TotalBox:        it.Line.BoxNumber,
			TotalBillAmount: BillAmount(it.Line, it.Params),
			TotalCashAmount: CashAmount(it.Line, it.Params),
		})
	}
	return t
}

// GrandTotals folds per-company totals across all of a customer's companies.
func GrandTotals(companies []Totals) Totals {
	var t Totals
	for _, c := range companies {
		t = t.Add(c)
	}
	return t
}

// GroupBy buckets items by key. Keys are returned in first-seen order.
func GroupBy[T any](items []T, key func(T) string) ([]string, map[string][]T) {
	var keys []string
	groups := make(map[string][]T)
	for _, it := range items {
		k := key(it)
		if _, ok := groups[k]; !ok {
			keys = append(keys, k)
		}
		groups[k] = append(groups[k], it)
	}
	return keys, groups
}
