package billing

import (
	"encoding/json"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBillAmount_Example(t *testing.T) {
	line := Line{Size: "600x600", BoxNumber: 10}
	p := Params{Sqft: Float(27.55), BillRate: Float(50), Insu: Float(0.5), Tax: Float(18)}

	// base 13775, insurance 68.875, subtotal 13843.875, tax 2491.8975
	assert.InDelta(t, 16335.7725, BillAmount(line, p), 1e-9)
}

func TestCashAmount_PerBoxSize(t *testing.T) {
	line := Line{Size: "12x18", BoxNumber: 20}
	p := Params{Rate: Float(60), BillRate: Float(40)}

	assert.Equal(t, 20.0, CashRate(p))
	assert.Equal(t, 400.0, CashAmount(line, p))
}

func TestPerBoxSizeIgnoresSqft(t *testing.T) {
	line := Line{Size: PerBoxSize, BoxNumber: 7}
	base := Params{Rate: Float(90), BillRate: Float(40), Insu: Float(1), Tax: Float(18)}

	for _, sqft := range SqftChoices {
		p := base.Merge(Params{Sqft: Float(sqft)})
		assert.Equal(t, 1.0, SqftFactor(line, p))
		assert.InDelta(t, 7*40*1.01*1.18, BillAmount(line, p), 1e-9)
		assert.InDelta(t, 7*50.0, CashAmount(line, p), 1e-9)
	}
}

func TestBillAmountFormula(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	sizes := []string{"16x16", "600x600", "600x1200", "800x3000"}

	for i := 0; i < 500; i++ {
		line := Line{Size: sizes[r.Intn(len(sizes))], BoxNumber: float64(r.Intn(500))}
		p := Params{
			Sqft:     Float(SqftChoices[r.Intn(len(SqftChoices))]),
			Rate:     Float(r.Float64() * 200),
			BillRate: Float(r.Float64() * 200),
			Insu:     Float(InsuChoices[r.Intn(len(InsuChoices))]),
			Tax:      Float(float64(r.Intn(30))),
		}
		want := line.BoxNumber * *p.Sqft * *p.BillRate * (1 + *p.Insu/100) * (1 + *p.Tax/100)
		got := BillAmount(line, p)
		assert.InDelta(t, want, got, 1e-9*math.Max(1, math.Abs(want)))
	}
}

func TestCashRate(t *testing.T) {
	tests := []struct {
		name     string
		rate     *float64
		billRate *float64
		want     float64
	}{
		{"positive gap", Float(60), Float(40), 20},
		{"negative gap", Float(30), Float(45.5), -15.5},
		{"missing rate", nil, Float(10), -10},
		{"both missing", nil, nil, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CashRate(Params{Rate: tt.rate, BillRate: tt.billRate}))
		})
	}
}

func TestMissingParamsCountAsZero(t *testing.T) {
	line := Line{Size: "600x600", BoxNumber: 10}

	f := Compute(line, Params{})
	assert.Equal(t, Figures{}, f)

	f = Compute(line, Params{Sqft: Float(math.NaN()), BillRate: Float(10)})
	assert.Equal(t, 0.0, f.BillAmount)
}

func TestCompute(t *testing.T) {
	line := Line{Size: "600x1200", BoxNumber: 4}
	p := Params{Sqft: Float(15.5), Rate: Float(80), BillRate: Float(60), Insu: Float(0), Tax: Float(0)}

	f := Compute(line, p)
	assert.Equal(t, 15.5, f.SqftFactor)
	assert.InDelta(t, 4*15.5*60, f.BillAmount, 1e-9)
	assert.Equal(t, 20.0, f.CashRate)
	assert.InDelta(t, 4*15.5*20, f.CashAmount, 1e-9)
	assert.InDelta(t, f.BillAmount+f.CashAmount, f.TotalAmount, 1e-9)
}

func TestWithDefaults(t *testing.T) {
	p := Params{Rate: Float(70)}.WithDefaults()

	require.NotNil(t, p.Sqft)
	assert.Equal(t, 27.55, *p.Sqft)
	assert.Equal(t, 70.0, *p.Rate)
	assert.Equal(t, 0.0, *p.BillRate)
	assert.Equal(t, 0.5, *p.Insu)
	assert.Equal(t, 18.0, *p.Tax)
}

func TestMerge(t *testing.T) {
	stored := Params{Sqft: Float(8.67), Rate: Float(50), Tax: Float(12)}
	merged := stored.Merge(Params{Rate: Float(55), Insu: Float(1)})

	assert.Equal(t, 8.67, *merged.Sqft)
	assert.Equal(t, 55.0, *merged.Rate)
	assert.Nil(t, merged.BillRate)
	assert.Equal(t, 1.0, *merged.Insu)
	assert.Equal(t, 12.0, *merged.Tax)
	assert.Equal(t, 50.0, *stored.Rate, "merge must not mutate the receiver")
}

func TestParamsUnmarshalJSON(t *testing.T) {
	var p Params
	err := json.Unmarshal([]byte(`{"sqft":"27.55","rate":"abc","billRate":42,"insu":null,"tax":""}`), &p)
	require.NoError(t, err)

	assert.Equal(t, 27.55, *p.Sqft)
	assert.Equal(t, 0.0, *p.Rate)
	assert.Equal(t, 42.0, *p.BillRate)
	assert.Nil(t, p.Insu)
	assert.Equal(t, 0.0, *p.Tax)
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   any
		want float64
	}{
		{nil, 0},
		{"", 0},
		{" 12.5 ", 12.5},
		{"NaN", 0},
		{"x", 0},
		{3, 3},
		{int64(4), 4},
		{2.25, 2.25},
		{json.Number("7"), 7},
		{true, 1},
		{[]int{1}, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.in), "Number(%#v)", tt.in)
	}
}
