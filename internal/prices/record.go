package prices

import (
	"time"

	"github.com/shopspring/decimal"
)

// Record is one item's price data. It is implemented by LatestPrice and AveragePrice only.
type Record interface {
	ID() int
	HighPrice() int64
	LowPrice() int64
	// Margin is the high price minus the low price.
	Margin() decimal.Decimal
	// ROI is Margin as a percentage of the low price, rounded to two places.
	ROI() decimal.Decimal

	record()
}

// LatestPrice holds the most recent instant-buy (High) and instant-sell (Low)
// prices. A side with no recorded trade has a zero price and a zero time.
type LatestPrice struct {
	ItemID   int
	High     int64
	Low      int64
	HighTime time.Time
	LowTime  time.Time
}

// AveragePrice holds volume-weighted averages over Window.
type AveragePrice struct {
	ItemID     int
	High       int64
	Low        int64
	Window     Window
	HighVolume int64
	LowVolume  int64
	Timestamp  time.Time
}

var (
	_ Record = LatestPrice{}
	_ Record = AveragePrice{}
)

func (p LatestPrice) ID() int                 { return p.ItemID }
func (p LatestPrice) HighPrice() int64        { return p.High }
func (p LatestPrice) LowPrice() int64         { return p.Low }
func (p LatestPrice) Margin() decimal.Decimal { return margin(p.High, p.Low) }
func (p LatestPrice) ROI() decimal.Decimal    { return roi(p.High, p.Low) }
func (LatestPrice) record()                   {}

func (p AveragePrice) ID() int                 { return p.ItemID }
func (p AveragePrice) HighPrice() int64        { return p.High }
func (p AveragePrice) LowPrice() int64         { return p.Low }
func (p AveragePrice) Margin() decimal.Decimal { return margin(p.High, p.Low) }
func (p AveragePrice) ROI() decimal.Decimal    { return roi(p.High, p.Low) }
func (AveragePrice) record()                   {}

// Volume is the total traded quantity over the window.
func (p AveragePrice) Volume() int64 { return p.HighVolume + p.LowVolume }

func margin(high, low int64) decimal.Decimal {
	if high == 0 || low == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(high).Sub(decimal.NewFromInt(low))
}

func roi(high, low int64) decimal.Decimal {
	if high == 0 || low == 0 {
		return decimal.Zero
	}
	return margin(high, low).
		Div(decimal.NewFromInt(low)).
		Mul(decimal.NewFromInt(100)).
		Round(2)
}

func unixTime(sec *int64) time.Time {
	if sec == nil || *sec == 0 {
		return time.Time{}
	}
	return time.Unix(*sec, 0).UTC()
}

func value(v *int64) int64 {
	if v == nil {
		return 0
	}
	return *v
}
