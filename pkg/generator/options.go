package generator

import (
	"fmt"
	"time"
)

// Defaults for a generation run.
const (
	DefaultAccounts     = 500
	DefaultTransactions = 5000
	DefaultFraudRatio   = 0.02

	// MinutesPerYear bounds the timestamp offset; the upper end is inclusive.
	MinutesPerYear = 525600

	DefaultMeanAmount    = 200.0
	DefaultMinMultiplier = 5.0
	DefaultMaxMultiplier = 20.0
)

// CountryPair is a (source country, destination country) corridor.
type CountryPair struct {
	Source      string `yaml:"source" validate:"required,len=2,uppercase"`
	Destination string `yaml:"destination" validate:"required,len=2,uppercase"`
}

func (p CountryPair) String() string {
	return p.Source + "->" + p.Destination
}

// DefaultCountries is the base country set for legitimate rows.
func DefaultCountries() []string {
	return []string{"US", "UK", "DE", "IN", "CN", "BR", "FR", "AU", "CA", "ZA"}
}

// DefaultSuspiciousPairs are the high-risk corridors stamped on fraudulent rows.
func DefaultSuspiciousPairs() []CountryPair {
	return []CountryPair{
		{Source: "NG", Destination: "US"},
		{Source: "RU", Destination: "CA"},
		{Source: "CN", Destination: "UK"},
		{Source: "BR", Destination: "AU"},
	}
}

// DefaultAnchor is the start of the one-year timestamp window.
func DefaultAnchor() time.Time {
	return time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)
}

// Options shape the distributions the sampler draws from.
type Options struct {
	Countries       []string
	SuspiciousPairs []CountryPair
	Anchor          time.Time
	SpanMinutes     int
	MeanAmount      float64
	MinMultiplier   float64
	MaxMultiplier   float64
}

// DefaultOptions returns the stock distributions.
func DefaultOptions() Options {
	return Options{
		Countries:       DefaultCountries(),
		SuspiciousPairs: DefaultSuspiciousPairs(),
		Anchor:          DefaultAnchor(),
		SpanMinutes:     MinutesPerYear,
		MeanAmount:      DefaultMeanAmount,
		MinMultiplier:   DefaultMinMultiplier,
		MaxMultiplier:   DefaultMaxMultiplier,
	}
}

func (o Options) validate() error {
	switch {
	case len(o.Countries) == 0:
		return paramError("New", "countries", nil, fmt.Errorf("%w: country set is empty", ErrInvalidOptions))
	case len(o.SuspiciousPairs) == 0:
		return paramError("New", "suspicious_pairs", nil, fmt.Errorf("%w: suspicious pair set is empty", ErrInvalidOptions))
	case o.SpanMinutes < 0:
		return paramError("New", "span_minutes", o.SpanMinutes, fmt.Errorf("%w: negative span", ErrInvalidOptions))
	case !(o.MeanAmount > 0):
		return paramError("New", "mean_amount", o.MeanAmount, fmt.Errorf("%w: mean must be positive", ErrInvalidOptions))
	case !(o.MinMultiplier > 0) || o.MinMultiplier > o.MaxMultiplier:
		return paramError("New", "multiplier", fmt.Sprintf("[%g, %g]", o.MinMultiplier, o.MaxMultiplier),
			fmt.Errorf("%w: multiplier range must be positive and ordered", ErrInvalidOptions))
	}
	return nil
}
