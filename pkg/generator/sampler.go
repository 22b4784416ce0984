// Package generator samples synthetic transactions with an injected fraud
// pattern: fraudulent rows get a heavier amount and a suspicious country pair.
package generator

import (
	"fmt"
	"math"
	"time"

	"github.com/dd0wney/cluso-fraudgen/pkg/dataset"
	"github.com/shopspring/decimal"
)

// minAmount replaces amounts that round to zero.
var minAmount = decimal.New(1, -2)

// Sampler draws transactions from a shared RNG.
type Sampler struct {
	rng  *RNG
	opts Options
}

// New creates a sampler. rng must not be nil.
func New(rng *RNG, opts Options) (*Sampler, error) {
	if rng == nil {
		return nil, paramError("New", "rng", nil, fmt.Errorf("%w: nil random source", ErrInvalidOptions))
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &Sampler{rng: rng, opts: opts}, nil
}

// Generate produces exactly m transactions in generation order using a fresh
// frequency state.
func (s *Sampler) Generate(pool []string, m int, fraudRatio float64) ([]dataset.Transaction, error) {
	return s.GenerateWithState(pool, m, fraudRatio, NewFrequencyState())
}

// GenerateWithState is Generate with a caller-owned frequency state, which is
// mutated in place. A nil state is replaced by a fresh one.
func (s *Sampler) GenerateWithState(pool []string, m int, fraudRatio float64, state *FrequencyState) ([]dataset.Transaction, error) {
	if m < 0 {
		return nil, paramError("Generate", "transactions", m, ErrInvalidParameter)
	}
	if math.IsNaN(fraudRatio) || fraudRatio < 0 || fraudRatio > 1 {
		return nil, paramError("Generate", "fraud_ratio", fraudRatio, ErrInvalidParameter)
	}
	// Drawing a destination distinct from the source never terminates below two accounts.
	if len(pool) < 2 {
		return nil, paramError("Generate", "pool", fmt.Sprintf("size %d", len(pool)), ErrPoolTooSmall)
	}
	if state == nil {
		state = NewFrequencyState()
	}

	txs := make([]dataset.Transaction, 0, m)
	for i := 0; i < m; i++ {
		txs = append(txs, s.sample(i, pool, fraudRatio, state))
	}
	return txs, nil
}

// sample draws one transaction. The draw order is fixed; changing it changes
// every dataset produced from a given seed.
func (s *Sampler) sample(i int, pool []string, fraudRatio float64, state *FrequencyState) dataset.Transaction {
	src := pool[s.rng.Index(len(pool))]
	dst := pool[s.rng.Index(len(pool))]
	for dst == src {
		dst = pool[s.rng.Index(len(pool))]
	}

	minutes := s.rng.IntRange(0, s.opts.SpanMinutes)
	ts := s.opts.Anchor.Add(time.Duration(minutes) * time.Minute)

	amount := s.rng.Exponential(s.opts.MeanAmount)
	srcCountry := s.opts.Countries[s.rng.Index(len(s.opts.Countries))]
	dstCountry := s.opts.Countries[s.rng.Index(len(s.opts.Countries))]

	isFraud := 0
	if s.rng.Bernoulli(fraudRatio) {
		isFraud = 1
		amount *= s.rng.Uniform(s.opts.MinMultiplier, s.opts.MaxMultiplier)
		pair := s.opts.SuspiciousPairs[s.rng.Index(len(s.opts.SuspiciousPairs))]
		srcCountry, dstCountry = pair.Source, pair.Destination
	}

	tx := dataset.Transaction{
		ID:                 fmt.Sprintf("T%06d", i),
		Source:             src,
		Destination:        dst,
		Timestamp:          ts,
		Amount:             roundAmount(amount),
		SourceCountry:      srcCountry,
		DestinationCountry: dstCountry,
		IsFraud:            isFraud,
	}
	tx.Frequency = state.Increment(src, tx.Date())
	return tx
}

// roundAmount rounds to cents, keeping the result strictly positive.
func roundAmount(v float64) decimal.Decimal {
	d := decimal.NewFromFloat(v).Round(2)
	if !d.IsPositive() {
		return minAmount
	}
	return d
}
