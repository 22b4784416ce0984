package generator

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/dd0wney/cluso-fraudgen/pkg/accounts"
	"github.com/dd0wney/cluso-fraudgen/pkg/dataset"
)

func newTestSampler(t *testing.T, seed uint64) *Sampler {
	t.Helper()
	s, err := New(NewRNG(seed), DefaultOptions())
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return s
}

func testPool(t *testing.T, n int) []string {
	t.Helper()
	pool, err := accounts.Pool(n)
	if err != nil {
		t.Fatalf("Pool(%d) error: %v", n, err)
	}
	return pool
}

func TestGenerateTwoAccountExample(t *testing.T) {
	s := newTestSampler(t, DefaultSeed)
	txs, err := s.Generate([]string{"A00000", "A00001"}, 1, 0)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(txs) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txs))
	}

	tx := txs[0]
	parties := map[string]bool{tx.Source: true, tx.Destination: true}
	if !parties["A00000"] || !parties["A00001"] {
		t.Errorf("parties = (%s, %s), want both of A00000 and A00001", tx.Source, tx.Destination)
	}
	if tx.Frequency != 1 {
		t.Errorf("Frequency = %d, want 1", tx.Frequency)
	}
	if tx.IsFraud != 0 {
		t.Errorf("IsFraud = %d with fraud ratio 0", tx.IsFraud)
	}
	if tx.ID != "T000000" {
		t.Errorf("ID = %q, want T000000", tx.ID)
	}
}

func TestGeneratePoolTooSmall(t *testing.T) {
	s := newTestSampler(t, DefaultSeed)

	for _, n := range []int{0, 1} {
		_, err := s.Generate(testPool(t, n), DefaultTransactions, DefaultFraudRatio)
		if !errors.Is(err, ErrPoolTooSmall) {
			t.Errorf("pool of %d: error = %v, want ErrPoolTooSmall", n, err)
		}
		if err != nil && !strings.Contains(err.Error(), "account pool too small") {
			t.Errorf("pool of %d: message %q does not mention the small pool", n, err.Error())
		}
		if !IsPoolTooSmall(err) {
			t.Errorf("IsPoolTooSmall(%v) = false", err)
		}
	}
}

func TestGenerateInvalidParameters(t *testing.T) {
	s := newTestSampler(t, DefaultSeed)
	pool := testPool(t, 10)

	tests := []struct {
		name  string
		m     int
		ratio float64
		param string
	}{
		{"negative count", -1, 0.1, "transactions"},
		{"ratio below zero", 10, -0.01, "fraud_ratio"},
		{"ratio above one", 10, 1.5, "fraud_ratio"},
		{"ratio NaN", 10, math.NaN(), "fraud_ratio"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Generate(pool, tt.m, tt.ratio)
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("error = %v, want ErrInvalidParameter", err)
			}
			var genErr *GenerationError
			if !errors.As(err, &genErr) {
				t.Fatalf("error %T is not a *GenerationError", err)
			}
			if genErr.Param != tt.param {
				t.Errorf("Param = %q, want %q", genErr.Param, tt.param)
			}
		})
	}
}

func TestGenerateZeroTransactions(t *testing.T) {
	s := newTestSampler(t, DefaultSeed)
	txs, err := s.Generate(testPool(t, 5), 0, DefaultFraudRatio)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("got %d transactions, want 0", len(txs))
	}
}

func TestGenerateRowInvariants(t *testing.T) {
	s := newTestSampler(t, DefaultSeed)
	txs, err := s.Generate(testPool(t, DefaultAccounts), DefaultTransactions, DefaultFraudRatio)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if len(txs) != DefaultTransactions {
		t.Fatalf("got %d transactions, want %d", len(txs), DefaultTransactions)
	}

	base := make(map[string]bool)
	for _, c := range DefaultCountries() {
		base[c] = true
	}
	suspicious := make(map[CountryPair]bool)
	for _, p := range DefaultSuspiciousPairs() {
		suspicious[p] = true
	}
	anchor := DefaultAnchor()
	end := anchor.Add(MinutesPerYear * time.Minute)

	for i, tx := range txs {
		if tx.ID != fmt.Sprintf("T%06d", i) {
			t.Fatalf("row %d has id %s", i, tx.ID)
		}
		if tx.Source == tx.Destination {
			t.Fatalf("%s: source equals destination %s", tx.ID, tx.Source)
		}
		if !tx.Amount.IsPositive() {
			t.Fatalf("%s: non-positive amount %s", tx.ID, tx.Amount)
		}
		if tx.Amount.Exponent() < -2 {
			t.Fatalf("%s: amount %s has more than 2 decimals", tx.ID, tx.Amount)
		}
		if tx.Timestamp.Before(anchor) || tx.Timestamp.After(end) {
			t.Fatalf("%s: timestamp %v outside window", tx.ID, tx.Timestamp)
		}
		switch tx.IsFraud {
		case 1:
			pair := CountryPair{Source: tx.SourceCountry, Destination: tx.DestinationCountry}
			if !suspicious[pair] {
				t.Fatalf("%s: fraud row uses %v", tx.ID, pair)
			}
		case 0:
			if !base[tx.SourceCountry] || !base[tx.DestinationCountry] {
				t.Fatalf("%s: legit row uses %s/%s", tx.ID, tx.SourceCountry, tx.DestinationCountry)
			}
		default:
			t.Fatalf("%s: is_fraud = %d", tx.ID, tx.IsFraud)
		}
	}
}

func TestGenerateFraudFraction(t *testing.T) {
	s := newTestSampler(t, 7)
	const m = 20000
	const p = 0.02
	txs, err := s.Generate(testPool(t, 100), m, p)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	fraud := 0
	for _, tx := range txs {
		fraud += tx.IsFraud
	}

	mean := m * p
	sd := math.Sqrt(m * p * (1 - p))
	if math.Abs(float64(fraud)-mean) > 5*sd {
		t.Errorf("fraud rows = %d, want %.0f ± %.0f", fraud, mean, 5*sd)
	}
}

func TestGenerateFraudRatioBounds(t *testing.T) {
	pool := testPool(t, 20)

	txs, err := newTestSampler(t, 1).Generate(pool, 500, 0)
	if err != nil {
		t.Fatal(err)
	}
	for _, tx := range txs {
		if tx.IsFraud != 0 {
			t.Fatalf("%s flagged with ratio 0", tx.ID)
		}
	}

	txs, err = newTestSampler(t, 1).Generate(pool, 500, 1)
	if err != nil {
		t.Fatal(err)
	}
	for _, tx := range txs {
		if tx.IsFraud != 1 {
			t.Fatalf("%s not flagged with ratio 1", tx.ID)
		}
	}
}

func TestGenerateFraudAmountsAreHeavier(t *testing.T) {
	txs, err := newTestSampler(t, 3).Generate(testPool(t, 50), 20000, 0.1)
	if err != nil {
		t.Fatal(err)
	}

	var fraudSum, legitSum float64
	var fraudN, legitN int
	for _, tx := range txs {
		v := tx.Amount.InexactFloat64()
		if tx.Fraudulent() {
			fraudSum += v
			fraudN++
		} else {
			legitSum += v
			legitN++
		}
	}
	if fraudN == 0 || legitN == 0 {
		t.Fatalf("fraud=%d legit=%d, want both present", fraudN, legitN)
	}
	// Multipliers average 12.5, so fraud means should sit far above legit means.
	if fraudSum/float64(fraudN) < 5*legitSum/float64(legitN) {
		t.Errorf("fraud mean %.2f not heavier than legit mean %.2f", fraudSum/float64(fraudN), legitSum/float64(legitN))
	}
}

func TestGenerateFrequencySequence(t *testing.T) {
	// A small pool and a short window force many same-day repeats.
	opts := DefaultOptions()
	opts.SpanMinutes = 3 * 24 * 60
	s, err := New(NewRNG(11), opts)
	if err != nil {
		t.Fatal(err)
	}
	txs, err := s.Generate(testPool(t, 3), 300, 0.05)
	if err != nil {
		t.Fatal(err)
	}

	last := make(map[FrequencyKey]int)
	repeats := 0
	for _, tx := range txs {
		key := FrequencyKey{Account: tx.Source, Date: tx.Date()}
		if tx.Frequency != last[key]+1 {
			t.Fatalf("%s: frequency %d after %d for %v", tx.ID, tx.Frequency, last[key], key)
		}
		if tx.Frequency > 1 {
			repeats++
		}
		last[key] = tx.Frequency
	}
	if repeats == 0 {
		t.Error("expected same-day repeats with a three-day window")
	}
}

func TestGenerateWithStateCarriesCounts(t *testing.T) {
	opts := DefaultOptions()
	opts.SpanMinutes = 0
	s, err := New(NewRNG(5), opts)
	if err != nil {
		t.Fatal(err)
	}

	state := NewFrequencyState()
	pool := []string{"A00000", "A00001"}
	first, err := s.GenerateWithState(pool, 10, 0, state)
	if err != nil {
		t.Fatal(err)
	}
	if state.Count("A00000", "2023-01-01")+state.Count("A00001", "2023-01-01") != 10 {
		t.Fatalf("state holds %d transactions, want 10", state.Count("A00000", "2023-01-01")+state.Count("A00001", "2023-01-01"))
	}

	second, err := s.GenerateWithState(pool, 1, 0, state)
	if err != nil {
		t.Fatal(err)
	}
	prior := 0
	for _, tx := range first {
		if tx.Source == second[0].Source {
			prior++
		}
	}
	if second[0].Frequency != prior+1 {
		t.Errorf("continued frequency = %d, want %d", second[0].Frequency, prior+1)
	}
}

func TestGenerateRunsDoNotShareState(t *testing.T) {
	opts := DefaultOptions()
	opts.SpanMinutes = 0
	s, err := New(NewRNG(5), opts)
	if err != nil {
		t.Fatal(err)
	}
	pool := []string{"A00000", "A00001"}
	if _, err := s.Generate(pool, 10, 0); err != nil {
		t.Fatal(err)
	}
	txs, err := s.Generate(pool, 1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if txs[0].Frequency != 1 {
		t.Errorf("second run starts at frequency %d, want 1", txs[0].Frequency)
	}
}

func TestGenerateDeterministic(t *testing.T) {
	pool := testPool(t, DefaultAccounts)

	a, err := newTestSampler(t, DefaultSeed).Generate(pool, 1000, DefaultFraudRatio)
	if err != nil {
		t.Fatal(err)
	}
	b, err := newTestSampler(t, DefaultSeed).Generate(pool, 1000, DefaultFraudRatio)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(dataset.TransactionRecords(a), dataset.TransactionRecords(b)) {
		t.Error("same seed produced different tables")
	}

	c, err := newTestSampler(t, DefaultSeed+1).Generate(pool, 1000, DefaultFraudRatio)
	if err != nil {
		t.Fatal(err)
	}
	if reflect.DeepEqual(dataset.TransactionRecords(a), dataset.TransactionRecords(c)) {
		t.Error("different seeds produced identical tables")
	}
}

func TestNewRejectsBadOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Options)
	}{
		{"no countries", func(o *Options) { o.Countries = nil }},
		{"no pairs", func(o *Options) { o.SuspiciousPairs = nil }},
		{"negative span", func(o *Options) { o.SpanMinutes = -1 }},
		{"zero mean", func(o *Options) { o.MeanAmount = 0 }},
		{"inverted multipliers", func(o *Options) { o.MinMultiplier, o.MaxMultiplier = 20, 5 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			tt.mutate(&opts)
			if _, err := New(NewRNG(1), opts); !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("New() error = %v, want ErrInvalidOptions", err)
			}
		})
	}

	if _, err := New(nil, DefaultOptions()); !errors.Is(err, ErrInvalidOptions) {
		t.Errorf("New(nil) error = %v, want ErrInvalidOptions", err)
	}
}

func TestRoundAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{123.456, "123.46"},
		{0.004, "0.01"},
		{0.005, "0.01"},
		{1999.999, "2000.00"},
	}
	for _, tt := range tests {
		if got := roundAmount(tt.in).StringFixed(2); got != tt.want {
			t.Errorf("roundAmount(%v) = %s, want %s", tt.in, got, tt.want)
		}
	}
}
