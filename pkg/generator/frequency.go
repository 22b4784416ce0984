package generator

// FrequencyKey identifies one account on one calendar date.
type FrequencyKey struct {
	Account string
	Date    string
}

// FrequencyState counts transactions originated per account per calendar date.
// One state belongs to one generation run; counts only ever grow.
type FrequencyState struct {
	counts map[FrequencyKey]int
}

// NewFrequencyState returns an empty counter.
func NewFrequencyState() *FrequencyState {
	return &FrequencyState{counts: make(map[FrequencyKey]int)}
}

// Increment records one more transaction for (account, date) and returns the
// new count. The first call for a pair returns 1.
func (s *FrequencyState) Increment(account, date string) int {
	key := FrequencyKey{Account: account, Date: date}
	s.counts[key]++
	return s.counts[key]
}

// Count returns the current count for (account, date), zero if unseen.
func (s *FrequencyState) Count(account, date string) int {
	return s.counts[FrequencyKey{Account: account, Date: date}]
}

// Len returns the number of (account, date) pairs seen so far.
func (s *FrequencyState) Len() int {
	return len(s.counts)
}
