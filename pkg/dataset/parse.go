package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// ErrMalformedRecord is returned when a CSV record does not decode into a row.
var ErrMalformedRecord = errors.New("malformed record")

// ParseTransaction decodes a record in TransactionHeader order.
func ParseTransaction(record []string) (Transaction, error) {
	if len(record) != len(transactionHeader) {
		return Transaction{}, fmt.Errorf("%w: transaction has %d fields, want %d", ErrMalformedRecord, len(record), len(transactionHeader))
	}

	ts, err := time.Parse(TimeLayout, record[3])
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: timestamp %q: %v", ErrMalformedRecord, record[3], err)
	}
	amount, err := decimal.NewFromString(record[4])
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: amount %q: %v", ErrMalformedRecord, record[4], err)
	}
	label, err := parseLabel(record[7])
	if err != nil {
		return Transaction{}, err
	}
	freq, err := strconv.Atoi(record[8])
	if err != nil || freq < 1 {
		return Transaction{}, fmt.Errorf("%w: frequency %q", ErrMalformedRecord, record[8])
	}

	return Transaction{
		ID:                 record[0],
		Source:             record[1],
		Destination:        record[2],
		Timestamp:          ts,
		Amount:             amount,
		SourceCountry:      record[5],
		DestinationCountry: record[6],
		IsFraud:            label,
		Frequency:          freq,
	}, nil
}

// ParseTransactions decodes a transaction table. A leading header row is
// skipped when it matches TransactionHeader.
func ParseTransactions(records [][]string) ([]Transaction, error) {
	if len(records) > 0 && isHeader(records[0], transactionHeader) {
		records = records[1:]
	}
	txs := make([]Transaction, 0, len(records))
	for i, rec := range records {
		tx, err := ParseTransaction(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// ParseNode decodes a record in NodeHeader order.
func ParseNode(record []string) (Node, error) {
	if len(record) != len(nodeHeader) {
		return Node{}, fmt.Errorf("%w: node has %d fields, want %d", ErrMalformedRecord, len(record), len(nodeHeader))
	}
	return Node{AccountID: record[0], Country: record[1]}, nil
}

func parseLabel(s string) (int, error) {
	switch s {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	}
	return 0, fmt.Errorf("%w: label %q", ErrMalformedRecord, s)
}

func isHeader(record, header []string) bool {
	if len(record) != len(header) {
		return false
	}
	for i := range header {
		if record[i] != header[i] {
			return false
		}
	}
	return true
}
