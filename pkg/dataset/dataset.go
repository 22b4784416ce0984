// Package dataset defines the rows produced by the generator and their tabular
// layout. Column order is stable: downstream notebooks read these files by name.
package dataset

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// TimeLayout is the text form of every timestamp column. Timestamps carry no zone.
const TimeLayout = "2006-01-02 15:04:05"

// DateLayout is the calendar date used to key per-account frequency counters.
const DateLayout = "2006-01-02"

// Table names, also used as output file stems.
const (
	TransactionsTable = "synthetic_fraud_dataset"
	EdgesTable        = "graph_edges"
	NodesTable        = "graph_nodes"
)

var (
	transactionHeader = []string{
		"transaction_id",
		"source_account",
		"destination_account",
		"timestamp",
		"amount",
		"source_country",
		"destination_country",
		"is_fraud",
		"frequency",
	}
	edgeHeader = []string{"src", "dst", "time", "amount", "label"}
	nodeHeader = []string{"account_id", "country"}
)

// Transaction is one generated transfer between two accounts.
type Transaction struct {
	ID                 string
	Source             string
	Destination        string
	Timestamp          time.Time
	Amount             decimal.Decimal
	SourceCountry      string
	DestinationCountry string
	IsFraud            int // 0 or 1
	Frequency          int // transactions from Source on this calendar date, inclusive
}

// Date returns the calendar date of the transaction timestamp.
func (t Transaction) Date() string {
	return t.Timestamp.Format(DateLayout)
}

// Fraudulent reports whether the row carries the fraud label.
func (t Transaction) Fraudulent() bool {
	return t.IsFraud == 1
}

// Record renders the transaction in TransactionHeader order.
func (t Transaction) Record() []string {
	return []string{
		t.ID,
		t.Source,
		t.Destination,
		t.Timestamp.Format(TimeLayout),
		t.Amount.StringFixed(2),
		t.SourceCountry,
		t.DestinationCountry,
		strconv.Itoa(t.IsFraud),
		strconv.Itoa(t.Frequency),
	}
}

// Edge is the graph view of a transaction.
type Edge struct {
	Src    string
	Dst    string
	Time   time.Time
	Amount decimal.Decimal
	Label  int
}

// Record renders the edge in EdgeHeader order.
func (e Edge) Record() []string {
	return []string{
		e.Src,
		e.Dst,
		e.Time.Format(TimeLayout),
		e.Amount.StringFixed(2),
		strconv.Itoa(e.Label),
	}
}

// Node is an account observed in the transaction table with the first country
// it was seen under.
type Node struct {
	AccountID string
	Country   string
}

// Record renders the node in NodeHeader order.
func (n Node) Record() []string {
	return []string{n.AccountID, n.Country}
}

// TransactionHeader returns the column names of the transaction table.
func TransactionHeader() []string { return clone(transactionHeader) }

// EdgeHeader returns the column names of the edge table.
func EdgeHeader() []string { return clone(edgeHeader) }

// NodeHeader returns the column names of the node table.
func NodeHeader() []string { return clone(nodeHeader) }

// TransactionRecords renders a transaction table, one record per row.
func TransactionRecords(txs []Transaction) [][]string {
	rows := make([][]string, len(txs))
	for i, tx := range txs {
		rows[i] = tx.Record()
	}
	return rows
}

// EdgeRecords renders an edge table.
func EdgeRecords(edges []Edge) [][]string {
	rows := make([][]string, len(edges))
	for i, e := range edges {
		rows[i] = e.Record()
	}
	return rows
}

// NodeRecords renders a node table.
func NodeRecords(nodes []Node) [][]string {
	rows := make([][]string, len(nodes))
	for i, n := range nodes {
		rows[i] = n.Record()
	}
	return rows
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
