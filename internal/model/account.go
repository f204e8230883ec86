// Package model defines the flattened, strongly-typed records produced by
// parsing an OFX document. Records outlive the element tree they were built
// from and are immutable once construction returns; the shapes here are
// intended to load directly into a relational store.
package model

// BankAccount identifies a deposit account at a financial institution.
type BankAccount struct {
	BankID   string
	BranchID string
	AcctID   string
	AcctType string
	AcctKey  string
}

// CCAccount identifies a credit-card account.
type CCAccount struct {
	AcctID  string
	AcctKey string
}

// InvAccount identifies a brokerage account.
type InvAccount struct {
	BrokerID string
	AcctID   string
}
