package cmd

import "github.com/shopspring/decimal"

type balance struct {
	Account string          `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

type record struct {
	ID          string          `json:"id"`
	From        string          `json:"from"`
	To          string          `json:"to"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	FromCountry string          `json:"from_country"`
	ToCountry   string          `json:"to_country"`
	TimeStamp   uint64          `json:"timestamp"`
	Hash        string          `json:"hash"`
	Status      string          `json:"status"`
	Fee         decimal.Decimal `json:"fee"`
}

type block struct {
	PrevBlockHash string   `json:"prev_block_hash"`
	TimeStamp     uint64   `json:"timestamp"`
	Nonce         uint64   `json:"nonce"`
	Hash          string   `json:"hash"`
	Records       []record `json:"records"`
}
