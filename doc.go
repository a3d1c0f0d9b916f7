// Package pricefeed builds monthly price histories for plain-text accounting.
//
// A market-data Provider returns the daily closing prices of a ticker. The
// pipeline (see Run) then:
//   - Restricts the series to the configured begin date.
//   - Merges the live quote when the latest price is requested.
//   - Adjusts every price for the stock splits declared after it (see Adjust).
//   - Reduces the series to one price per closed month (see Resample).
//
// The result is written as ledger price directives:
//
//	P 2023-01-31 "NVDA" $19.5
//
// This package serves as the foundational logic for the `pf` command-line
// tool. Provider implementations live in the yahoo and eodhd packages.
package pricefeed
