/*
Package weave defines the interfaces used throughout the treasury node, such
as storage, transactions, handlers and tickers. It also contains the
percentage arithmetic used to split rewards and the address format of
accounts.
*/
package weave
