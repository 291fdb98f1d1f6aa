/*
Package app contains the building blocks of a node: a Router dispatching
messages by path, a decorator chain, the transaction format with its codec
and Chain, a single node block producer running handlers and tickers on top
of a commit store.

Extensions are wired by the daemon. This package does not depend on any of
them except sigs, which defines the signature format of a transaction.
*/
package app
