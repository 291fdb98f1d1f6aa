/*
Package cash keeps a single currency balance for every account.

There is no logic in the currency, except that the balance of an account may
not overflow. Minting is the only way new funds enter the system, thus this
package exposes no transfer messages. Other extensions use the Controller to
mint funds and inspect balances.
*/
package cash
