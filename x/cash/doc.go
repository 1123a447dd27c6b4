/*
Package cash is the balance ledger. Every holder address owns at most one
wallet with a single balance. A missing wallet is the same as a zero
balance.

Other extensions move funds through the Controller, which never lets a
balance go negative or overflow.
*/
package cash
