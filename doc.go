/*
Package rentbook defines the interfaces shared by every part of the rental
escrow application: storage, transactions, handlers, decorators and the
context passed between them. It also holds the simple value types that
flow through all extensions, such as Address, Condition, UnixTime and
Metadata.

Extensions live under x/. The rental escrow itself is implemented by
x/rental, the balance ledger it settles against by x/cash.
*/
package rentbook
