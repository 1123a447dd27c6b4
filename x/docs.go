/*
Package x contains the helpers shared by all extensions.

Extensions implement common functionality (Handler, Decorator, etc.) and
are combined together to construct the application. The rental escrow
lives in x/rental, the balance ledger in x/cash and signature based
authentication in x/sigs. x/utils provides the decorators every
transaction passes through.
*/
package x
