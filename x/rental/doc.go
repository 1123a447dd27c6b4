/*
Package rental implements a time-bound rental escrow.

An owner registers a record with a price per day. A renter locks
price*days funds for the chosen number of days. The funds are held by the
record escrow account and released to the owner only after the rental
period is over, at which point the record becomes rentable again.

A record is either free or occupied by exactly one rental. There are no
partial refunds, extensions or prorated settlements.
*/
package rental
