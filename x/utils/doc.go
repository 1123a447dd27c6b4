/*
Package utils contains the decorators every transaction passes through:
Savepoint for all-or-nothing execution, Recovery turning panics into
errors and Logging.
*/
package utils
