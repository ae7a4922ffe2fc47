/*
Package observability provides Prometheus collectors for the toolkit.

A *Metrics value is optional everywhere it is accepted: every method is a
no-op on a nil receiver, so library callers that do not care about metrics
pass nothing and pay nothing.
*/
package observability
