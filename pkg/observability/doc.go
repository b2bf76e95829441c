/*
Package observability provides tools for monitoring the Tableau engine.

It turns lifecycle hooks into Prometheus metrics and structured log lines,
so hosts can watch drags, drops, and layouts without touching the engine.
*/
package observability
