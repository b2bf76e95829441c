/*
Package table manages the live tables served by the adapters.

The drag engine is single-threaded: membership changes and the layout that
follows them must be applied as one step before the next event for the same
table is processed. Manager provides that guarantee for hosts that receive
events concurrently (HTTP, MCP) by serializing every operation on a table
behind a per-table lock, optionally backed by a DistributedLocker.
*/
package table
