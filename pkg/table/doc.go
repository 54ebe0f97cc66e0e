/*
Package table holds the Match Table: the ordered list of (phase, pattern, transition)
rules evaluated against incoming messages.

The table is built once from a protocol definition and is read-only afterwards, so a
single table may back any number of engines.
*/
package table
