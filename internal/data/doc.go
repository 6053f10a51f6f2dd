// Package data holds parsed Endless Sky data: source texts, the node forest
// built from them, and the registry of root nodes in parse order.
//
// Nodes and sources live in generational arenas and are addressed by
// NodeIndex and SourceIndex handles. A failed lookup is reported as an
// absent value (false, nil or an empty sequence), never as a panic.
package data
