// Package indicator contains the connection-state indicator module:
// arbitration of the single displayed connection, resolution of that
// connection to a configured icon reference, and the render loop that
// feeds the host bar.
//
// Arbitration and resolution are pure functions of the adapter snapshot,
// recomputed on every change event and never cached beyond the current
// cycle. The render loop deduplicates its output: a no-op event that
// arbitrates and resolves to the same result emits nothing.
package indicator
