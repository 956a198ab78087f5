// Package remedy applies operator-supplied remediation command batches on
// health-state transitions.
//
// Applier reads the command file bound to an action (fail or recover), trims
// every line, drops a leading literal "enable", and submits the remaining
// ordered lines as one batch through a Runner. EAPIClient is the production
// Runner: a JSON-RPC 2.0 runCmds call over the switch's unix command socket.
//
// The machine guarantees at most one Apply per transition; the batch itself
// is only as idempotent as the operator wrote it.
package remedy
