// Package task contains the Task aggregate: a unit of field work with a
// kind, a lifecycle status and optional cash implications.
//
// Status changes go through an explicit transition table; the one sanctioned
// bypass is the dual-confirmation shortcut, which completes a non-terminal
// task the moment both the site and the assigned courier have confirmed,
// regardless of where the task sits in the forward chain.
package task
