// Package batch runs one operation over several form IDs for tools that
// accept either a single ID or a list of them.
//
// Items run concurrently up to a limit. Results keep the input order and a
// failing item never aborts the others.
package batch
