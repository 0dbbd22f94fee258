// Package generation turns a meme generation request into a single outcome.
//
// A request is validated, submitted once to the backend and then polled on a
// fixed cadence until the backend reports success or failure, or the poll
// budget runs out. Initial generation and regeneration share the same poll
// session; only the submission call differs.
package generation
