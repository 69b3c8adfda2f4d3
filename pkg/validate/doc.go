// Package validate implements the construction-time checks that guarantee a
// specification is well-formed before any network call is made.
//
// Every check is a pure function returning either the unchanged value or a
// *FieldError naming the offending field and the expectation it violated.
// The builders invoke these checks at Build; nothing is deferred to
// submission time or to the engine.
package validate
