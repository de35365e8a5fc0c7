// Package solo contains single-value, synchronous primitives over rop.Result.
// Services use them to turn Validatable objects into results and to fold a
// pipeline of checks into one outcome.
//
// Highlights:
// - Succeed/Fail: construct a rop.Result
// - Validate: run one Validatable, failing with {key: messages}
// - ValidateAll/Join: fold many checks, optionally breaking on first error
// - Switch/Tee: continue or observe on success only
// - Finally: reduce an outcome to a concrete value
package solo
