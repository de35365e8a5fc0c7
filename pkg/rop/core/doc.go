// Package core carries service configuration through context.Context. The
// Config travels with the call instead of living in a process-wide variable,
// so nested invocations see the settings of the invocation that started them.
package core
