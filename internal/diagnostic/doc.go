// Package diagnostic provides the ordered, advisory diagnostics channel
// returned next to generated code.
//
// Key capabilities:
//   - Unsupported column type warnings (sheet, column and type named)
//   - Unrecognized or invalid generation option warnings
//   - Fatal configuration errors that stop one backend
package diagnostic
