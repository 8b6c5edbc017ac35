// Package testutil provides fixtures shared by the transformer tests.
//
// Key components:
//   - Markers/Upload: the delimiter and upload settings shipped in the default config
//   - RuleSet: compiles inline rule records into a RuleSet, failing the test on error
//   - MemFS: an afero in-memory filesystem with helpers to seed scripts and read outputs
//
// All test data is defined inline; nothing here reads the real filesystem.
package testutil
