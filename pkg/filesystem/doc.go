// Package filesystem provides the file access used by the transformer.
//
// All operations go through an afero.Fs so the pipeline can run against the
// real disk in the CLI and against an in-memory filesystem in tests.
package filesystem
