// Package config loads everything a transformation run needs from a config
// directory: layered settings (built-in defaults, an optional
// pwtransformer.toml or pwtransformer.yaml, PWT_ environment variables and
// command-line overrides), the rule files and the boilerplate resources.
//
// Missing required resources are reported as RESOURCE_MISSING errors that
// carry the path and a remediation hint, before any script is touched.
package config
