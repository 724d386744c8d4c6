// Package config defines the format-agnostic configuration model of the
// shell, along with the Loader interface for reading it from a source.
//
// The concrete HCL implementation lives in the hcl package.
package config
