// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It parses shell configuration files, evaluates them against an
// environment-aware context and layers the result over config.Defaults().
package hcl
