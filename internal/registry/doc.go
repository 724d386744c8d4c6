// Package registry provides the central "glue" for the shell's module system.
//
// Platform integration modules register two kinds of things here: named
// commands the rendered UI can invoke, and setup hooks that run once while
// the application starts. Names are unique; registering the same name twice
// is a programming error and panics, so a mismatch between modules shows up
// on the first start instead of at runtime.
package registry
