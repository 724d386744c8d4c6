// Package app contains the shell's application lifecycle. It defines the
// App struct, its configuration, module wiring, the local bridge server and
// the setup sequence that connects a platform link source to the UI,
// decoupled from any specific host like the desktop window or a mobile
// runtime.
package app
