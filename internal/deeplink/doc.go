// Package deeplink routes OS-delivered activation URLs to the UI layer.
//
// A Router subscribes to a platform Source and republishes every URL it
// observes as a single "deep-link" event on a UI Channel, exactly once and
// in delivery order. On platforms whose Source can report the URL the
// process was launched with, that URL is routed first, before any live
// activation.
//
// The router does not know which platform it runs on. Platform differences
// are expressed through the Capabilities a Source reports, so the routing
// logic can be exercised with fakes on any OS.
package deeplink
