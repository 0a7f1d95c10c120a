// Package batch segments many documents concurrently and watches an inbox
// directory for new ones.
//
// A Runner loads each path with retries (documents may still be being
// written), segments it, and returns one Report per path in input order.
// Per-document failures are reported, not returned. A Watcher feeds settled
// files from an fsnotify watch into a Runner.
package batch
