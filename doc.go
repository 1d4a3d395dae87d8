// Package broadcast provides a bound Emitter/Channel pair that fans values
// out to dynamically registered listeners. A Channel is created with one of
// three buffering strategies which control what a listener attached after the
// fact gets to replay: nothing (NoBuffering), the most recent values
// (BoundedReplay), or everything (UnboundedReplay).
//
// Delivery is synchronous: handlers run on whichever goroutine calls
// Broadcast or Listen. Handlers may themselves call Broadcast, Listen or
// Dispose on the same channel; such nested calls run inline.
package broadcast
