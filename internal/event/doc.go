// Package event provides explicit listener registration for session
// state changes.
//
// The editing core stays free of reactive machinery: mutations,
// history transitions, and drag transitions publish a plain Event
// after the fact, and interested layers (a renderer, a test) register
// a Listener to hear about them. Delivery is synchronous and ordered
// with respect to the publishing call, matching the single thread of
// control the core assumes.
package event
