// Package events provides the session event bus.
//
// A Bus is created once at process start and handed to every component that
// publishes or reacts to session signals (LOGIN_SUCCESS, LOGOUT). Delivery is
// synchronous and ordered by registration. Nothing is buffered: an event emitted
// while no handler is registered is dropped.
package events
