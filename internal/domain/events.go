/**
 * @description
 * Ephemeral notification events pushed by the hub to live dashboard
 * subscribers. Events are fire-and-forget: no persistence, no replay.
 */

package domain

import "time"

// EventType classifies a notification event.
type EventType string

const (
	EventTypeTransaction EventType = "transaction"
	EventTypeSettlement  EventType = "settlement"
	EventTypeAlert       EventType = "alert"
)

// EventPayload is the synthesized body of a notification event.
type EventPayload struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NotificationEvent is delivered to hub subscribers. It is never stored.
type NotificationEvent struct {
	Type EventType    `json:"type"`
	Data EventPayload `json:"data"`
}
