// Package events emits change notifications for the definition registry.
package events

import "context"

// Event topic constants
const (
	TopicSourceRegistered = "db2source.source.registered"
	TopicSourceUpdated    = "db2source.source.updated"
	TopicSourceDeleted    = "db2source.source.deleted"
)

// Event types

type SourceRegistered struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ClassType string `json:"class_type"`
}

type SourceUpdated struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ClassType string `json:"class_type"`
}

type SourceDeleted struct {
	Name string `json:"name"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
