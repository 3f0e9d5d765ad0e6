package domain

import "strings"

const (
	SystemEntity       = "system"
	ReservationsEntity = "reservations"

	TopicSystemConnected = SystemEntity + ".connected"
	TopicSystemPong      = SystemEntity + ".pong"
	TopicSystemError     = SystemEntity + ".error"

	ActionConnected = "connected"
	ActionPong      = "pong"
	ActionError     = "error"
	ActionList      = "list"
	ActionSnapshot  = "snapshot"
	ActionCreated   = "created"
	ActionUpdated   = "updated"
	ActionDeleted   = "deleted"
)

// ReservationTopics lists every topic a reservations subscriber receives by default.
func ReservationTopics() []string {
	return []string{
		ListTopic(ReservationsEntity),
		SnapshotTopic(ReservationsEntity),
		CreatedTopic(ReservationsEntity),
		UpdatedTopic(ReservationsEntity),
		DeletedTopic(ReservationsEntity),
	}
}

// IsMutationAction reports whether action changes a record.
func IsMutationAction(action string) bool {
	switch strings.ToLower(strings.TrimSpace(action)) {
	case ActionCreated, ActionUpdated, ActionDeleted:
		return true
	}
	return false
}

// SnapshotTopic returns the canonical snapshot topic for the given entity.
func SnapshotTopic(entity string) string {
	return buildEntityTopic(entity, ActionSnapshot)
}

// ListTopic returns the canonical list topic for the given entity.
func ListTopic(entity string) string {
	return buildEntityTopic(entity, ActionList)
}

func CreatedTopic(entity string) string {
	return buildEntityTopic(entity, ActionCreated)
}

func UpdatedTopic(entity string) string {
	return buildEntityTopic(entity, ActionUpdated)
}

func DeletedTopic(entity string) string {
	return buildEntityTopic(entity, ActionDeleted)
}

// CustomTopic returns the canonical topic for the given entity and action.
func CustomTopic(entity, action string) string {
	return buildEntityTopic(entity, action)
}

func buildEntityTopic(entity, action string) string {
	cleanEntity := strings.TrimSpace(entity)
	cleanAction := strings.TrimSpace(action)
	if cleanEntity == "" || cleanAction == "" {
		return ""
	}
	return cleanEntity + "." + cleanAction
}
