package entities

import "strings"

// RoomFilter selects rooms by a single free-text term. An empty term matches
// every room. Matching is case-insensitive substring containment over the
// topic name, the room name and the description; it never rejects input.
type RoomFilter struct {
	Term string
}

// Matches reports whether the room satisfies the filter. The room's Topic
// association must be populated for the topic-name test to see it.
func (f RoomFilter) Matches(room Room) bool {
	term := strings.ToLower(strings.TrimSpace(f.Term))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(room.Topic.Name), term) ||
		strings.Contains(strings.ToLower(room.Name), term) ||
		strings.Contains(strings.ToLower(room.Description), term)
}
