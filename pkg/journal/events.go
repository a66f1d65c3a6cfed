package journal

import "tableflip.dev/diary/pkg/entry"

// ChangeType enumerates cache mutations.
type ChangeType string

const (
	// ChangeCreate indicates an entry was appended.
	ChangeCreate ChangeType = "create"
	// ChangeUpdate indicates an entry's title or content changed.
	ChangeUpdate ChangeType = "update"
	// ChangeDelete indicates an entry was removed.
	ChangeDelete ChangeType = "delete"
	// ChangeReload indicates the whole cache was replaced.
	ChangeReload ChangeType = "reload"
)

// ChangeMsg is emitted after the cache changes. Entry is a copy of the
// affected entry and is nil for reloads.
type ChangeMsg struct {
	Action ChangeType
	ID     string
	Entry  *entry.Entry
}
