package cache

import "fmt"

type Prefix string

const (
	// SeenMessages keys record message ids that have already been durably
	// committed; used as a read-only fast path before the atomic insert.
	SeenMessages Prefix = "seen_messages"

	// StatsSnapshot is the key the periodic reporter writes the latest
	// aggregate stats under.
	StatsSnapshot Prefix = "stats_snapshot"
)

func (p Prefix) Key(id string) string {
	return fmt.Sprintf("%s:%s", p, id)
}
