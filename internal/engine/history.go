package engine

// PositionLog records every position a game passes through. It only grows:
// exact threefold detection needs the full game, so entries are never pruned.
// The surrounding system may supply its own implementation for persistence;
// the engine only produces and compares keys.
type PositionLog interface {
	Append(key PositionKey)
	Count(key PositionKey) int
	Len() int
}

type memoryPositionLog struct {
	keys   []PositionKey
	counts map[PositionKey]int
}

// NewMemoryPositionLog returns the default in-process position store.
func NewMemoryPositionLog() PositionLog {
	return &memoryPositionLog{counts: make(map[PositionKey]int)}
}

func (l *memoryPositionLog) Append(key PositionKey) {
	l.keys = append(l.keys, key)
	l.counts[key]++
}

func (l *memoryPositionLog) Count(key PositionKey) int {
	return l.counts[key]
}

func (l *memoryPositionLog) Len() int {
	return len(l.keys)
}
