package model

import "time"

// Relation is one directed friendship edge. A confirmed friendship is two
// rows, (a,b) and (b,a), inserted in the same transaction, so the graph is
// logically undirected. The unique index forbids duplicate ordered pairs.
type Relation struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	One       int64     `gorm:"column:one;uniqueIndex:idx_relations_pair;not null" json:"one"`
	Another   int64     `gorm:"column:another;uniqueIndex:idx_relations_pair;not null" json:"another"`
	CreatedAt time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
