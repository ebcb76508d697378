package content

import (
	"errors"
)

// Direction selects which way a row moves in the ordered list.
type Direction string

// Move directions.
const (
	// DirectionUp moves a row one slot toward the front.
	DirectionUp Direction = "up"
	// DirectionDown moves a row one slot toward the back.
	DirectionDown Direction = "down"
)

// Ordering errors.
var (
	// ErrNotFound indicates the row is not part of the ordered list.
	ErrNotFound = errors.New("content: row not in ordered list")
	// ErrBadDirection indicates an unknown move direction.
	ErrBadDirection = errors.New("content: direction must be up or down")
)

// ParseDirection validates a direction string from a request body.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(raw) {
	case DirectionUp, DirectionDown:
		return Direction(raw), nil
	default:
		return "", ErrBadDirection
	}
}

// orderedRow is the projection the swap works on: a row identity and its
// nullable rank.
type orderedRow struct {
	id  uint64
	pos *int
}

// swapPlan describes the two rank writes an adjacent swap issues.
type swapPlan struct {
	itemID    uint64
	itemPos   int // rank the moved row receives
	targetID  uint64
	targetPos int // rank the displaced row receives
}

// planSwap computes an adjacent swap over the loaded ordered list.
//
// A nil rank is materialized as the row's index in the list. That mirrors
// the behavior the dashboard has always had; positions produced this way
// may collide with other unranked rows, and the stable created_at tiebreak
// keeps the outcome deterministic regardless.
//
// Returns ok=false for a boundary move (first row up, last row down);
// callers must then issue no writes.
func planSwap(rows []orderedRow, id uint64, direction Direction) (swapPlan, bool, error) {
	index := -1
	for i, row := range rows {
		if row.id == id {
			index = i
			break
		}
	}
	if index < 0 {
		return swapPlan{}, false, ErrNotFound
	}

	targetIndex := index - 1
	if direction == DirectionDown {
		targetIndex = index + 1
	}
	if targetIndex < 0 || targetIndex >= len(rows) {
		return swapPlan{}, false, nil
	}

	item := rows[index]
	target := rows[targetIndex]

	itemPos := index
	if item.pos != nil {
		itemPos = *item.pos
	}
	targetPos := targetIndex
	if target.pos != nil {
		targetPos = *target.pos
	}

	return swapPlan{
		itemID:    item.id,
		itemPos:   targetPos,
		targetID:  target.id,
		targetPos: itemPos,
	}, true, nil
}
