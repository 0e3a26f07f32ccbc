// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package quadtree

import (
	"testing"

	"github.com/gogpu/globesurface/geomath"
)

func newTestTile(id int) *Tile {
	return NewTile(0, id, 0, geomath.Extent{}, nil)
}

func collect(q *LoadQueue) []*Tile {
	var out []*Tile
	for t := q.Head(); t != nil; t = q.Next(t) {
		out = append(out, t)
	}
	return out
}

func TestLoadQueue_InsertBeforeInsertionPoint_PreservesOrderWithinFrame(t *testing.T) {
	q := NewLoadQueue()
	a, b, c := newTestTile(1), newTestTile(2), newTestTile(3)

	q.MarkInsertionPoint() // empty queue: marker is nil
	q.InsertBeforeInsertionPoint(a)
	q.InsertBeforeInsertionPoint(b)
	q.InsertBeforeInsertionPoint(c)

	got := collect(q)
	if len(got) != 3 || got[0] != a || got[1] != b || got[2] != c {
		t.Fatalf("got %v, want [a b c] in insertion order", got)
	}
	if q.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", q.Len())
	}
}

func TestLoadQueue_CarryoverTilesStayBehindNewInsertions(t *testing.T) {
	q := NewLoadQueue()
	carryover := newTestTile(1)
	q.MarkInsertionPoint()
	q.InsertBeforeInsertionPoint(carryover)

	// Next frame: new insertions should precede the carryover tile.
	q.MarkInsertionPoint()
	fresh := newTestTile(2)
	q.InsertBeforeInsertionPoint(fresh)

	got := collect(q)
	if len(got) != 2 || got[0] != fresh || got[1] != carryover {
		t.Fatalf("got %v, want [fresh carryover]", got)
	}
}

func TestLoadQueue_ReinsertingExistingTileMovesIt(t *testing.T) {
	q := NewLoadQueue()
	a, b := newTestTile(1), newTestTile(2)
	q.MarkInsertionPoint()
	q.InsertBeforeInsertionPoint(a)
	q.InsertBeforeInsertionPoint(b)

	q.MarkInsertionPoint()
	q.InsertBeforeInsertionPoint(a) // re-touch a this frame

	got := collect(q)
	if len(got) != 2 {
		t.Fatalf("expected length 2 after re-touching existing tile, got %d", len(got))
	}
	if got[0] != a {
		t.Fatalf("expected re-touched tile to move ahead of the marker, got order %v", got)
	}
}

func TestLoadQueue_Remove(t *testing.T) {
	q := NewLoadQueue()
	a, b, c := newTestTile(1), newTestTile(2), newTestTile(3)
	q.MarkInsertionPoint()
	q.InsertBeforeInsertionPoint(a)
	q.InsertBeforeInsertionPoint(b)
	q.InsertBeforeInsertionPoint(c)

	q.Remove(b)
	if q.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", q.Len())
	}
	if b.InLoadQueue() {
		t.Error("removed tile should report InLoadQueue() == false")
	}
	got := collect(q)
	if len(got) != 2 || got[0] != a || got[1] != c {
		t.Fatalf("got %v, want [a c]", got)
	}

	// Removing again is a no-op.
	q.Remove(b)
	if q.Len() != 2 {
		t.Fatalf("Len() after double remove = %d, want 2", q.Len())
	}
}
