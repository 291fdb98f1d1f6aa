package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendBtree returns all cached items within [start, end) in ascending
// order. Deleted items are kept as markers.
func ascendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	var items []btree.Item
	collect := func(item btree.Item) bool {
		items = append(items, item)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(collect)
	case start == nil:
		bt.AscendLessThan(bkey{end}, collect)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, collect)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, collect)
	}
	return items
}

// descendBtree returns all cached items within [start, end) in descending
// order.
func descendBtree(bt *btree.BTree, start, end []byte) []btree.Item {
	items := ascendBtree(bt, start, end)
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	return items
}

// mergeIterators joins our cached items with those of the parent, taking
// into consideration overwrites and deletes. Cached values always win.
func mergeIterators(ours []btree.Item, parent Iterator, ascending bool) Iterator {
	defer parent.Close()

	// before returns true if key a should be yielded before key b.
	before := func(a, b []byte) bool {
		if ascending {
			return bytes.Compare(a, b) < 0
		}
		return bytes.Compare(a, b) > 0
	}

	var res []Model
	emit := func(item btree.Item) {
		if s, ok := item.(setItem); ok {
			res = append(res, Pair(s.key, s.value))
		}
	}

	for len(ours) > 0 || parent.Valid() {
		switch {
		case !parent.Valid():
			emit(ours[0])
			ours = ours[1:]
		case len(ours) == 0:
			res = append(res, Pair(parent.Key(), parent.Value()))
			parent.Next()
		default:
			key := ours[0].(keyer).Key()
			switch {
			case bytes.Equal(key, parent.Key()):
				emit(ours[0])
				ours = ours[1:]
				parent.Next()
			case before(key, parent.Key()):
				emit(ours[0])
				ours = ours[1:]
			default:
				res = append(res, Pair(parent.Key(), parent.Value()))
				parent.Next()
			}
		}
	}
	return NewSliceIterator(res)
}
