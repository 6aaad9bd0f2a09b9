package search

import "sync/atomic"

// Index is the process-wide prefix index over question titles. Rebuild
// constructs a fresh trie and swaps it in atomically, so concurrent Search
// calls always observe either the fully-old or the fully-new tree, never a
// partially rebuilt one. Reads take no lock.
type Index struct {
	current atomic.Pointer[Trie]
}

func NewIndex() *Index {
	ix := &Index{}
	ix.current.Store(NewTrie())
	return ix
}

// Search returns all indexed titles with the given prefix, lowercased.
func (ix *Index) Search(prefix string) []string {
	return ix.current.Load().Autocomplete(prefix)
}

// Rebuild replaces the index contents with exactly the given titles.
// Callers invoke it after every question mutation so the index can never
// drift from the store.
func (ix *Index) Rebuild(titles []string) {
	t := NewTrie()
	for _, title := range titles {
		t.Insert(title)
	}
	ix.current.Store(t)
}
