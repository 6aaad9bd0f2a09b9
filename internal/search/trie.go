package search

import "strings"

type trieNode struct {
	children map[rune]*trieNode
	end      bool
}

func newTrieNode() *trieNode {
	return &trieNode{children: make(map[rune]*trieNode)}
}

// Trie indexes lowercase title strings for prefix lookup. It stores only
// structure and endpoint markers; mapping matched titles back to full
// question records is the caller's job.
//
// A Trie is not safe for concurrent mutation. Index wraps it behind an
// atomically swapped snapshot for shared use.
type Trie struct {
	root *trieNode
}

func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Insert adds a title to the trie, lowercased. Inserting the same title
// twice is a no-op; inserting the empty string marks the root as an
// endpoint (the root spells the empty prefix).
func (t *Trie) Insert(title string) {
	node := t.root
	for _, r := range strings.ToLower(title) {
		child, ok := node.children[r]
		if !ok {
			child = newTrieNode()
			node.children[r] = child
		}
		node = child
	}
	node.end = true
}

// Autocomplete returns every indexed title starting with prefix
// (case-insensitive). An unmatched prefix yields an empty slice, not an
// error. Result order follows child map iteration and is unspecified.
func (t *Trie) Autocomplete(prefix string) []string {
	prefix = strings.ToLower(prefix)
	node := t.root
	for _, r := range prefix {
		child, ok := node.children[r]
		if !ok {
			return []string{}
		}
		node = child
	}
	results := []string{}
	collect(node, prefix, &results)
	return results
}

// collect walks the subtree depth-first, appending every endpoint path.
// Recursion depth is bounded by the longest inserted title.
func collect(node *trieNode, prefix string, results *[]string) {
	if node.end {
		*results = append(*results, prefix)
	}
	for r, child := range node.children {
		collect(child, prefix+string(r), results)
	}
}
