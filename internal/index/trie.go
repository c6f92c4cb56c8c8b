// Package index provides a radix trie over dial-code digit prefixes.
package index

import (
	"fmt"
	"strings"
)

// Entry is a country attached to a digit prefix.
type Entry struct {
	ISO2     string
	Priority int
	Order    int // Position in the source catalog
}

// PrefixData holds the countries sharing one prefix.
type PrefixData struct {
	Prefix  string
	Entries []Entry
}

// Best returns the entry with the lowest priority, ties broken by catalog order.
func (d *PrefixData) Best() (Entry, bool) {
	if d == nil || len(d.Entries) == 0 {
		return Entry{}, false
	}
	best := d.Entries[0]
	for _, e := range d.Entries[1:] {
		if e.Priority < best.Priority || (e.Priority == best.Priority && e.Order < best.Order) {
			best = e
		}
	}
	return best, true
}

// TrieNode represents a node in the radix trie.
type TrieNode struct {
	// Digits on the edge leading to this node (path compression)
	Prefix string
	// Data if this node terminates an inserted prefix
	Data *PrefixData
	// Children indexed by the first digit of their edge
	Children [10]*TrieNode
}

// Trie is a radix trie for dial-code lookup.
type Trie struct {
	Root  *TrieNode
	Count int
}

// NewTrie creates a new empty trie.
func NewTrie() *Trie {
	return &Trie{
		Root: &TrieNode{},
	}
}

// Insert attaches an entry to a digit prefix.
// Entries inserted under the same prefix accumulate.
func (t *Trie) Insert(prefix string, entry Entry) error {
	if prefix == "" {
		return fmt.Errorf("empty prefix")
	}
	if !isDigits(prefix) {
		return fmt.Errorf("prefix %q contains non-digits", prefix)
	}

	node := t.insertNode(prefix)
	if node.Data == nil {
		node.Data = &PrefixData{Prefix: prefix}
		t.Count++
	}
	node.Data.Entries = append(node.Data.Entries, entry)
	return nil
}

// insertNode returns the node terminating prefix, creating or splitting nodes as needed
func (t *Trie) insertNode(prefix string) *TrieNode {
	node := t.Root
	rest := prefix

	for {
		if rest == "" {
			return node
		}

		digit := rest[0] - '0'
		child := node.Children[digit]

		if child == nil {
			// No child, create new node with remaining digits
			newNode := &TrieNode{Prefix: rest}
			node.Children[digit] = newNode
			return newNode
		}

		commonLen := commonPrefixLen(rest, child.Prefix)

		if commonLen == len(child.Prefix) {
			// Child edge fully matched, continue down
			rest = rest[commonLen:]
			node = child
			continue
		}

		// Split the child edge at the divergence point
		newParent := &TrieNode{Prefix: child.Prefix[:commonLen]}
		child.Prefix = child.Prefix[commonLen:]
		newParent.Children[child.Prefix[0]-'0'] = child
		node.Children[digit] = newParent

		if commonLen == len(rest) {
			return newParent
		}

		// New leaf for the remainder
		leaf := &TrieNode{Prefix: rest[commonLen:]}
		newParent.Children[leaf.Prefix[0]-'0'] = leaf
		return leaf
	}
}

// Lookup finds the longest inserted prefix of digits.
func (t *Trie) Lookup(digits string) *PrefixData {
	var lastMatch *PrefixData

	node := t.Root
	rest := digits
	for node != nil {
		if node.Data != nil {
			lastMatch = node.Data
		}

		if rest == "" || !isDigit(rest[0]) {
			break
		}

		child := node.Children[rest[0]-'0']
		if child == nil || !strings.HasPrefix(rest, child.Prefix) {
			break
		}

		rest = rest[len(child.Prefix):]
		node = child
	}

	return lastMatch
}

// Digits strips everything but ASCII digits from s.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if isDigit(s[i]) {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

func commonPrefixLen(a, b string) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return i
		}
	}
	return n
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}
