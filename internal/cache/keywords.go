// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package cache

import "strings"

// KeywordMatcher finds any of a fixed keyword set inside free text using an
// Aho-Corasick automaton. Matching is case-insensitive and substring based:
// the keyword "sex" matches inside "Sussex". A single pass over the text
// checks every keyword, so the cost does not grow with the keyword count.
//
// A KeywordMatcher is immutable after construction and safe for concurrent use.
//
//	m := cache.NewKeywordMatcher([]string{"hentai", "nsfw"})
//	m.Contains("Hentai Puzzle")  // true
type KeywordMatcher struct {
	root     *kwNode
	keywords []string
}

// kwNode is a state of the automaton.
type kwNode struct {
	children map[rune]*kwNode
	failure  *kwNode
	output   []int // indices into keywords ending at this state
}

// KeywordMatch is one keyword occurrence. Position is the byte offset of the
// match start in the lower-cased text.
type KeywordMatch struct {
	Keyword  string
	Position int
}

func newKWNode() *kwNode {
	return &kwNode{children: make(map[rune]*kwNode)}
}

// NewKeywordMatcher builds a matcher for keywords. Empty and duplicate
// keywords are ignored.
func NewKeywordMatcher(keywords []string) *KeywordMatcher {
	m := &KeywordMatcher{root: newKWNode()}

	seen := make(map[string]struct{}, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}

		m.insert(len(m.keywords), kw)
		m.keywords = append(m.keywords, kw)
	}

	m.buildFailureLinks()
	return m
}

func (m *KeywordMatcher) insert(index int, keyword string) {
	node := m.root
	for _, ch := range keyword {
		next := node.children[ch]
		if next == nil {
			next = newKWNode()
			node.children[ch] = next
		}
		node = next
	}
	node.output = append(node.output, index)
}

// buildFailureLinks wires each state to its longest proper suffix state, BFS order.
func (m *KeywordMatcher) buildFailureLinks() {
	queue := make([]*kwNode, 0, len(m.root.children))
	for _, child := range m.root.children {
		child.failure = m.root
		queue = append(queue, child)
	}

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for ch, child := range current.children {
			queue = append(queue, child)

			fail := current.failure
			for fail != nil && fail.children[ch] == nil {
				fail = fail.failure
			}
			if fail == nil {
				child.failure = m.root
				continue
			}
			child.failure = fail.children[ch]
			child.output = append(child.output, child.failure.output...)
		}
	}
}

// step advances the automaton by one rune.
func (m *KeywordMatcher) step(node *kwNode, ch rune) *kwNode {
	for node != nil && node.children[ch] == nil {
		node = node.failure
	}
	if node == nil {
		return m.root
	}
	return node.children[ch]
}

// Contains reports whether any keyword occurs in text.
func (m *KeywordMatcher) Contains(text string) bool {
	_, ok := m.First(text)
	return ok
}

// First returns the first keyword that completes while scanning text.
func (m *KeywordMatcher) First(text string) (string, bool) {
	if len(m.keywords) == 0 {
		return "", false
	}

	node := m.root
	for _, ch := range strings.ToLower(text) {
		node = m.step(node, ch)
		if len(node.output) > 0 {
			return m.keywords[node.output[0]], true
		}
	}
	return "", false
}

// FindAll returns every keyword occurrence in text, overlapping ones included.
func (m *KeywordMatcher) FindAll(text string) []KeywordMatch {
	if len(m.keywords) == 0 {
		return nil
	}

	var matches []KeywordMatch
	lowered := strings.ToLower(text)
	node := m.root
	for i, ch := range lowered {
		node = m.step(node, ch)
		end := i + len(string(ch))
		for _, idx := range node.output {
			kw := m.keywords[idx]
			matches = append(matches, KeywordMatch{Keyword: kw, Position: end - len(kw)})
		}
	}
	return matches
}

// Len returns the number of distinct keywords.
func (m *KeywordMatcher) Len() int {
	return len(m.keywords)
}
