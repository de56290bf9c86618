// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// LoadFunc produces the value for a key.
type LoadFunc[V any] func(ctx context.Context, key string) (V, error)

// Memo holds the value computed for the most recent key. Asking for the same
// key again returns the stored value; asking for a different key recomputes
// and replaces it. Concurrent requests for one key share a single load.
// Failed loads are not stored.
type Memo[V any] struct {
	mu    sync.RWMutex
	key   string
	value V
	valid bool

	group singleflight.Group
}

// NewMemo returns an empty memo.
func NewMemo[V any]() *Memo[V] {
	return &Memo[V]{}
}

// Get returns the value for key, calling load only when key differs from
// the stored one. cached reports whether the stored value was reused.
func (m *Memo[V]) Get(ctx context.Context, key string, load LoadFunc[V]) (value V, cached bool, err error) {
	if v, ok := m.lookup(key); ok {
		return v, true, nil
	}

	res, err, _ := m.group.Do(key, func() (any, error) {
		// Another caller may have finished loading while this one waited.
		if v, ok := m.lookup(key); ok {
			return v, nil
		}

		v, loadErr := load(ctx, key)
		if loadErr != nil {
			return nil, loadErr
		}

		m.mu.Lock()
		m.key = key
		m.value = v
		m.valid = true
		m.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, false, err
	}
	return res.(V), false, nil
}

// Current returns the stored value and its key.
func (m *Memo[V]) Current() (value V, key string, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value, m.key, m.valid
}

// Set stores value for key, replacing whatever was held.
func (m *Memo[V]) Set(key string, value V) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.key = key
	m.value = value
	m.valid = true
}

// Reset forgets the stored value so the next Get reloads.
func (m *Memo[V]) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	m.key = ""
	m.value = zero
	m.valid = false
}

func (m *Memo[V]) lookup(key string) (V, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.valid && m.key == key {
		return m.value, true
	}
	var zero V
	return zero, false
}
