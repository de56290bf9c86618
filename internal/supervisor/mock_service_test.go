// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

package supervisor

import (
	"context"
	"errors"
	"sync/atomic"
)

// mockService implements suture.Service and fails the first failCount runs.
type mockService struct {
	name       string
	failCount  int32
	startCount atomic.Int32
	stopCount  atomic.Int32
}

func newMockService(name string) *mockService {
	return &mockService{name: name}
}

func (m *mockService) Serve(ctx context.Context) error {
	n := m.startCount.Add(1)
	defer m.stopCount.Add(1)

	if n <= atomic.LoadInt32(&m.failCount) {
		return errors.New("simulated failure")
	}
	<-ctx.Done()
	return ctx.Err()
}

// setFailCount must be called before the service is added to a tree.
func (m *mockService) setFailCount(n int32) {
	atomic.StoreInt32(&m.failCount, n)
}

func (m *mockService) starts() int32 { return m.startCount.Load() }

func (m *mockService) stops() int32 { return m.stopCount.Load() }

func (m *mockService) String() string {
	return m.name
}
