// Steam Dashboard - Steam Market Analytics and Game Recommendations
// Copyright 2026 Phantosirius
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/Phantosirius/steam-dashboard

/*
Package cache provides the in-memory structures shared by the loaders and
the recommendation engine.

# Components

  - KeywordMatcher: Aho-Corasick multi-keyword substring matcher, used by the
    NSFW quality filter to test a name plus its genres in one pass.
  - LRU: generic least recently used cache with TTL, used for recommendation
    responses.
  - Memo: keeps the value for the latest key and deduplicates concurrent
    loads with singleflight. The dataset loader keys it by source so a
    catalog is rebuilt only when the source changes.

# Usage Example

	m := cache.NewKeywordMatcher([]string{"hentai", "nsfw"})
	if m.Contains(name) {
	    // excluded
	}

	responses := cache.NewLRU[*Response](1000, 10*time.Minute)
	responses.Add(key, resp)

# Thread Safety

All types are safe for concurrent use. KeywordMatcher is immutable after
construction and needs no locking.
*/
package cache
