package conversions

import (
	"reflect"
	"sync"
)

// targetCache memoizes resolution results per source type and requested
// target. Misses are cached too: the absent marker is distinct from "not yet
// computed", so a fruitless linear scan runs at most once per key. Concurrent
// callers racing on an uncomputed key may both run the resolver; resolution
// is pure, so last write wins without affecting correctness. Entries are
// never evicted: the universe of queried pairs is the finite domain model.
type targetCache struct {
	sources sync.Map // reflect.Type -> *targetTypes
}

// targetTypes holds the per-source inner level.
type targetTypes struct {
	source  reflect.Type
	targets sync.Map // reflect.Type -> reflect.Type
}

type (
	anyTarget    struct{}
	absentTarget struct{}
)

var (
	// anyTargetKey stands in for the target-less query form.
	anyTargetKey = reflect.TypeOf(anyTarget{})
	// absentMarker is the cached "no match" sentinel.
	absentMarker = reflect.TypeOf(absentTarget{})
)

type resolver func(source, requested reflect.Type) reflect.Type

// computeIfAbsent returns the cached target for (source, requested), invoking
// resolve on a miss and caching the outcome. requested may be nil for the
// target-less form. The third result reports whether the cache was hit.
func (c *targetCache) computeIfAbsent(source, requested reflect.Type, resolve resolver) (reflect.Type, bool, bool) {
	var entry *targetTypes
	if v, ok := c.sources.Load(source); ok {
		entry = v.(*targetTypes)
	} else {
		v, _ := c.sources.LoadOrStore(source, &targetTypes{source: source})
		entry = v.(*targetTypes)
	}
	return entry.computeIfAbsent(requested, resolve)
}

func (t *targetTypes) computeIfAbsent(requested reflect.Type, resolve resolver) (reflect.Type, bool, bool) {
	key := requested
	if key == nil {
		key = anyTargetKey
	}
	if v, ok := t.targets.Load(key); ok {
		cached := v.(reflect.Type)
		if cached == absentMarker {
			return nil, false, true
		}
		return cached, true, true
	}

	resolved := resolve(t.source, requested)
	stored := resolved
	if stored == nil {
		stored = absentMarker
	}
	t.targets.Store(key, stored)
	return resolved, resolved != nil, false
}
