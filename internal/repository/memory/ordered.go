// Package memory implements the repository interfaces with in-process maps.
package memory

import "sync"

// ordered is a mutex guarded map that remembers insertion order.
type ordered[K comparable, V any] struct {
	mu     sync.RWMutex
	values map[K]V
	keys   []K
}

func newOrdered[K comparable, V any]() *ordered[K, V] {
	return &ordered[K, V]{values: make(map[K]V)}
}

func (o *ordered[K, V]) get(key K) (V, bool) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	v, ok := o.values[key]
	return v, ok
}

func (o *ordered[K, V]) put(key K, v V) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = v
}

func (o *ordered[K, V]) update(key K, fn func(V)) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	v, ok := o.values[key]
	if ok {
		fn(v)
	}
	return ok
}

func (o *ordered[K, V]) remove(key K) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	if _, ok := o.values[key]; !ok {
		return false
	}
	delete(o.values, key)
	for i, k := range o.keys {
		if k == key {
			o.keys = append(o.keys[:i], o.keys[i+1:]...)
			break
		}
	}
	return true
}

func (o *ordered[K, V]) each(fn func(V)) {
	o.mu.RLock()
	defer o.mu.RUnlock()
	for _, k := range o.keys {
		fn(o.values[k])
	}
}

func (o *ordered[K, V]) count() int {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return len(o.values)
}

func (o *ordered[K, V]) clear() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.values = make(map[K]V)
	o.keys = nil
}
