package threadsafe

import "sync"

type Map[K comparable, V any] struct {
	inner map[K]V
	mux   *sync.Mutex
}

func NewMap[K comparable, V any]() *Map[K, V] {
	return &Map[K, V]{
		inner: make(map[K]V),
		mux:   &sync.Mutex{},
	}
}

func (m *Map[K, V]) Set(key K, value V) {
	m.mux.Lock()
	defer m.mux.Unlock()
	m.inner[key] = value
}

func (m *Map[K, V]) Get(key K) (V, bool) {
	m.mux.Lock()
	defer m.mux.Unlock()
	v, ok := m.inner[key]
	return v, ok
}

// Pop removes and returns the value, so exactly one caller wins
// when several race for the same key.
func (m *Map[K, V]) Pop(key K) (V, bool) {
	m.mux.Lock()
	defer m.mux.Unlock()
	v, ok := m.inner[key]
	if ok {
		delete(m.inner, key)
	}
	return v, ok
}

func (m *Map[K, V]) Delete(key K) bool {
	m.mux.Lock()
	defer m.mux.Unlock()
	if _, ok := m.inner[key]; !ok {
		return false
	}
	delete(m.inner, key)
	return true
}

func (m *Map[K, V]) Len() int {
	m.mux.Lock()
	defer m.mux.Unlock()
	return len(m.inner)
}
