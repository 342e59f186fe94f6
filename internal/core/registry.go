package core

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrPageNotFound is returned for an unregistered page key.
	ErrPageNotFound = errors.New("page not found")

	// ErrViewNotFound is returned for an unregistered view key.
	ErrViewNotFound = errors.New("view not found")
)

var (
	pages      = make(map[string]PageDefinition)
	views      = make(map[string]ViewDefinition)
	registryMu sync.RWMutex
)

// RegisterPage adds a page definition to the registry.
// Panics if a page with the same key is already registered.
func RegisterPage(def PageDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := pages[def.Info.Key]; exists {
		panic(fmt.Sprintf("page already registered: %s", def.Info.Key))
	}
	pages[def.Info.Key] = def
}

// RegisterView adds a view definition to the registry.
// Panics if a view with the same key is already registered.
func RegisterView(def ViewDefinition) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if _, exists := views[def.Info.Key]; exists {
		panic(fmt.Sprintf("view already registered: %s", def.Info.Key))
	}
	if def.Resource == "" && def.Source == nil {
		panic(fmt.Sprintf("view %s has neither resource nor source", def.Info.Key))
	}
	views[def.Info.Key] = def
}

// GetPage returns a page definition by key.
func GetPage(key string) (PageDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := pages[key]
	return def, ok
}

// GetView returns a view definition by key.
func GetView(key string) (ViewDefinition, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	def, ok := views[key]
	return def, ok
}

// Pages returns all registered pages.
// Sorted by order then by key for consistent ordering.
func Pages() []PageDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]PageDefinition, 0, len(pages))
	for _, def := range pages {
		result = append(result, def)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Order != result[j].Info.Order {
			return result[i].Info.Order < result[j].Info.Order
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// ViewsForPage returns the views shown on a page.
// Sorted by order then by key.
func ViewsForPage(page string) []ViewDefinition {
	registryMu.RLock()
	defer registryMu.RUnlock()

	var result []ViewDefinition
	for _, def := range views {
		if def.Info.Page == page {
			result = append(result, def)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Info.Order != result[j].Info.Order {
			return result[i].Info.Order < result[j].Info.Order
		}
		return result[i].Info.Key < result[j].Info.Key
	})

	return result
}

// PageCount returns the number of registered pages.
func PageCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(pages)
}

// ViewCount returns the number of registered views.
func ViewCount() int {
	registryMu.RLock()
	defer registryMu.RUnlock()
	return len(views)
}

// Clear removes all registered pages and views.
// Primarily useful for testing.
func Clear() {
	registryMu.Lock()
	defer registryMu.Unlock()
	pages = make(map[string]PageDefinition)
	views = make(map[string]ViewDefinition)
}
