// Package observability provides hooks for metrics, tracing, and logging.
//
// Libraries in this module call hooks at interesting points (a structural
// mutation, a render, a scope rejection, a cache lookup) without depending
// on any backend. A program registers its own implementations at startup;
// until then every hook is a no-op.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDesignerHooks(&myDesignerHooks{})
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	observability.Render().OnRenderStart("bootstrap")
//	// ... render ...
//	observability.Render().OnRenderComplete("bootstrap", len(out), time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Designer Hooks
// =============================================================================

// DesignerHooks receives events from the layout designer.
type DesignerHooks interface {
	// OnMutation records a structural operation on the layout tree. kind is
	// the node kind ("row", "column", "field", "root") and err is nil on
	// success.
	OnMutation(op, kind, nodeID string, err error)

	// OnPropertyChange records a property edit.
	OnPropertyChange(nodeID, section, property string)

	// OnScopeReject records an operation refused because its target lies
	// outside the designer's boundary.
	OnScopeReject(op, target string)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from renderer strategies.
type RenderHooks interface {
	OnRenderStart(renderer string)
	OnRenderComplete(renderer string, size int, duration time.Duration, err error)
}

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from cache operations.
type CacheHooks interface {
	// OnCacheHit records a cache hit.
	OnCacheHit(ctx context.Context, keyType string)

	// OnCacheMiss records a cache miss.
	OnCacheMiss(ctx context.Context, keyType string)

	// OnCacheSet records a cache write.
	OnCacheSet(ctx context.Context, keyType string, size int)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDesignerHooks is a no-op implementation of DesignerHooks.
type NoopDesignerHooks struct{}

func (NoopDesignerHooks) OnMutation(string, string, string, error) {}
func (NoopDesignerHooks) OnPropertyChange(string, string, string)  {}
func (NoopDesignerHooks) OnScopeReject(string, string)             {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRenderStart(string)                               {}
func (NoopRenderHooks) OnRenderComplete(string, int, time.Duration, error) {}

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)      {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)     {}
func (NoopCacheHooks) OnCacheSet(context.Context, string, int) {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	designerHooks DesignerHooks = NoopDesignerHooks{}
	renderHooks   RenderHooks   = NoopRenderHooks{}
	cacheHooks    CacheHooks    = NoopCacheHooks{}
	hooksMu       sync.RWMutex
)

// SetDesignerHooks registers custom designer hooks.
// This should be called once at application startup.
func SetDesignerHooks(h DesignerHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		designerHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// Designer returns the registered designer hooks.
func Designer() DesignerHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return designerHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	designerHooks = NoopDesignerHooks{}
	renderHooks = NoopRenderHooks{}
	cacheHooks = NoopCacheHooks{}
}
