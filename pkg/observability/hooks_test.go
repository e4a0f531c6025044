package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	d := NoopDesignerHooks{}
	d.OnMutation("create", "field", "input-text-1", nil)
	d.OnPropertyChange("input-text-1", "properties", "placeholder")
	d.OnScopeReject("drop", "field#other-1")

	r := NoopRenderHooks{}
	r.OnRenderStart("html")
	r.OnRenderComplete("html", 512, time.Millisecond, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "artifact")
	c.OnCacheMiss(ctx, "artifact")
	c.OnCacheSet(ctx, "artifact", 1024)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Designer().(NoopDesignerHooks); !ok {
		t.Error("Designer() should return NoopDesignerHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}

	customDesigner := &testDesignerHooks{}
	SetDesignerHooks(customDesigner)
	if Designer() != customDesigner {
		t.Error("SetDesignerHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	Reset()
	if _, ok := Designer().(NoopDesignerHooks); !ok {
		t.Error("Reset() should restore NoopDesignerHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testDesignerHooks{}
	SetDesignerHooks(custom)
	SetDesignerHooks(nil)

	if Designer() != custom {
		t.Error("SetDesignerHooks(nil) should be ignored")
	}

	Reset()
}

type testDesignerHooks struct{ NoopDesignerHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
