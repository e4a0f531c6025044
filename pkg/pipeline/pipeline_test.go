package pipeline

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/formgrid/pkg/cache"
	"github.com/matzehuels/formgrid/pkg/errors"
	"github.com/matzehuels/formgrid/pkg/layout"
)

func snapshot() layout.Snapshot {
	return layout.Snapshot{Rows: []*layout.Row{{
		ID: "row-1",
		Columns: []*layout.Column{{ID: "column-1", Width: 12, Fields: []*layout.Field{{
			ID:         "input-text-1",
			Type:       "input-text",
			Properties: map[string]any{"id": "input-text-1", "type": "text"},
		}}}},
	}}}
}

// memCache is a map-backed cache counting hits.
type memCache struct {
	data map[string][]byte
	sets int
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	d, ok := c.data[key]
	return d, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, data []byte, _ time.Duration) error {
	c.data[key] = data
	c.sets++
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error { delete(c.data, key); return nil }
func (c *memCache) Clear(context.Context) error                { clear(c.data); return nil }
func (c *memCache) Close() error                               { return nil }

var _ cache.Cache = (*memCache)(nil)

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"svg", false},
		{"dot", false},
		{"png", true},
		{"SVG", true}, // case-sensitive
		{"", true},
	}

	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestRenderCaches(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()
	opts := Options{Renderer: "bootstrap", IncludeLabels: true}

	first, hit, err := r.RenderWithCacheInfo(ctx, snapshot(), opts)
	if err != nil || hit {
		t.Fatalf("first render: hit=%v err=%v", hit, err)
	}
	if !strings.Contains(first, "form-control") {
		t.Errorf("unexpected markup:\n%s", first)
	}

	second, hit, err := r.RenderWithCacheInfo(ctx, snapshot(), opts)
	if err != nil || !hit {
		t.Fatalf("second render: hit=%v err=%v", hit, err)
	}
	if second != first {
		t.Error("cached markup differs")
	}

	// Different options miss.
	opts.Preview = true
	if _, hit, _ := r.RenderWithCacheInfo(ctx, snapshot(), opts); hit {
		t.Error("preview render should not hit the form entry")
	}
}

func TestRenderRefreshSkipsRead(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	r.Render(ctx, snapshot(), Options{})
	_, hit, err := r.RenderWithCacheInfo(ctx, snapshot(), Options{Refresh: true})
	if err != nil || hit {
		t.Errorf("refresh render: hit=%v err=%v", hit, err)
	}
	if c.sets != 2 {
		t.Errorf("sets = %d, want 2", c.sets)
	}
}

func TestRenderUnknownRenderer(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	_, err := r.Render(context.Background(), snapshot(), Options{Renderer: "xml"})
	if !errors.Is(err, errors.ErrCodeUnknownRenderer) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeUnknownRenderer)
	}
}

func TestDiagramDOT(t *testing.T) {
	c := newMemCache()
	r := NewRunner(c, nil, nil)
	ctx := context.Background()

	data, hit, err := r.DiagramWithCacheInfo(ctx, snapshot(), Options{Format: FormatDOT})
	if err != nil || hit {
		t.Fatalf("diagram: hit=%v err=%v", hit, err)
	}
	if !strings.HasPrefix(string(data), "digraph G {") {
		t.Errorf("not DOT output:\n%s", data)
	}
	if _, hit, _ := r.DiagramWithCacheInfo(ctx, snapshot(), Options{Format: FormatDOT}); !hit {
		t.Error("second diagram should hit")
	}
}

func TestDiagramInvalidFormat(t *testing.T) {
	r := NewRunner(nil, nil, nil)
	if _, err := r.Diagram(context.Background(), snapshot(), Options{Format: "pdf"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
}
