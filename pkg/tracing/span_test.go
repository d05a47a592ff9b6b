package tracing

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpanTree(t *testing.T) {
	ctx, root := StartSpan(context.Background(), "batch", "run-1")
	_, child := StartChildSpan(ctx, "map_query")
	child.SetAttr("query", "bwa")
	child.End()
	root.End()

	assert.Equal(t, root, SpanFromContext(ctx))
	require.Len(t, root.Children(), 1)
	assert.Equal(t, "run-1", root.Children()[0].TraceID)
	assert.GreaterOrEqual(t, root.Duration(), root.Children()[0].Duration())
}

func TestDetachedChild(t *testing.T) {
	ctx, span := StartChildSpan(context.Background(), "orphan")
	assert.Empty(t, span.TraceID)
	assert.Equal(t, span, SpanFromContext(ctx))
	assert.Nil(t, SpanFromContext(context.Background()))
}

func TestConcurrentChildren(t *testing.T) {
	ctx, root := StartSpan(context.Background(), "batch", "run")
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, s := StartChildSpan(ctx, "q")
			s.End()
		}()
	}
	wg.Wait()
	assert.Len(t, root.Children(), 16)
}

func TestLogOnlyAtDebug(t *testing.T) {
	ctx, root := StartSpan(context.Background(), "batch", "run")
	_, child := StartChildSpan(ctx, "map_query")
	child.SetAttr("b", 2)
	child.SetAttr("a", 1)
	child.End()
	root.End()

	var buf bytes.Buffer
	root.Log(ctx, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo})))
	assert.Empty(t, buf.String())

	root.Log(ctx, slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "span=batch")
	assert.Contains(t, lines[1], "depth=1 a=1 b=2")
}
