package logging

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCorrelationHandlerInjectsScopeIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCorrelationHandler(slog.NewTextHandler(&buf, nil)))

	ctx := WithScope(context.Background(), "p1", "w1")
	logger.InfoContext(ctx, "hello")

	out := buf.String()
	assert.Contains(t, out, "project_id=p1")
	assert.Contains(t, out, "workflow_id=w1")
}

func TestCorrelationHandlerSkipsMissingIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(NewCorrelationHandler(slog.NewTextHandler(&buf, nil)))

	logger.InfoContext(context.Background(), "hello")

	out := buf.String()
	assert.NotContains(t, out, "project_id")
	assert.NotContains(t, out, "workflow_id")
}

func TestScopeAccessors(t *testing.T) {
	ctx := WithScope(context.Background(), "p1", "w1")
	assert.Equal(t, "p1", ProjectID(ctx))
	assert.Equal(t, "w1", WorkflowID(ctx))
	assert.Empty(t, ProjectID(context.Background()))
}
