package mylog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/rocketshoes/lib/mycontext"
)

func TestGcloudEntry(t *testing.T) {
	l := structuredLogger{componentName: "cart"}

	t.Run("With trace", func(t *testing.T) {
		c := context.WithValue(context.TODO(), mycontext.CtxTraceContext{}, "projects/p/traces/abc")

		got := l.entry(c, "123", SeverityWarn, "product %d out of stock", 4).String()

		assert.Equal(t, `{"component":"cart","labels":{"aggregate":"123"},"logging.googleapis.com/trace":"projects/p/traces/abc","severity":"WARN","message":"cart:product 4 out of stock"}`, got)
	})

	t.Run("Without trace", func(t *testing.T) {
		got := l.entry(context.TODO(), "", SeverityInfo, "hello").String()

		assert.Equal(t, `{"component":"cart","labels":{"aggregate":""},"severity":"INFO","message":"cart:hello"}`, got)
	})
}

func TestStandardLogger(t *testing.T) {
	logger := newStandardLogger("cart")

	assert.NotPanics(t, func() {
		logger.Log(context.TODO(), "123", SeverityDebug, "debug %s", "x")
		logger.Log(context.TODO(), "123", SeverityInfo, "info")
		logger.Log(context.TODO(), "123", SeverityWarn, "warn")
		logger.Log(context.TODO(), "123", SeverityError, "error")
	})
}

var (
	_ Logger = structuredLogger{}
	_ Logger = standardLogger{}
)
