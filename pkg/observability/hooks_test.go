package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	m := NoopMetricHooks{}
	m.OnCountStart(ctx, "ring", 100)
	m.OnCountComplete(ctx, "ring", "sweep", 42, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "metric")
	c.OnCacheMiss(ctx, "metric")
	c.OnCacheSet(ctx, "metric", 1024)

	h := NoopHTTPHooks{}
	h.OnRequest(ctx, "POST", "/api/v1/crossings")
	h.OnResponse(ctx, "POST", "/api/v1/crossings", 200, time.Second)
	h.OnError(ctx, "POST", "/api/v1/crossings", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Metric().(NoopMetricHooks); !ok {
		t.Error("Metric() should return NoopMetricHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := HTTP().(NoopHTTPHooks); !ok {
		t.Error("HTTP() should return NoopHTTPHooks by default")
	}

	customMetric := &testMetricHooks{}
	SetMetricHooks(customMetric)
	if Metric() != customMetric {
		t.Error("SetMetricHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customHTTP := &testHTTPHooks{}
	SetHTTPHooks(customHTTP)
	if HTTP() != customHTTP {
		t.Error("SetHTTPHooks should set custom hooks")
	}

	Reset()
	if _, ok := Metric().(NoopMetricHooks); !ok {
		t.Error("Reset() should restore NoopMetricHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testMetricHooks{}
	SetMetricHooks(custom)
	SetMetricHooks(nil)

	if Metric() != custom {
		t.Error("SetMetricHooks(nil) should be ignored")
	}

	Reset()
}

type testMetricHooks struct{ NoopMetricHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testHTTPHooks struct{ NoopHTTPHooks }
