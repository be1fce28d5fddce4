package observability

import (
	"context"
	"testing"

	"github.com/online-bazar/bazar-backend/logger"
)

func TestParseHeaders(t *testing.T) {
	got := parseHeaders(" api-key = abc ,bad, =x, tenant=shop ")
	if len(got) != 2 || got["api-key"] != "abc" || got["tenant"] != "shop" {
		t.Fatalf("headers: %v", got)
	}
	if parseHeaders("") != nil {
		t.Fatal("empty input should give nil")
	}
}

func TestSampleRatioClamps(t *testing.T) {
	tests := map[string]float64{"": 0.1, "junk": 0.1, "0.5": 0.5, "-1": 0, "7": 1}
	for raw, want := range tests {
		t.Setenv("OTEL_SAMPLER_RATIO", raw)
		if got := otelSampleRatio(); got != want {
			t.Errorf("%q: got=%v want=%v", raw, got, want)
		}
	}
}

func TestInitOTelDisabledIsNoop(t *testing.T) {
	t.Setenv("OTEL_ENABLED", "false")
	shutdown := InitOTel(context.Background(), logger.Nop(), OtelConfig{})
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown: %v", err)
	}
}
