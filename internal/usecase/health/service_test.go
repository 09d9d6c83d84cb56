package health

import (
	"context"
	"errors"
	"testing"
)

type mockPinger struct{ err error }

func (m *mockPinger) Ping(_ context.Context) error { return m.err }

type mockChecker struct{ err error }

func (m *mockChecker) HealthCheck(_ context.Context) error { return m.err }

func TestCheck_AllHealthy(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("expected healthy, got %s", report.Status)
	}
	if report.Checks["cache"] != CheckOK || report.Checks["object_store"] != CheckOK {
		t.Errorf("unexpected checks: %+v", report.Checks)
	}
}

func TestCheck_CacheDown(t *testing.T) {
	svc := New(&mockPinger{err: errors.New("refused")}, &mockChecker{})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Fatalf("expected degraded, got %s", report.Status)
	}
	if report.Checks["cache"] != CheckError {
		t.Errorf("unexpected checks: %+v", report.Checks)
	}
}

func TestCheck_StorageDown(t *testing.T) {
	svc := New(&mockPinger{}, &mockChecker{err: errors.New("timeout")})

	report := svc.Check(context.Background())
	if report.Status != Degraded {
		t.Fatalf("expected degraded, got %s", report.Status)
	}
}

func TestCheck_NilDependencies(t *testing.T) {
	svc := New(nil, nil)

	report := svc.Check(context.Background())
	if report.Status != Healthy {
		t.Fatalf("expected healthy with no checks, got %s", report.Status)
	}
	if len(report.Checks) != 0 {
		t.Errorf("expected no checks, got %+v", report.Checks)
	}
}
