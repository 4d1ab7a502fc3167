package usecase_test

import (
	"context"
	"errors"
	"testing"

	"talent-onboarding-backend/internal/usecase"

	"github.com/stretchr/testify/assert"
)

func TestHealthUsecase_Check(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("dial tcp: connection refused") }

	status, healthy := usecase.NewHealthUsecase(map[string]usecase.HealthProbe{"redis": ok}).Check(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, map[string]string{"status": "ok", "redis": "ok"}, status)

	status, healthy = usecase.NewHealthUsecase(map[string]usecase.HealthProbe{"redis": ok, "postgres": down}).Check(context.Background())
	assert.False(t, healthy)
	assert.Equal(t, "degraded", status["status"])
	assert.Equal(t, "dial tcp: connection refused", status["postgres"])
	assert.Equal(t, "ok", status["redis"])
}

func TestHealthUsecase_NoProbes(t *testing.T) {
	status, healthy := usecase.NewHealthUsecase(nil).Check(context.Background())
	assert.True(t, healthy)
	assert.Equal(t, "ok", status["status"])
}
