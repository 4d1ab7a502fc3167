package usecase

import (
	"context"
	"sort"
	"time"
)

// HealthProbe checks one backing dependency
type HealthProbe func(ctx context.Context) error

type HealthUsecase interface {
	// Check runs every probe and reports "ok" or the error per dependency,
	// plus whether all of them passed.
	Check(ctx context.Context) (map[string]string, bool)
}

type healthUsecase struct {
	probes map[string]HealthProbe
}

func NewHealthUsecase(probes map[string]HealthProbe) HealthUsecase {
	return &healthUsecase{probes: probes}
}

func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	names := make([]string, 0, len(u.probes))
	for name := range u.probes {
		names = append(names, name)
	}
	sort.Strings(names)

	result := map[string]string{"status": "ok"}
	healthy := true
	for _, name := range names {
		if err := u.probes[name](ctx); err != nil {
			result[name] = err.Error()
			healthy = false
			continue
		}
		result[name] = "ok"
	}
	if !healthy {
		result["status"] = "degraded"
	}
	return result, healthy
}
