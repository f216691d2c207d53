package doctor

import (
	"context"
	"fmt"

	"github.com/doeshing/envsync/internal/application/envsync"
	"github.com/doeshing/envsync/internal/domain"
	"github.com/doeshing/envsync/internal/ports"
)

// Service runs read-only diagnostics over config, manifest, env file and history.
type Service struct {
	ConfigProvider ports.ConfigProvider
	Sync           *envsync.Service
	History        ports.HistoryRepository
}

// Run executes checks and returns a report. The error is non-nil only when
// the configuration itself cannot be loaded.
func (s *Service) Run(ctx context.Context, startDir string) (domain.HealthReport, error) {
	var checks []domain.HealthCheck

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		checks = append(checks, fail("Config", fmt.Sprintf("load failed: %v", err)))
		return domain.HealthReport{Checks: checks}, err
	}
	checks = append(checks, ok("Config", fmt.Sprintf("format v%s, manifest %s, env file %s", cfg.ConfigFormatVersion, cfg.ManifestName, cfg.EnvFile)))

	checks = append(checks, s.syncChecks(ctx, cfg, startDir)...)
	checks = append(checks, s.historyCheck(ctx, cfg))

	return domain.HealthReport{Checks: checks}, nil
}

func (s *Service) syncChecks(ctx context.Context, cfg domain.Config, startDir string) []domain.HealthCheck {
	if s.Sync == nil {
		return []domain.HealthCheck{warn("Manifest", "sync service not initialized")}
	}

	manifestPath, err := s.Sync.Locator.Locate(startDir)
	if err != nil {
		return []domain.HealthCheck{fail("Manifest", err.Error())}
	}
	checks := []domain.HealthCheck{ok("Manifest", manifestPath)}

	schema, declared, err := s.Sync.Reader.ReadSchema(manifestPath)
	switch {
	case err != nil:
		return append(checks, fail("Schema", err.Error()))
	case !declared:
		return append(checks, warn("Schema", fmt.Sprintf("no %s declared; nothing to sync", cfg.SchemaField)))
	default:
		checks = append(checks, ok("Schema", fmt.Sprintf("%d keys declared", len(schema))))
	}

	plan, err := s.Sync.Plan(ctx, startDir)
	if err != nil {
		return append(checks, fail("Env file", err.Error()))
	}
	existing, err := s.Sync.Store.Read(plan.EnvPath)
	switch {
	case err != nil:
		checks = append(checks, fail("Env file", err.Error()))
	case len(existing) == 0:
		checks = append(checks, warn("Env file", fmt.Sprintf("%s missing or empty; run sync to create it", plan.EnvPath)))
	default:
		checks = append(checks, ok("Env file", fmt.Sprintf("%s has %d entries", plan.EnvPath, len(existing))))
	}

	if n := len(plan.Warnings); n > 0 {
		checks = append(checks, warn("Types", fmt.Sprintf("%d value(s) would be replaced by defaults", n)))
	} else {
		checks = append(checks, ok("Types", "existing values match the schema"))
	}
	return checks
}

func (s *Service) historyCheck(ctx context.Context, cfg domain.Config) domain.HealthCheck {
	if !cfg.History.Enabled {
		return warn("History", "disabled")
	}
	if s.History == nil {
		return warn("History", "store not initialized")
	}
	runs, err := s.History.List(ctx, 1)
	if err != nil {
		return fail("History", err.Error())
	}
	if len(runs) == 0 {
		return ok("History", "no runs recorded yet")
	}
	return ok("History", fmt.Sprintf("last run %s", runs[0].Timestamp.Local().Format("2006-01-02 15:04:05")))
}

func ok(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthOK, Details: details}
}

func warn(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthWarn, Details: details}
}

func fail(name, details string) domain.HealthCheck {
	return domain.HealthCheck{Name: name, Status: domain.HealthError, Details: details}
}
