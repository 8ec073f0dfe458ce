// SPDX-License-Identifier: MIT

package config

import (
	"fmt"
	"strings"

	"github.com/olmapi/olmapi/internal/mapi"
	"github.com/olmapi/olmapi/internal/validate"
)

// namedPropIDRange is the number of allocatable named-property IDs
// (0x8000 through 0xFFFE inclusive).
const namedPropIDRange = int(mapi.NamedPropIDLast-mapi.NamedPropIDFirst) + 1

// Validate validates an AppConfig using the centralized validation package.
func Validate(cfg AppConfig) error {
	v := validate.New()

	v.Directory("DataDir", cfg.DataDir, false)

	if cfg.LogLevel != "" {
		v.LogLevel("LogLevel", cfg.LogLevel)
	}

	v.HostPort("Listen", cfg.Listen)
	if cfg.MetricsListen != "" {
		v.HostPort("MetricsListen", cfg.MetricsListen)
	}
	if cfg.ReadTimeout <= 0 {
		v.AddError("ReadTimeout", "must be positive", cfg.ReadTimeout)
	}
	if cfg.WriteTimeout <= 0 {
		v.AddError("WriteTimeout", "must be positive", cfg.WriteTimeout)
	}
	if cfg.ShutdownTimeout <= 0 {
		v.AddError("ShutdownTimeout", "must be positive", cfg.ShutdownTimeout)
	}
	v.NonNegative("HTTPRateLimit", cfg.HTTPRateLimit)

	v.OneOf("Store.Backend", cfg.Store.Backend, []string{"memory", "badger", "sqlite"})
	if cfg.Store.Backend == "badger" || cfg.Store.Backend == "sqlite" {
		v.NotEmpty("Store.Path", cfg.Store.Path)
	}
	v.Range("Store.Quota", cfg.Store.Quota, 0, namedPropIDRange)

	v.OneOf("Cache.Backend", cfg.Cache.Backend, []string{"memory", "redis", "none"})
	if cfg.Cache.Backend != "none" && cfg.Cache.TTL <= 0 {
		v.AddError("Cache.TTL", "must be positive", cfg.Cache.TTL)
	}
	if cfg.Cache.Backend == "memory" && cfg.Cache.CleanupInterval <= 0 {
		v.AddError("Cache.CleanupInterval", "must be positive", cfg.Cache.CleanupInterval)
	}
	if cfg.Cache.Backend == "redis" {
		v.NotEmpty("Cache.RedisAddr", cfg.Cache.RedisAddr)
		v.NonNegative("Cache.RedisDB", cfg.Cache.RedisDB)
	}

	if cfg.Rate.CreateRate < 0 {
		v.AddError("Rate.CreateRate", "must be >= 0", cfg.Rate.CreateRate)
	}
	v.NonNegative("Rate.CreateBurst", cfg.Rate.CreateBurst)
	if cfg.Rate.CreateRate > 0 && cfg.Rate.CreateBurst == 0 {
		v.AddError("Rate.CreateBurst", "must be positive when CreateRate is set", cfg.Rate.CreateBurst)
	}

	if cfg.Export.Interval < 0 {
		v.AddError("Export.Interval", "must be >= 0", cfg.Export.Interval)
	}
	if cfg.Export.Interval > 0 {
		v.NotEmpty("Export.Path", cfg.Export.Path)
	}

	validateProfile(v, cfg.Profile)

	if cfg.Telemetry.Enabled {
		v.NotEmpty("Telemetry.Endpoint", cfg.Telemetry.Endpoint)
		v.OneOf("Telemetry.Protocol", cfg.Telemetry.Protocol, []string{"grpc", "http"})
		if cfg.Telemetry.SampleRatio < 0 || cfg.Telemetry.SampleRatio > 1 {
			v.AddError("Telemetry.SampleRatio", "must be between 0 and 1", cfg.Telemetry.SampleRatio)
		}
	}

	if !v.IsValid() {
		return v.Err()
	}
	return nil
}

func validateProfile(v *validate.Validator, p ProfileConfig) {
	v.NotEmpty("Profile.Name", p.Name)
	if len(p.Stores) == 0 {
		v.AddError("Profile.Stores", "profile needs at least one store", nil)
		return
	}

	defaults := 0
	seen := map[string]struct{}{}
	for _, s := range p.Stores {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			v.AddError("Profile.Stores", "store name must not be empty", s.Name)
			continue
		}
		if _, dup := seen[name]; dup {
			v.AddError("Profile.Stores", fmt.Sprintf("duplicate store name %q", name), name)
			continue
		}
		seen[name] = struct{}{}
		if s.Default {
			defaults++
		}
	}
	if defaults > 1 {
		v.AddError("Profile.Stores", "only one store may be the default", defaults)
	}
}
