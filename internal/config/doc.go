// SPDX-License-Identifier: MIT

// Package config loads and validates the service configuration.
//
// Precedence is ENV > file > defaults. The YAML file is parsed strictly:
// unknown keys fail the load so typos cannot silently fall back to
// defaults. Environment variables use the OLMAPI_ prefix.
package config
