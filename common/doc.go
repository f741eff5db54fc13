// Package common provides shared constants, errors, interfaces, and the
// application logger used throughout NetBar.
//
// This package is the foundation for cross-cutting concerns:
//
//   - Constants: application identifiers, file names, timing defaults
//   - Errors: sentinel errors for consistent handling across packages
//   - Interfaces: small abstractions for logging
//   - Logger: leveled logging with optional rotated file output
//
// # Usage
//
//	import "github.com/yllada/netbar/common"
//
//	common.LogInfo("primary connection changed to %s", id)
//
//	if errors.Is(err, common.ErrServiceUnavailable) {
//	    // degrade to a fallback icon, never crash
//	}
//
// # Design Principles
//
//   - Single Responsibility: each file handles one concern
//   - Interface Segregation: small, focused interfaces
//   - Dependency Inversion: higher-level packages depend on abstractions
package common
