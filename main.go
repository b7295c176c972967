// =============================================================================
// Sales Analytics - Main Entry Point
// =============================================================================
//
// This is the main entry point for the Sales Analytics CLI application.
// It initializes the Cobra CLI framework and delegates command execution to
// the cmd package.
//
// USAGE:
//   analyzer analyze        - Run the full analysis pipeline on a sales export
//   analyzer validate       - Validate configuration and input without processing
//   analyzer version        - Display the application version
//
// ARCHITECTURE:
//   This application follows a modular design where:
//   - cmd/           : Contains all CLI command definitions (Cobra)
//   - internal/      : Contains core business logic (not for external import)
//   - pkg/           : Contains shared utilities
//
// =============================================================================

package main

import (
	"github.com/retailops/sales-analytics/cmd"
)

// main is the entry point of the application.
// It simply calls the Execute function from the cmd package, which
// initializes and runs the Cobra CLI.
func main() {
	cmd.Execute()
}
