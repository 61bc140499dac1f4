// =============================================================================
// UPN Tools - Main Entry Point
// =============================================================================
//
// USAGE:
//   upn convert   - Convert the payer list to ArrayOfUPN XML
//   upn align     - Overlay the UPN form PDF on printed slips
//   upn config    - Show the effective conversion settings
//   upn version   - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Conversion, validation and PDF alignment
//   - pkg/           : Shared file utilities
//   - magefiles/     : Build targets (mage)
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/upn-tools/cmd"
)

func main() {
	cmd.Execute()
}
