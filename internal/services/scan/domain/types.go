// Package domain defines the types and interfaces for the scan service
package domain

// ScanResult summarizes one participant-day scan
type ScanResult struct {
	// Periods is how many merged nonwear periods were persisted
	Periods int
	// MaskMinutes is the length of the regenerated classification mask
	MaskMinutes int
	// NonwearMinutes is how many minutes of the mask are classified nonwear
	NonwearMinutes int
	// Mirrored is true when the mask was written to the columnar sink
	Mirrored bool
}
