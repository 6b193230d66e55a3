package domain

import (
	"context"

	epochsdom "wearlog/internal/services/epochs/domain"
	periodsdom "wearlog/internal/services/periods/domain"
)

// RunnerPort is the external port for the scan job
type RunnerPort interface {
	RunDay(ctx context.Context, day epochsdom.Day) (ScanResult, error)
}

// Ports are dependencies injected into the scan module
type Ports struct {
	Epochs  epochsdom.ReaderPort    // required
	Periods periodsdom.ReplacerPort // required
}
