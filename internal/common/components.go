package common

const (
	ComponentScanLoop    = "scan-loop"
	ComponentRPCSource   = "rpc-source"
	ComponentStore       = "store"
	ComponentBatchWriter = "batch-writer"
	ComponentMetrics     = "metrics"
	ComponentCLI         = "cli"
)

var AllComponents = map[string]struct{}{
	ComponentScanLoop:    {},
	ComponentRPCSource:   {},
	ComponentStore:       {},
	ComponentBatchWriter: {},
	ComponentMetrics:     {},
	ComponentCLI:         {},
}
