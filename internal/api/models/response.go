package models

// SolveResponse represents the response from a solve run
type SolveResponse struct {
	State       string            `json:"state"`  // final composer state
	Status      string            `json:"status"` // solver termination status
	Costs       *CostBreakdown    `json:"costs,omitempty"`
	GenCap      []GenCapacity     `json:"gen_cap,omitempty"`
	VarGenCap   []VarGenCapacity  `json:"var_gen_cap,omitempty"`
	StorageCap  []StorageCapacity `json:"storage_cap,omitempty"`
	OutputsDir  string            `json:"outputs_dir,omitempty"`
	DumpWritten bool              `json:"dump_written,omitempty"`
}

// CostBreakdown mirrors the costs_itemized.csv components
type CostBreakdown struct {
	CostPerTimepoint float64 `json:"cost_per_timepoint"`
	CostPerPeriod    float64 `json:"cost_per_period"`
	TotalCost        float64 `json:"total_cost"`
}

// GenCapacity is one stage-1 generator's installed capacity
type GenCapacity struct {
	GenName  string  `json:"gen_name"`
	Capacity float64 `json:"capacity_mw"`
}

// VarGenCapacity is one stage-2 generator's per-scenario installed capacity
type VarGenCapacity struct {
	GenName  string  `json:"gen_name"`
	Scenario string  `json:"scenario_name"`
	Capacity float64 `json:"capacity_mw"`
}

// StorageCapacity is one storage unit's installed power and energy capacity
type StorageCapacity struct {
	StorageName string  `json:"storage_name"`
	PowerCap    float64 `json:"power_capacity_mw"`
	EnergyCap   float64 `json:"energy_capacity_mwh"`
}

// ValidateResponse summarizes a successfully loaded and validated system
type ValidateResponse struct {
	Valid      bool   `json:"valid"`
	SlackBus   string `json:"slack_bus,omitempty"`
	Buses      int    `json:"buses"`
	Lines      int    `json:"lines"`
	Generators int    `json:"generators"`
	VarGens    int    `json:"variable_generators"`
	Storages   int    `json:"storages"`
	Scenarios  int    `json:"scenarios"`
	Timepoints int    `json:"timepoints"`
}

// CongestionResponse lists buses ranked by flow-limit bind frequency
type CongestionResponse struct {
	Status string          `json:"status"`
	Ranks  []CongestionRow `json:"ranks"`
}

// CongestionRow is one bus's bind statistics
type CongestionRow struct {
	BusName       string  `json:"bus_name"`
	BindCount     int     `json:"bind_count"`
	TotalSamples  int     `json:"total_samples"`
	BindFrequency float64 `json:"bind_frequency"`
}

// ErrorResponse is the error envelope every handler returns on failure
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes a single error
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
