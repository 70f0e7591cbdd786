package loader

import (
	"os"
	"path/filepath"
	"testing"
)

func writeInputs(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	inputs := filepath.Join(dir, "inputs")
	if err := os.MkdirAll(inputs, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(inputs, name), []byte(content), 0o644); err != nil {
			t.Fatalf("WriteFile %s: %v", name, err)
		}
	}
}

func twoBusInputs() map[string]string {
	return map[string]string{
		"scenarios.csv": "name,probability\ns1,1\n",
		"buses.csv":     "name,slack\nA,true\nB,false\n",
		"lines.csv":     "name,from_bus,to_bus,rate,r,x,g,b\nl1,A,B,100,0.01,0.1,0,0\n",
		"generators.csv": "name,bus_name,c2,c1,c0,invest_cost,exist_cap,cap_limit,var_om_cost\n" +
			"gn1,A,0,10,0,5,0,1000,0\n",
		"energy_storage.csv": "name,bus_name,invest_cost,exist_power_cap,exist_energy_cap,var_om_cost,efficiency,duration\n",
		"timeseries.csv":     "id,name,duration_of_timepoints,number_timepoints,scale_to_period\n0,ts1,1,1,1\n",
		"timepoints.csv":     "id,name,timeseries_name\n0,t0,ts1\n",
		"loads.csv":          "bus_name,scenario_name,timepoint_name,mw\nB,s1,t0,50\n",
		"capacity_factors.csv": "generator_name,scenario_name,timepoint_name,cf\n",
		"max_diffangle.csv":    "max_diffangle_degrees\n30\n",
	}
}

func TestLoadAssemblesValidSystem(t *testing.T) {
	dir := t.TempDir()
	writeInputs(t, dir, twoBusInputs())

	sys, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(sys.Buses) != 2 {
		t.Fatalf("expected 2 buses, got %d", len(sys.Buses))
	}
	if sys.SlackBus != "A" {
		t.Fatalf("expected slack bus A, got %q", sys.SlackBus)
	}
	if got := sys.Loads.At("B", "s1", 0); got != 50 {
		t.Fatalf("expected load 50 at bus B, got %g", got)
	}
	if sys.Policy.MaxDiffAngleRadians <= 0 {
		t.Fatalf("expected a positive angle limit in radians, got %g", sys.Policy.MaxDiffAngleRadians)
	}
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	dir := t.TempDir()
	inputs := twoBusInputs()
	delete(inputs, "buses.csv")
	writeInputs(t, dir, inputs)

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for a missing buses.csv")
	}
}

func TestLoadFailsOnMissingColumn(t *testing.T) {
	dir := t.TempDir()
	inputs := twoBusInputs()
	inputs["buses.csv"] = "name\nA\nB\n" // missing slack column
	writeInputs(t, dir, inputs)

	if _, err := Load(dir); err == nil {
		t.Fatalf("expected an error for a missing slack column")
	}
}

func TestLoadTagsVariableGeneratorsFromCapacityFactors(t *testing.T) {
	dir := t.TempDir()
	inputs := twoBusInputs()
	inputs["generators.csv"] = "name,bus_name,c2,c1,c0,invest_cost,exist_cap,cap_limit,var_om_cost\n" +
		"gn1,A,0,10,0,5,0,1000,0\n" +
		"gv1,B,0,0,0,0,0,1000,0\n"
	inputs["capacity_factors.csv"] = "generator_name,scenario_name,timepoint_name,cf\ngv1,s1,t0,1\n"
	writeInputs(t, dir, inputs)

	sys, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	gv := sys.Generators[sys.GenIndex["gv1"]]
	if !gv.IsVariable() {
		t.Fatalf("expected gv1 to be tagged variable")
	}
	gn := sys.Generators[sys.GenIndex["gn1"]]
	if gn.IsVariable() {
		t.Fatalf("expected gn1 to remain dispatchable")
	}
}
