package config

var Presets = map[string]*Config{
	"default": DefaultConfig(),
	"precise": {
		Dimension: DefaultDimension, ShootRelTol: 1e-9, ShootAbsTol: 1e-13,
		MaxShootIters: 400, DeformTol: 0.005, MaxDeformIters: 500,
		StepScale: 0.05, Knots: 41, FDStep: 1e-7,
		RMaxScale: 1e5, OverflowFactor: 100,
	},
	"coarse": {
		Dimension: DefaultDimension, ShootRelTol: 1e-4, ShootAbsTol: 1e-8,
		MaxShootIters: 100, DeformTol: 0.05, MaxDeformIters: 100,
		StepScale: 0.2, Knots: 11, FDStep: 1e-5,
		RMaxScale: 1e3, OverflowFactor: 50,
	},
	// Settings matching the Higgs-like tutorial potential: a single field
	// tunneling out of the metastable origin in three dimensions.
	"higgs-tutorial": {
		Dimension: 2, ShootRelTol: 1e-8, ShootAbsTol: 1e-12,
		MaxShootIters: 300, DeformTol: 0.02, MaxDeformIters: 200,
		StepScale: 0.1, Knots: 2, FDStep: 1e-6,
		RMaxScale: 1e4, OverflowFactor: 100,
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	// Copy so callers cannot mutate the shared preset table.
	c := *cfg
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
