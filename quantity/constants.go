package quantity

// Physical constants in SI units (CODATA 2018 exact values).
const (
	PlanckConstant    = 6.62607015e-34 // J s
	BoltzmannConstant = 1.380649e-23   // J K^-1
	SpeedOfLight      = 2.99792458e8   // m s^-1
)
