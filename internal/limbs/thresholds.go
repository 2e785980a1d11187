package limbs

// ModThresholds holds the limb-count crossover points used by ModLimbWith to
// pick a reduction strategy. Lengths strictly below a threshold use the
// cheaper strategy on its left.
type ModThresholds struct {
	// Norm and Unnorm are the lengths from which the schoolbook strategies
	// switch from hardware division to division by preinversion.
	Norm   int `json:"mod_1_norm"`
	Unnorm int `json:"mod_1_unnorm"`

	// Mod1NToMod11 applies to normalized divisors (high bit set).
	Mod1NToMod11 int `json:"mod_1n_to_mod_1_1"`
	// Mod1UToMod11 applies to unnormalized divisors.
	Mod1UToMod11 int `json:"mod_1u_to_mod_1_1"`
	Mod11ToMod12 int `json:"mod_1_1_to_mod_1_2"`
	Mod12ToMod14 int `json:"mod_1_2_to_mod_1_4"`

	// Mod11PMethod selects ModLimbAnyLeadingZeros1 over
	// ModLimbAnyLeadingZeros2.
	Mod11PMethod bool `json:"mod_1_1p_method"`
}

// DefaultModThresholds returns the tuned thresholds for the current limb
// width.
func DefaultModThresholds() ModThresholds {
	if Width == 32 {
		return ModThresholds{
			Mod1NToMod11: 3,
			Mod1UToMod11: 3,
			Mod11ToMod12: 15,
			Mod12ToMod14: 43,
			Mod11PMethod: true,
		}
	}
	return ModThresholds{
		Mod1NToMod11: 3,
		Mod11ToMod12: 6,
		Mod12ToMod14: 26,
	}
}

// bmodToModThreshold is the dividend length from which congruence modulo a
// single odd limb is settled with ModLimb instead of ModExactOdd.
const bmodToModThreshold = 31 + (Width/64)*(100000000-31)
