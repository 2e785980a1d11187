// Package calibration measures the mod_limb strategies on the current machine
// and derives the limb-count crossovers used by limbs.ModLimbWith.
//
// A calibration run times ModLimbWith under pairs of forced threshold sets, one
// pair per crossover, and keeps the first length at which the right-hand
// configuration wins. Results are persisted as a JSON profile keyed to the
// hardware (CPU count, architecture, word size, CPU features) so later verify
// and bench runs can reuse them with --use-profile.
package calibration
