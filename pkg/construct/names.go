package construct

import "strconv"

func stateName(i int) string {
	return "q" + strconv.Itoa(i)
}

// uniqueName returns base, or base followed by primes until it is not taken.
// The returned name is marked as taken.
func uniqueName(taken map[string]bool, base string) string {
	name := base
	for taken[name] {
		name += "'"
	}
	taken[name] = true
	return name
}
