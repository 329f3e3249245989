package constants

// Seniority roles, ordered. Rank comparisons use RoleRank, never string
// comparison.
const (
	RoleJunior = "junior"
	RoleSenior = "senior"
	RoleLead   = "lead"
	RoleAdmin  = "admin"
)

var roleRanks = map[string]int{
	RoleJunior: 0,
	RoleSenior: 1,
	RoleLead:   2,
	RoleAdmin:  3,
}

// RoleRank returns the position of a role in the seniority ladder, or -1 for
// an unknown role so that unknown roles never pass an AtLeast check.
func RoleRank(role string) int {
	rank, ok := roleRanks[role]
	if !ok {
		return -1
	}
	return rank
}

// RoleAtLeast reports whether role ranks at or above threshold.
func RoleAtLeast(role, threshold string) bool {
	return RoleRank(role) >= RoleRank(threshold) && RoleRank(role) >= 0
}

// ValidRole reports whether role is one of the four known roles.
func ValidRole(role string) bool {
	_, ok := roleRanks[role]
	return ok
}
