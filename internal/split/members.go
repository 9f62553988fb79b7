package split

// NormalizeMembers builds a group's final member list: the declared members
// followed by the creator, with duplicates removed while preserving first
// occurrence order. The result always contains createdBy and is identical
// for identical input; NormalizeMembers never fails. Email syntax is checked
// separately at the schema boundary.
func NormalizeMembers(createdBy string, members []string) []string {
	out := make([]string, 0, len(members)+1)
	seen := make(map[string]struct{}, len(members)+1)
	for _, m := range members {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}
	if _, ok := seen[createdBy]; !ok {
		out = append(out, createdBy)
	}
	return out
}
