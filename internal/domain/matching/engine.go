package matching

import "github.com/google/uuid"

// Profile is the slice of a user the engine needs: what they teach and what
// they want to learn. Skill names match case-sensitively and exactly.
type Profile struct {
	UserID      uuid.UUID
	DisplayName string
	TeachNames  []string
	LearnNames  []string
}

// MutualMatch is a connection with reciprocal skill overlap: they teach at
// least one thing I want, and they want at least one thing I teach. It is
// derived fresh on every computation and never persisted.
type MutualMatch struct {
	UserID            uuid.UUID
	DisplayName       string
	TeachesWhatILearn []string
	WantsWhatITeach   []string
}

// Mutual computes the mutual matches among connections. Result order follows
// the connections slice; no ranking by overlap size is applied. Running it
// twice on the same inputs yields identical output.
func Mutual(me Profile, connections []Profile) []MutualMatch {
	myTeach := nameSet(me.TeachNames)
	myLearn := nameSet(me.LearnNames)

	out := make([]MutualMatch, 0)
	for _, conn := range connections {
		teaches := intersect(conn.TeachNames, myLearn)
		wants := intersect(conn.LearnNames, myTeach)
		if len(teaches) == 0 || len(wants) == 0 {
			continue
		}
		out = append(out, MutualMatch{
			UserID:            conn.UserID,
			DisplayName:       conn.DisplayName,
			TeachesWhatILearn: teaches,
			WantsWhatITeach:   wants,
		})
	}
	return out
}

func nameSet(names []string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, n := range names {
		set[n] = struct{}{}
	}
	return set
}

// intersect keeps the elements of names present in set, preserving names
// order and dropping duplicates.
func intersect(names []string, set map[string]struct{}) []string {
	out := make([]string, 0)
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if _, ok := set[n]; !ok {
			continue
		}
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
