// Package match evaluates signal condition filters against sighting data.
package match

import (
	"github.com/sightnet/signals-backend-go/internal/domain"
	"github.com/sightnet/signals-backend-go/internal/reputation"
)

// MatchesConditions reports whether a sighting satisfies a signal's
// conditions. Absent fields impose no constraint; an empty or nil condition
// set matches every sighting. Specified predicates are combined with the
// conditions' operator: AND (the default) requires all to hold, OR requires
// at least one.
func MatchesConditions(conditions *domain.SignalConditions, data domain.SightingMatchData) bool {
	if conditions.IsEmpty() {
		return true
	}

	var results []bool

	if len(conditions.CategoryIDs) > 0 {
		results = append(results, containsCategory(conditions.CategoryIDs, data.CategoryID))
	}
	if len(conditions.TypeIDs) > 0 {
		results = append(results, containsType(conditions.TypeIDs, data.TypeID))
	}
	if len(conditions.Tags) > 0 {
		results = append(results, anyTagMatches(conditions.Tags, data.Tags))
	}
	if len(conditions.Importance) > 0 {
		results = append(results, containsImportance(conditions.Importance, data.Importance))
	}
	if conditions.MinTrustLevel != "" {
		results = append(results, reputation.Rank(data.ReporterTrustLevel) >= reputation.Rank(conditions.MinTrustLevel))
	}
	if conditions.MinScore != nil {
		results = append(results, data.Score >= *conditions.MinScore)
	}
	if conditions.MaxScore != nil {
		results = append(results, data.Score <= *conditions.MaxScore)
	}

	if conditions.Operator == domain.OperatorOr {
		for _, r := range results {
			if r {
				return true
			}
		}
		return false
	}

	for _, r := range results {
		if !r {
			return false
		}
	}
	return true
}

func containsCategory(ids []domain.CategoryID, id domain.CategoryID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsType(ids []domain.TypeID, id domain.TypeID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

func containsImportance(levels []domain.Importance, level domain.Importance) bool {
	for _, v := range levels {
		if v == level {
			return true
		}
	}
	return false
}

// anyTagMatches returns true if any wanted tag appears in the sighting's tag
// set (OR semantics within the tags field).
func anyTagMatches(wanted, have []string) bool {
	set := make(map[string]bool, len(have))
	for _, t := range have {
		set[t] = true
	}
	for _, t := range wanted {
		if set[t] {
			return true
		}
	}
	return false
}
