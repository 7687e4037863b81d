package domain

import "sort"

// Reconcile matches every roster user against the fetched alert set and
// derives the per-user last-alert summary. Users are processed in roster
// order and each produces exactly one result. Matching loops over alerts,
// not candidates, so an alert contributes to a user at most once even when
// several of its location candidates match.
//
// Reconcile is pure: persisting the derived values is the caller's job, and
// only users with at least one match should ever be written back.
func Reconcile(users []User, alerts []AlertRecord, matcher *Matcher) []ReconciliationResult {
	if matcher == nil {
		matcher = NewMatcher()
	}

	results := make([]ReconciliationResult, 0, len(users))
	for _, u := range users {
		var matched []AlertRecord
		for _, a := range alerts {
			if matcher.Matches(u.City, a.Location) {
				matched = append(matched, a)
			}
		}
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].AlertDate.Before(matched[j].AlertDate)
		})

		res := ReconciliationResult{
			Name:     u.Name,
			City:     u.City,
			Alerts:   make([]MatchedAlert, 0, len(matched)),
			Previous: u.LastAlert,
		}
		for _, a := range matched {
			res.Alerts = append(res.Alerts, MatchedAlert{Date: a.Date, Time: a.Time})
		}
		if n := len(res.Alerts); n > 0 {
			last := res.Alerts[n-1]
			res.LastAlert = &last
		}
		results = append(results, res)
	}
	return results
}
