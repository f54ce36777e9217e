package analytics

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"

	"perftrack/internal/domain/goals"
	"perftrack/internal/domain/identity"
	"perftrack/internal/domain/reviews"
)

const trendWindow = 365 * 24 * time.Hour

// round2 rounds to 2 decimal places; every exported rate and average goes
// through it.
func round2(v float64) float64 {
	rounded, err := stats.Round(v, 2)
	if err != nil {
		return 0
	}
	return rounded
}

// mean returns 0 for an empty sample instead of an error, per the
// divide-by-zero contract of every rollup.
func mean(sample []float64) float64 {
	if len(sample) == 0 {
		return 0
	}
	m, err := stats.Mean(sample)
	if err != nil {
		return 0
	}
	return m
}

func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return round2(float64(completed) / float64(total) * 100)
}

func buildDashboard(employees []identity.User, goalRows []GoalRow, reviewRows []ReviewRow) Dashboard {
	completedGoals := 0
	for _, g := range goalRows {
		if g.Status == goals.StatusCompleted {
			completedGoals++
		}
	}
	completedReviews := 0
	for _, r := range reviewRows {
		if r.Status == reviews.StatusCompleted {
			completedReviews++
		}
	}

	// Rating averages run over reviews that carry an overall rating; within
	// that subset each dimension ignores its own absent values.
	var overall, technical, communication, leadership, teamwork []float64
	appendRating := func(sample *[]float64, v *int) {
		if v != nil {
			*sample = append(*sample, float64(*v))
		}
	}
	for _, r := range reviewRows {
		if r.OverallRating == nil {
			continue
		}
		appendRating(&overall, r.OverallRating)
		appendRating(&technical, r.TechnicalSkills)
		appendRating(&communication, r.Communication)
		appendRating(&leadership, r.Leadership)
		appendRating(&teamwork, r.Teamwork)
	}

	counts := map[string]int{}
	for _, u := range employees {
		if u.Department != nil {
			counts[*u.Department]++
		}
	}
	breakdown := make([]DepartmentCount, 0, len(counts))
	for dept, count := range counts {
		breakdown = append(breakdown, DepartmentCount{Department: dept, Count: count})
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Department < breakdown[j].Department })

	return Dashboard{
		GoalCompletionRate:   completionRate(completedGoals, len(goalRows)),
		ReviewCompletionRate: completionRate(completedReviews, len(reviewRows)),
		AverageRatings: RatingAverages{
			Overall:       round2(mean(overall)),
			Technical:     round2(mean(technical)),
			Communication: round2(mean(communication)),
			Leadership:    round2(mean(leadership)),
			Teamwork:      round2(mean(teamwork)),
		},
		DepartmentBreakdown: breakdown,
		TotalEmployees:      len(employees),
		TotalGoals:          len(goalRows),
		TotalReviews:        len(reviewRows),
	}
}

// buildTrends buckets rated reviews from the trailing 365 days by calendar
// month, ascending.
func buildTrends(reviewRows []ReviewRow, now time.Time) []TrendPoint {
	cutoff := now.Add(-trendWindow)
	samples := map[string][]float64{}
	for _, r := range reviewRows {
		if r.OverallRating == nil || r.CreatedAt.Before(cutoff) {
			continue
		}
		month := r.CreatedAt.Format("2006-01")
		samples[month] = append(samples[month], float64(*r.OverallRating))
	}

	trends := make([]TrendPoint, 0, len(samples))
	for month, sample := range samples {
		trends = append(trends, TrendPoint{
			Month:         month,
			AverageRating: round2(mean(sample)),
			ReviewCount:   len(sample),
		})
	}
	sort.Slice(trends, func(i, j int) bool { return trends[i].Month < trends[j].Month })
	return trends
}

// buildTeamComparison produces one row per direct report: latest review
// rating (nil when the report has none), goal completion rate and goal count.
func buildTeamComparison(reports []identity.User, goalRows []GoalRow, reviewRows []ReviewRow) []TeamMember {
	latest := map[int64]ReviewRow{}
	for _, r := range reviewRows {
		current, ok := latest[r.RevieweeID]
		if !ok || r.CreatedAt.After(current.CreatedAt) {
			latest[r.RevieweeID] = r
		}
	}

	totals := map[int64]int{}
	completed := map[int64]int{}
	for _, g := range goalRows {
		totals[g.EmployeeID]++
		if g.Status == goals.StatusCompleted {
			completed[g.EmployeeID]++
		}
	}

	team := make([]TeamMember, 0, len(reports))
	for _, report := range reports {
		member := TeamMember{
			EmployeeName:       report.FullName,
			Department:         report.Department,
			GoalCompletionRate: completionRate(completed[report.ID], totals[report.ID]),
			TotalGoals:         totals[report.ID],
		}
		if review, ok := latest[report.ID]; ok {
			member.OverallRating = review.OverallRating
		}
		team = append(team, member)
	}
	return team
}

// buildDepartmentComparison averages overall ratings per department and
// counts distinct reviewed employees.
func buildDepartmentComparison(rows []DeptReviewRow) []DepartmentStats {
	samples := map[string][]float64{}
	reviewed := map[string]map[int64]bool{}
	for _, row := range rows {
		if row.OverallRating != nil {
			samples[row.Department] = append(samples[row.Department], float64(*row.OverallRating))
		}
		if reviewed[row.Department] == nil {
			reviewed[row.Department] = map[int64]bool{}
		}
		reviewed[row.Department][row.RevieweeID] = true
	}

	out := make([]DepartmentStats, 0, len(reviewed))
	for dept, employees := range reviewed {
		out = append(out, DepartmentStats{
			Department:    dept,
			AverageRating: round2(mean(samples[dept])),
			EmployeeCount: len(employees),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Department < out[j].Department })
	return out
}

type gapKey struct {
	name        string
	category    string
	categorized bool
}

// buildSkillsGap groups deficit skills by (name, category) and sorts by gap
// size descending.
func buildSkillsGap(rows []SkillRow) []SkillGap {
	type bucket struct {
		category *string
		current  []float64
		target   []float64
	}
	buckets := map[gapKey]*bucket{}
	var order []gapKey
	for _, row := range rows {
		// An absent category and an empty-string one are different groups.
		key := gapKey{name: row.SkillName}
		if row.Category != nil {
			key.category = *row.Category
			key.categorized = true
		}
		b, ok := buckets[key]
		if !ok {
			b = &bucket{category: row.Category}
			buckets[key] = b
			order = append(order, key)
		}
		b.current = append(b.current, float64(row.Proficiency))
		b.target = append(b.target, float64(row.Target))
	}

	gaps := make([]SkillGap, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		avgCurrent := mean(b.current)
		avgTarget := mean(b.target)
		gaps = append(gaps, SkillGap{
			SkillName:           key.name,
			Category:            b.category,
			AverageCurrentLevel: round2(avgCurrent),
			AverageTargetLevel:  round2(avgTarget),
			GapSize:             round2(avgTarget - avgCurrent),
			EmployeesAffected:   len(b.current),
		})
	}
	sort.SliceStable(gaps, func(i, j int) bool { return gaps[i].GapSize > gaps[j].GapSize })
	return gaps
}
