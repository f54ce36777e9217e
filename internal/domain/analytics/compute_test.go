package analytics

import (
	"testing"
	"time"

	"perftrack/internal/domain/goals"
	"perftrack/internal/domain/identity"
	"perftrack/internal/domain/reviews"
)

func intPtr(v int) *int       { return &v }
func strPtr(v string) *string { return &v }

func TestCompletionRate(t *testing.T) {
	if got := completionRate(1, 3); got != 33.33 {
		t.Fatalf("completionRate(1,3) = %v, want 33.33", got)
	}
	if got := completionRate(0, 0); got != 0 {
		t.Fatalf("completionRate(0,0) = %v, want 0", got)
	}
	if got := completionRate(2, 2); got != 100 {
		t.Fatalf("completionRate(2,2) = %v, want 100", got)
	}
}

func TestBuildDashboard(t *testing.T) {
	eng := strPtr("Engineering")
	sales := strPtr("Sales")
	employees := []identity.User{
		{ID: 1, Department: eng},
		{ID: 2, Department: eng},
		{ID: 3, Department: sales},
		{ID: 4},
	}
	goalRows := []GoalRow{
		{EmployeeID: 1, Status: goals.StatusCompleted},
		{EmployeeID: 2, Status: goals.StatusActive},
		{EmployeeID: 3, Status: goals.StatusDraft},
	}
	reviewRows := []ReviewRow{
		{RevieweeID: 1, OverallRating: intPtr(4), TechnicalSkills: intPtr(5), Status: reviews.StatusCompleted},
		{RevieweeID: 2, OverallRating: intPtr(3), Status: reviews.StatusDraft},
		// No overall rating: excluded from every rating average.
		{RevieweeID: 3, TechnicalSkills: intPtr(1), Status: reviews.StatusDraft},
	}

	d := buildDashboard(employees, goalRows, reviewRows)

	if d.GoalCompletionRate != 33.33 {
		t.Fatalf("goal completion = %v, want 33.33", d.GoalCompletionRate)
	}
	if d.ReviewCompletionRate != 33.33 {
		t.Fatalf("review completion = %v, want 33.33", d.ReviewCompletionRate)
	}
	if d.AverageRatings.Overall != 3.5 {
		t.Fatalf("overall average = %v, want 3.5", d.AverageRatings.Overall)
	}
	if d.AverageRatings.Technical != 5 {
		t.Fatalf("technical average = %v, want 5 (unrated review excluded)", d.AverageRatings.Technical)
	}
	if d.AverageRatings.Leadership != 0 {
		t.Fatalf("leadership average = %v, want 0 for empty sample", d.AverageRatings.Leadership)
	}
	if d.TotalEmployees != 4 || d.TotalGoals != 3 || d.TotalReviews != 3 {
		t.Fatalf("totals = %d/%d/%d", d.TotalEmployees, d.TotalGoals, d.TotalReviews)
	}

	if len(d.DepartmentBreakdown) != 2 {
		t.Fatalf("department breakdown len = %d, want 2", len(d.DepartmentBreakdown))
	}
	if d.DepartmentBreakdown[0].Department != "Engineering" || d.DepartmentBreakdown[0].Count != 2 {
		t.Fatalf("first department = %+v", d.DepartmentBreakdown[0])
	}
}

func TestBuildDashboardEmpty(t *testing.T) {
	d := buildDashboard(nil, nil, nil)
	if d.GoalCompletionRate != 0 || d.ReviewCompletionRate != 0 || d.AverageRatings.Overall != 0 {
		t.Fatalf("empty dashboard should be all zeros: %+v", d)
	}
}

func TestBuildTrends(t *testing.T) {
	now := time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	rows := []ReviewRow{
		{OverallRating: intPtr(4), CreatedAt: now.AddDate(0, -1, 0)},
		{OverallRating: intPtr(2), CreatedAt: now.AddDate(0, -1, -3)},
		{OverallRating: intPtr(5), CreatedAt: now},
		// Outside the trailing year.
		{OverallRating: intPtr(1), CreatedAt: now.AddDate(-2, 0, 0)},
		// Unrated reviews never count.
		{CreatedAt: now},
	}

	trends := buildTrends(rows, now)
	if len(trends) != 2 {
		t.Fatalf("trend months = %d, want 2", len(trends))
	}
	if trends[0].Month != "2026-02" || trends[1].Month != "2026-03" {
		t.Fatalf("months not ascending: %v %v", trends[0].Month, trends[1].Month)
	}
	if trends[0].AverageRating != 3 || trends[0].ReviewCount != 2 {
		t.Fatalf("2026-02 = %+v, want avg 3 over 2 reviews", trends[0])
	}
	if trends[1].AverageRating != 5 || trends[1].ReviewCount != 1 {
		t.Fatalf("2026-03 = %+v", trends[1])
	}
}

func TestBuildTeamComparison(t *testing.T) {
	reports := []identity.User{
		{ID: 3, FullName: "Ann Lee"},
		{ID: 4, FullName: "Bo Chen"},
	}
	goalRows := []GoalRow{
		{EmployeeID: 3, Status: goals.StatusCompleted},
		{EmployeeID: 3, Status: goals.StatusActive},
	}
	older := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	newer := older.AddDate(0, 2, 0)
	reviewRows := []ReviewRow{
		{RevieweeID: 3, OverallRating: intPtr(2), CreatedAt: older},
		{RevieweeID: 3, OverallRating: intPtr(4), CreatedAt: newer},
	}

	team := buildTeamComparison(reports, goalRows, reviewRows)
	if len(team) != 2 {
		t.Fatalf("team rows = %d, want 2", len(team))
	}
	if team[0].OverallRating == nil || *team[0].OverallRating != 4 {
		t.Fatalf("latest rating not picked: %+v", team[0])
	}
	if team[0].GoalCompletionRate != 50 || team[0].TotalGoals != 2 {
		t.Fatalf("goal stats = %+v", team[0])
	}
	if team[1].OverallRating != nil || team[1].TotalGoals != 0 {
		t.Fatalf("report without data should be zeroed: %+v", team[1])
	}
}

func TestBuildDepartmentComparison(t *testing.T) {
	rows := []DeptReviewRow{
		{Department: "Engineering", RevieweeID: 1, OverallRating: intPtr(4)},
		{Department: "Engineering", RevieweeID: 1, OverallRating: intPtr(2)},
		{Department: "Engineering", RevieweeID: 2},
		{Department: "Sales", RevieweeID: 3, OverallRating: intPtr(5)},
	}

	out := buildDepartmentComparison(rows)
	if len(out) != 2 {
		t.Fatalf("departments = %d, want 2", len(out))
	}
	if out[0].Department != "Engineering" || out[0].AverageRating != 3 || out[0].EmployeeCount != 2 {
		t.Fatalf("engineering = %+v", out[0])
	}
	if out[1].Department != "Sales" || out[1].AverageRating != 5 || out[1].EmployeeCount != 1 {
		t.Fatalf("sales = %+v", out[1])
	}
}

func TestBuildSkillsGap(t *testing.T) {
	lang := strPtr("languages")
	rows := []SkillRow{
		{SkillName: "Go", Category: lang, Proficiency: 2, Target: 4},
		{SkillName: "Go", Category: lang, Proficiency: 3, Target: 4},
		{SkillName: "SQL", Proficiency: 1, Target: 5},
	}

	gaps := buildSkillsGap(rows)
	if len(gaps) != 2 {
		t.Fatalf("gap rows = %d, want 2", len(gaps))
	}
	// Largest gap first.
	if gaps[0].SkillName != "SQL" || gaps[0].GapSize != 4 {
		t.Fatalf("first gap = %+v", gaps[0])
	}
	goGap := gaps[1]
	if goGap.AverageCurrentLevel != 2.5 || goGap.AverageTargetLevel != 4 || goGap.GapSize != 1.5 {
		t.Fatalf("go gap = %+v, want 2.5/4/1.5", goGap)
	}
	if goGap.EmployeesAffected != 2 {
		t.Fatalf("employees affected = %d, want 2", goGap.EmployeesAffected)
	}
	if goGap.Category == nil || *goGap.Category != "languages" {
		t.Fatalf("category lost: %+v", goGap)
	}
}

func TestBuildSkillsGapNilVersusEmptyCategory(t *testing.T) {
	rows := []SkillRow{
		{SkillName: "Go", Proficiency: 1, Target: 3},
		{SkillName: "Go", Category: strPtr(""), Proficiency: 2, Target: 3},
	}

	gaps := buildSkillsGap(rows)
	if len(gaps) != 2 {
		t.Fatalf("gap rows = %d, want uncategorized and empty-string kept apart", len(gaps))
	}
	if gaps[0].EmployeesAffected != 1 || gaps[1].EmployeesAffected != 1 {
		t.Fatalf("groups merged: %+v", gaps)
	}
	var sawNil, sawEmpty bool
	for _, g := range gaps {
		if g.Category == nil {
			sawNil = true
		} else if *g.Category == "" {
			sawEmpty = true
		}
	}
	if !sawNil || !sawEmpty {
		t.Fatalf("categories = %+v, want one nil and one empty", gaps)
	}
}
