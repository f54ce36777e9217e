package access

import (
	"context"
	"reflect"
	"testing"

	"perftrack/internal/domain/identity"
	"perftrack/internal/domain/reviews"
)

type fakeDirectory struct {
	active  []int64
	reports map[int64][]int64
}

func (f *fakeDirectory) ActiveUserIDs(ctx context.Context) ([]int64, error) {
	return f.active, nil
}

func (f *fakeDirectory) DirectReportIDs(ctx context.Context, managerID int64) ([]int64, error) {
	return f.reports[managerID], nil
}

func int64Ptr(v int64) *int64 { return &v }

func TestVisibleEmployeeIDs(t *testing.T) {
	resolver := NewResolver(&fakeDirectory{
		active:  []int64{1, 2, 3, 4},
		reports: map[int64][]int64{2: {3, 4}},
	})
	ctx := context.Background()

	admin, err := resolver.VisibleEmployeeIDs(ctx, AuthContext{UserID: 1, Role: identity.RoleAdmin})
	if err != nil {
		t.Fatalf("admin resolve: %v", err)
	}
	if !reflect.DeepEqual(admin, []int64{1, 2, 3, 4}) {
		t.Fatalf("admin sees %v, want all active", admin)
	}

	manager, err := resolver.VisibleEmployeeIDs(ctx, AuthContext{UserID: 2, Role: identity.RoleManager})
	if err != nil {
		t.Fatalf("manager resolve: %v", err)
	}
	if !reflect.DeepEqual(manager, []int64{3, 4, 2}) {
		t.Fatalf("manager sees %v, want reports plus self", manager)
	}

	employee, err := resolver.VisibleEmployeeIDs(ctx, AuthContext{UserID: 3, Role: identity.RoleEmployee})
	if err != nil {
		t.Fatalf("employee resolve: %v", err)
	}
	if !reflect.DeepEqual(employee, []int64{3}) {
		t.Fatalf("employee sees %v, want only self", employee)
	}
}

func TestCanReadUser(t *testing.T) {
	manager := AuthContext{UserID: 2, Role: identity.RoleManager}
	report := identity.User{ID: 3, ManagerID: int64Ptr(2)}
	stranger := identity.User{ID: 5, ManagerID: int64Ptr(9)}

	if !CanReadUser(manager, report) {
		t.Fatal("manager should read a direct report")
	}
	if CanReadUser(manager, stranger) {
		t.Fatal("manager should not read someone else's report")
	}
	if !CanReadUser(AuthContext{UserID: 3, Role: identity.RoleEmployee}, report) {
		t.Fatal("employee should read own record")
	}
	if CanReadUser(AuthContext{UserID: 3, Role: identity.RoleEmployee}, stranger) {
		t.Fatal("employee should not read another record")
	}
	if !CanReadUser(AuthContext{UserID: 1, Role: identity.RoleAdmin}, stranger) {
		t.Fatal("admin should read anyone")
	}
}

func TestCanWriteUser(t *testing.T) {
	report := identity.User{ID: 3, ManagerID: int64Ptr(2)}

	if CanWriteUser(AuthContext{UserID: 3, Role: identity.RoleEmployee}, report) {
		t.Fatal("employees never update employee records")
	}
	if !CanWriteUser(AuthContext{UserID: 2, Role: identity.RoleManager}, report) {
		t.Fatal("manager should update a direct report")
	}
	self := identity.User{ID: 2, ManagerID: int64Ptr(1)}
	if CanWriteUser(AuthContext{UserID: 2, Role: identity.RoleManager}, self) {
		t.Fatal("manager writes are limited to reports, not self")
	}
}

func TestCanAccessOwned(t *testing.T) {
	cases := []struct {
		name    string
		caller  AuthContext
		ownerID int64
		mgrID   *int64
		want    bool
	}{
		{"owner", AuthContext{UserID: 3, Role: identity.RoleEmployee}, 3, int64Ptr(2), true},
		{"other employee", AuthContext{UserID: 4, Role: identity.RoleEmployee}, 3, int64Ptr(2), false},
		{"owner's manager", AuthContext{UserID: 2, Role: identity.RoleManager}, 3, int64Ptr(2), true},
		{"unrelated manager", AuthContext{UserID: 7, Role: identity.RoleManager}, 3, int64Ptr(2), false},
		{"manager own record", AuthContext{UserID: 2, Role: identity.RoleManager}, 2, nil, true},
		{"admin", AuthContext{UserID: 1, Role: identity.RoleAdmin}, 3, int64Ptr(2), true},
	}
	for _, tc := range cases {
		if got := CanAccessOwned(tc.caller, tc.ownerID, tc.mgrID); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestCanApproveGoal(t *testing.T) {
	if !CanApproveGoal(AuthContext{UserID: 2, Role: identity.RoleManager}, int64Ptr(2)) {
		t.Fatal("manager should approve a report's goal")
	}
	if CanApproveGoal(AuthContext{UserID: 7, Role: identity.RoleManager}, int64Ptr(2)) {
		t.Fatal("unrelated manager should not approve")
	}
	if CanApproveGoal(AuthContext{UserID: 3, Role: identity.RoleEmployee}, int64Ptr(2)) {
		t.Fatal("employee should never approve")
	}
	if !CanApproveGoal(AuthContext{UserID: 1, Role: identity.RoleAdmin}, nil) {
		t.Fatal("admin should approve even without a manager link")
	}
}

func TestCanReadReview(t *testing.T) {
	review := reviews.Review{ID: 10, RevieweeID: 3, ReviewerID: 5}

	// The reviewer keeps access to a review they authored even when the
	// reviewee is outside their visibility set.
	if !CanReadReview(AuthContext{UserID: 5, Role: identity.RoleEmployee}, review, int64Ptr(2)) {
		t.Fatal("reviewer should read an authored review")
	}
	if !CanReadReview(AuthContext{UserID: 3, Role: identity.RoleEmployee}, review, int64Ptr(2)) {
		t.Fatal("reviewee should read their own review")
	}
	if CanReadReview(AuthContext{UserID: 6, Role: identity.RoleEmployee}, review, int64Ptr(2)) {
		t.Fatal("uninvolved employee should not read the review")
	}
	if !CanReadReview(AuthContext{UserID: 2, Role: identity.RoleManager}, review, int64Ptr(2)) {
		t.Fatal("reviewee's manager should read the review")
	}
	if CanReadReview(AuthContext{UserID: 8, Role: identity.RoleManager}, review, int64Ptr(2)) {
		t.Fatal("unrelated manager should not read the review")
	}
}

func TestCanWriteReview(t *testing.T) {
	review := reviews.Review{ID: 10, RevieweeID: 3, ReviewerID: 5}

	if !CanWriteReview(AuthContext{UserID: 5, Role: identity.RoleEmployee}, review) {
		t.Fatal("reviewer should update their review")
	}
	if CanWriteReview(AuthContext{UserID: 3, Role: identity.RoleEmployee}, review) {
		t.Fatal("reviewee should not update a review about them")
	}
	if !CanWriteReview(AuthContext{UserID: 1, Role: identity.RoleAdmin}, review) {
		t.Fatal("admin should update any review")
	}
}

func TestReviewCreateDenial(t *testing.T) {
	employee := AuthContext{UserID: 3, Role: identity.RoleEmployee}
	manager := AuthContext{UserID: 2, Role: identity.RoleManager}

	if msg := ReviewCreateDenial(employee, reviews.TypeManager, 4, int64Ptr(2)); msg != "Only managers can give manager reviews" {
		t.Fatalf("employee manager-review denial = %q", msg)
	}
	if msg := ReviewCreateDenial(manager, reviews.TypeManager, 4, int64Ptr(9)); msg != "You can only review your direct reports" {
		t.Fatalf("wrong-manager denial = %q", msg)
	}
	if msg := ReviewCreateDenial(manager, reviews.TypeManager, 4, int64Ptr(2)); msg != "" {
		t.Fatalf("manager review of own report denied: %q", msg)
	}
	if msg := ReviewCreateDenial(employee, reviews.TypeSelf, 4, int64Ptr(2)); msg != "You can only create self-reviews for yourself" {
		t.Fatalf("self-review mismatch denial = %q", msg)
	}
	if msg := ReviewCreateDenial(employee, reviews.TypeSelf, 3, nil); msg != "" {
		t.Fatalf("own self-review denied: %q", msg)
	}
	if msg := ReviewCreateDenial(employee, reviews.TypePeer, 4, int64Ptr(2)); msg != "" {
		t.Fatalf("peer review denied: %q", msg)
	}
}
