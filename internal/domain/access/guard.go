package access

import (
	"perftrack/internal/domain/identity"
	"perftrack/internal/domain/reviews"
)

func managedBy(managerID *int64, callerID int64) bool {
	return managerID != nil && *managerID == callerID
}

// CanReadUser: admins always, managers their reports and themselves,
// employees only themselves.
func CanReadUser(caller AuthContext, target identity.User) bool {
	switch caller.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleManager:
		return target.ID == caller.UserID || managedBy(target.ManagerID, caller.UserID)
	default:
		return target.ID == caller.UserID
	}
}

// CanWriteUser: admins always, managers only their reports, employees never.
func CanWriteUser(caller AuthContext, target identity.User) bool {
	switch caller.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleManager:
		return managedBy(target.ManagerID, caller.UserID)
	default:
		return false
	}
}

// CanAccessOwned covers goals and skills, which share one rule for both read
// and write: the owner, the owner's manager, or an admin.
func CanAccessOwned(caller AuthContext, ownerID int64, ownerManagerID *int64) bool {
	switch caller.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleManager:
		return ownerID == caller.UserID || managedBy(ownerManagerID, caller.UserID)
	default:
		return ownerID == caller.UserID
	}
}

// CanApproveGoal: admins always, managers only for their reports' goals.
// Employees never reach this check (route is role-gated) but are refused
// anyway.
func CanApproveGoal(caller AuthContext, ownerManagerID *int64) bool {
	switch caller.Role {
	case identity.RoleAdmin:
		return true
	case identity.RoleManager:
		return managedBy(ownerManagerID, caller.UserID)
	default:
		return false
	}
}

// CanReadReview widens the owned-record rule: a reviewer may always read a
// review they authored, whoever the subject is.
func CanReadReview(caller AuthContext, review reviews.Review, revieweeManagerID *int64) bool {
	if caller.IsAdmin() {
		return true
	}
	if review.ReviewerID == caller.UserID || review.RevieweeID == caller.UserID {
		return true
	}
	if caller.IsManager() {
		return managedBy(revieweeManagerID, caller.UserID)
	}
	return false
}

// CanWriteReview covers updates and the submit transition: reviewer or admin.
func CanWriteReview(caller AuthContext, review reviews.Review) bool {
	return caller.IsAdmin() || review.ReviewerID == caller.UserID
}

// ReviewCreateDenial explains why a review may not be created; empty means
// allowed. Manager-type reviews require the caller to be an admin or the
// reviewee's manager; self-reviews require reviewee == caller.
func ReviewCreateDenial(caller AuthContext, reviewType string, revieweeID int64, revieweeManagerID *int64) string {
	if reviewType == reviews.TypeManager {
		if !caller.IsAdmin() && !caller.IsManager() {
			return "Only managers can give manager reviews"
		}
		if caller.IsManager() && !managedBy(revieweeManagerID, caller.UserID) {
			return "You can only review your direct reports"
		}
	}
	if reviewType == reviews.TypeSelf && revieweeID != caller.UserID {
		return "You can only create self-reviews for yourself"
	}
	return ""
}
