package forms

import "Backend-Feedback/src/models"

// CanView: admins, the assigned teacher and the creating teacher.
func CanView(user *models.CurrentUser, form *models.Form) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return form.IsAssignedTo(user.ID) || form.CreatedBy == user.ID
}

// CanManage covers toggling and deleting: admins and the assigned teacher.
func CanManage(user *models.CurrentUser, form *models.Form) bool {
	if user == nil {
		return false
	}
	return user.IsAdmin() || form.IsAssignedTo(user.ID)
}
