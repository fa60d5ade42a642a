package utils

// NotificationStatus mirrors the colour a panel toast is rendered with
type NotificationStatus string

const (
	NotificationSuccess NotificationStatus = "success"
	NotificationDanger  NotificationStatus = "danger"
)

// Notification is the toast shown after a create, edit or delete action
type Notification struct {
	Title  string             `json:"title"`
	Body   string             `json:"body,omitempty"`
	Status NotificationStatus `json:"status"`
}

func SuccessNotification(title, body string) Notification {
	return Notification{Title: title, Body: body, Status: NotificationSuccess}
}

// FailureNotification is used for every terminal failure; the user resubmits
func FailureNotification(body string) Notification {
	return Notification{Title: "Something went wrong", Body: body, Status: NotificationDanger}
}
