package notifications

// NotificationInterface defines the contract for delivering generated reports
type NotificationInterface interface {
	SendReport(username, filename string, report []byte) error
}
