package constants

// Order status values.
const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPreparing = "preparing"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

// Website login session status values. A session leaves "pending"
// exactly once; every other status is terminal.
const (
	LoginStatusPending      = "pending"
	LoginStatusApproved     = "approved"
	LoginStatusRejected     = "rejected"
	LoginStatusUnauthorized = "unauthorized"
	LoginStatusExpired      = "expired"
)

// User role values.
const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"
)

// Product type values.
const (
	ProductTypeSale   = "sale"
	ProductTypeRental = "rental"
)

// Rental billing period values.
const (
	RentalTimeUnitHour  = "hour"
	RentalTimeUnitDay   = "day"
	RentalTimeUnitWeek  = "week"
	RentalTimeUnitMonth = "month"
)

// Queue names.
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// Async task type names.
const (
	TaskLoginSessionExpire = "login_session:expire"
	TaskLoginSessionPurge  = "login_session:purge"
)

// OrderStatuses lists every valid order status.
var OrderStatuses = []string{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusPreparing,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// IsValidOrderStatus reports whether s is a known order status.
func IsValidOrderStatus(s string) bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// IsTerminalLoginStatus reports whether a login session can no longer
// change state.
func IsTerminalLoginStatus(s string) bool {
	switch s {
	case LoginStatusApproved, LoginStatusRejected, LoginStatusUnauthorized, LoginStatusExpired:
		return true
	}
	return false
}
