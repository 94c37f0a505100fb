package dto

// AdminStatsResponse aggregates system-wide counters for the admin
// dashboard.
type AdminStatsResponse struct {
	TotalUsers        int64            `json:"total_users"`
	ActiveUsers       int64            `json:"active_users"`
	UsersByRole       map[string]int64 `json:"users_by_role"`
	TotalCustomers    int64            `json:"total_customers"`
	CustomersByStatus map[string]int64 `json:"customers_by_status"`
	TotalNotes        int64            `json:"total_notes"`
	ActiveSessions    int64            `json:"active_sessions"`
	NewUsers24h       int64            `json:"new_users_24h"`
	NewCustomers24h   int64            `json:"new_customers_24h"`
}

// AdminUserListItem is the admin view of a user, including how many
// customers they own.
type AdminUserListItem struct {
	UserResponse
	CustomerCount int64 `json:"customer_count"`
}
