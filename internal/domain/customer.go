package domain

import "time"

// Customer клиент тенанта. Создается или находится при оформлении
// бронирования: по идентификатору либо по email без учета регистра.
type Customer struct {
	ID       int64
	TenantID int64
	Name     string
	Email    string
	Phone    string
	Notes    string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerRef данные для разрешения клиента при оформлении бронирования.
// Приоритет: ID, затем Email; без того и другого создается новый клиент
// с переданными полями.
type CustomerRef struct {
	ID    *int64
	Name  string
	Email string
	Phone string
}

// IsEmpty reports whether the reference carries nothing to resolve a customer by
func (r CustomerRef) IsEmpty() bool {
	return r.ID == nil && r.Email == "" && r.Name == ""
}
