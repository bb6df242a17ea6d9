package customer

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CalendarService/internal/domain"
	"github.com/m04kA/SMC-CalendarService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CalendarService/pkg/psqlbuilder"
)

var customerColumns = []string{
	"id",
	"tenant_id",
	"name",
	"email",
	"phone",
	"notes",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с клиентами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает нового клиента
func (r *Repository) Create(ctx context.Context, customer *domain.Customer) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("customers").
		Columns("tenant_id", "name", "email", "phone", "notes").
		Values(customer.TenantID, customer.Name, customer.Email, customer.Phone, customer.Notes).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&customer.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return customer, nil
}

// GetByID получает клиента тенанта по ID
func (r *Repository) GetByID(ctx context.Context, tenantID, id int64) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"id": id, "tenant_id": tenantID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	customer, err := r.scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan customer: %v", ErrScanRow, err)
	}

	return customer, nil
}

// GetByEmail получает клиента тенанта по email без учета регистра.
// При нескольких совпадениях берется клиент с наименьшим ID.
func (r *Repository) GetByEmail(ctx context.Context, tenantID int64, email string) (*domain.Customer, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(customerColumns...).
		From("customers").
		Where(squirrel.Eq{"tenant_id": tenantID}).
		Where(squirrel.Expr("LOWER(email) = LOWER(?)", email)).
		OrderBy("id").
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - build select query: %v", ErrBuildQuery, err)
	}

	customer, err := r.scanCustomer(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByEmail - scan customer: %v", ErrScanRow, err)
	}

	return customer, nil
}

// scanCustomer сканирует одну строку результата в клиента
func (r *Repository) scanCustomer(row *sql.Row) (*domain.Customer, error) {
	var customer domain.Customer
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&customer.ID,
		&customer.TenantID,
		&customer.Name,
		&customer.Email,
		&customer.Phone,
		&customer.Notes,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	customer.CreatedAt = createdAt.Time
	customer.UpdatedAt = updatedAt.Time

	return &customer, nil
}
