package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Ashira-hub/online-ordering-system/internal/config"
	"github.com/Ashira-hub/online-ordering-system/internal/domain"
)

// PostgresStore is the durable accounts backend, selected when a DB host
// is configured. Uniqueness rides on a unique index over lower(email).
type PostgresStore struct {
	db *sql.DB
}

func NewPostgresStore(cfg config.AccountsDBConfig) (*PostgresStore, error) {
	psqlconn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)

	db, err := sql.Open("postgres", psqlconn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) RunMigrations(migrationsDir string) error {
	driver, err := postgres.WithInstance(s.db, &postgres.Config{
		MigrationsTable: "accounts_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		fmt.Sprintf("file://%s", migrationsDir),
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

func (s *PostgresStore) Create(ctx context.Context, name, email, password string) (*domain.Account, error) {
	acct := domain.Account{
		ID:       "u_" + uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: password,
	}

	query := `INSERT INTO accounts (id, name, email, password, created_at)
	          VALUES ($1, $2, $3, $4, NOW())
	          RETURNING created_at`

	err := s.db.QueryRowContext(ctx, query, acct.ID, acct.Name, acct.Email, acct.Password).
		Scan(&acct.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert account: %w", err)
	}
	return &acct, nil
}

func (s *PostgresStore) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT id, name, email, password, created_at
	          FROM accounts WHERE lower(email) = lower($1)`

	var acct domain.Account
	err := s.db.QueryRowContext(ctx, query, email).Scan(
		&acct.ID, &acct.Name, &acct.Email, &acct.Password, &acct.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAccountNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query account by email: %w", err)
	}
	return &acct, nil
}

func (s *PostgresStore) Verify(ctx context.Context, email, password string) (*domain.Account, error) {
	acct, err := s.GetByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if acct.Password != password {
		return nil, ErrInvalidCredentials
	}
	return acct, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete account rows affected: %w", err)
	}
	if affected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]domain.Account, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, email, password, created_at FROM accounts ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var out []domain.Account
	for rows.Next() {
		var acct domain.Account
		if err := rows.Scan(&acct.ID, &acct.Name, &acct.Email, &acct.Password, &acct.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		out = append(out, acct)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}
