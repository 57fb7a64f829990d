package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/votemart/votemart/internal/domain/errors"
	"github.com/votemart/votemart/internal/domain/model"
	"github.com/votemart/votemart/internal/domain/repository"
)

// DBPool is the subset of pgxpool.Pool the storage relies on; pgxmock
// implements the same surface for tests.
type DBPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   DBPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type ledgerRepository struct {
	storage *Storage
}

type balanceRepository struct {
	storage *Storage
}

type depositRepository struct {
	storage *Storage
}

type accountRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	storage := &Storage{pool: pool, logger: logger}
	if err := storage.initSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return storage, nil
}

// Close releases database resources.
func (s *Storage) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

// Factory methods for domain repositories.
func (s *Storage) Users() repository.UserRepository {
	return &userRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) Balances() repository.BalanceRepository {
	return &balanceRepository{storage: s}
}

func (s *Storage) Deposits() repository.DepositRepository {
	return &depositRepository{storage: s}
}

func (s *Storage) Accounts() repository.AccountRepository {
	return &accountRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            is_admin BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS balances (
            user_id BIGINT PRIMARY KEY REFERENCES users(id),
            current NUMERIC(12,2) NOT NULL DEFAULT 0,
            spent NUMERIC(12,2) NOT NULL DEFAULT 0
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            kind TEXT NOT NULL,
            link TEXT NOT NULL,
            service INT NOT NULL DEFAULT 0,
            content TEXT NOT NULL DEFAULT '',
            quantity INT NOT NULL,
            speed DOUBLE PRECISION NOT NULL DEFAULT 0,
            amount NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL,
            external_order_id TEXT,
            votes_delivered INT NOT NULL DEFAULT 0,
            last_status_check TIMESTAMPTZ,
            error_message TEXT,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS deposits (
            id SERIAL PRIMARY KEY,
            user_id BIGINT NOT NULL REFERENCES users(id),
            reference UUID UNIQUE NOT NULL,
            method TEXT NOT NULL,
            amount_cents BIGINT NOT NULL,
            currency TEXT NOT NULL DEFAULT 'usd',
            provider_id TEXT NOT NULL DEFAULT '',
            status TEXT NOT NULL,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS reddit_accounts (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL,
            post_karma INT NOT NULL DEFAULT 0,
            comment_karma INT NOT NULL DEFAULT 0,
            age_years INT NOT NULL DEFAULT 0,
            profile_url TEXT NOT NULL DEFAULT '',
            price NUMERIC(12,2) NOT NULL,
            status TEXT NOT NULL DEFAULT 'available',
            sold_to BIGINT REFERENCES users(id),
            sold_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_user ON orders(user_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_tracking ON orders(status, last_status_check) WHERE external_order_id IS NOT NULL`,
		`CREATE INDEX IF NOT EXISTS idx_deposits_user ON deposits(user_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash) VALUES ($1, $2) RETURNING id, is_admin, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash).Scan(&u.ID, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, is_admin, created_at FROM users WHERE login=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, is_admin, created_at FROM users WHERE id=$1`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(&u.ID, &u.Login, &u.PasswordHash, &u.IsAdmin, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- order scanning helpers ---

const orderColumns = `id, user_id, kind, link, service, content, quantity, speed, amount, status,
                      external_order_id, votes_delivered, last_status_check, error_message, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*model.Order, error) {
	var (
		o       model.Order
		kind    string
		status  string
		service int
	)
	err := row.Scan(&o.ID, &o.UserID, &kind, &o.Link, &service, &o.Content, &o.Quantity, &o.Speed,
		&o.Amount, &status, &o.ExternalOrderID, &o.VotesDelivered, &o.LastStatusCheck,
		&o.ErrorMessage, &o.CreatedAt, &o.UpdatedAt)
	if err != nil {
		return nil, err
	}
	o.Kind = model.OrderKind(kind)
	o.Status = model.OrderStatus(status)
	o.Service = model.Service(service)
	return &o, nil
}

// lockOrder reads an order row FOR UPDATE inside a transaction.
func lockOrder(ctx context.Context, tx pgx.Tx, orderID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
	order, err := scanOrder(tx.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	order, err := scanOrder(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *orderRepository) ListAll(ctx context.Context) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *orderRepository) list(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *orderRepository) AttachExternalOrder(ctx context.Context, orderID int64, externalID string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if order.Tracked() {
			return domainErrors.ErrAlreadyExists
		}
		if !order.Status.CanTransitionTo(model.OrderStatusSubmitted) {
			return domainErrors.ErrInvalidTransition
		}
		const update = `UPDATE orders SET external_order_id=$1, status=$2, updated_at=NOW()
                        WHERE id=$3 AND external_order_id IS NULL`
		tag, err := tx.Exec(ctx, update, externalID, model.OrderStatusSubmitted, orderID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domainErrors.ErrAlreadyExists
		}
		return nil
	})
}

func (r *orderRepository) MarkDeferred(ctx context.Context, orderID int64, reason string) error {
	return r.transitionWithMessage(ctx, orderID, model.OrderStatusPendingAPISubmission, reason)
}

func (r *orderRepository) MarkSubmissionFailed(ctx context.Context, orderID int64, reason string) error {
	return r.transitionWithMessage(ctx, orderID, model.OrderStatusAPISubmissionFailed, reason)
}

func (r *orderRepository) transitionWithMessage(ctx context.Context, orderID int64, status model.OrderStatus, message string) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(status) {
			return domainErrors.ErrInvalidTransition
		}
		const update = `UPDATE orders SET status=$1, error_message=concat_ws('; ', error_message, $2::text), updated_at=NOW() WHERE id=$3`
		_, err = tx.Exec(ctx, update, status, message, orderID)
		return err
	})
}

func (r *orderRepository) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	if !status.Known() {
		return domainErrors.ErrInvalidTransition
	}
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(status) {
			return domainErrors.ErrInvalidTransition
		}
		const update = `UPDATE orders SET status=$1, updated_at=NOW() WHERE id=$2`
		_, err = tx.Exec(ctx, update, status, orderID)
		return err
	})
}

func (r *orderRepository) RecordCheckResult(ctx context.Context, orderID int64, status model.OrderStatus, votesDelivered int, checkedAt time.Time) error {
	if !status.Known() {
		return domainErrors.ErrInvalidTransition
	}
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(status) {
			return domainErrors.ErrInvalidTransition
		}

		// Delivery counter is monotonic and never exceeds the order quantity.
		votes := votesDelivered
		if votes < order.VotesDelivered {
			votes = order.VotesDelivered
		}
		if votes > order.Quantity {
			votes = order.Quantity
		}

		const update = `UPDATE orders SET status=$1, votes_delivered=$2, last_status_check=$3, updated_at=NOW() WHERE id=$4`
		_, err = tx.Exec(ctx, update, status, votes, checkedAt, orderID)
		return err
	})
}

func (r *orderRepository) TouchStatusCheck(ctx context.Context, orderID int64, checkedAt time.Time) error {
	const update = `UPDATE orders SET last_status_check=$1 WHERE id=$2`
	tag, err := r.storage.pool.Exec(ctx, update, checkedAt, orderID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}

func (r *orderRepository) SelectStaleTracked(ctx context.Context, checkedBefore time.Time, limit int) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders
              WHERE external_order_id IS NOT NULL
                AND status IN ($1, $2)
                AND (last_status_check IS NULL OR last_status_check < $3)
              ORDER BY last_status_check ASC NULLS FIRST
              LIMIT $4`
	return r.list(ctx, query, model.OrderStatusSubmitted, model.OrderStatusInProgress, checkedBefore, limit)
}

// --- LedgerRepository implementation ---

// debitBalanceTx locks the wallet row and applies the charge, failing with
// ErrInsufficientBalance and no side effects when funds do not cover it.
func debitBalanceTx(ctx context.Context, tx pgx.Tx, userID int64, amount decimal.Decimal) error {
	const balanceQuery = `SELECT current FROM balances WHERE user_id=$1 FOR UPDATE`
	current := decimal.Zero
	err := tx.QueryRow(ctx, balanceQuery, userID).Scan(&current)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	if current.LessThan(amount) {
		return domainErrors.ErrInsufficientBalance
	}

	const update = `INSERT INTO balances (user_id, current, spent)
                    VALUES ($1, -($2::numeric), $2)
                    ON CONFLICT (user_id) DO UPDATE
                    SET current = balances.current - $2,
                        spent = balances.spent + $2`
	_, err = tx.Exec(ctx, update, userID, amount)
	return err
}

func creditBalanceTx(ctx context.Context, tx pgx.Tx, userID int64, amount decimal.Decimal) error {
	const update = `INSERT INTO balances (user_id, current, spent)
                    VALUES ($1, $2, 0)
                    ON CONFLICT (user_id) DO UPDATE
                    SET current = balances.current + EXCLUDED.current`
	_, err := tx.Exec(ctx, update, userID, amount)
	return err
}

func (r *ledgerRepository) PlaceUpvoteOrder(ctx context.Context, userID int64, link string, service model.Service, quantity int, speed float64, amount decimal.Decimal) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := debitBalanceTx(ctx, tx, userID, amount); err != nil {
			return err
		}

		const insert = `INSERT INTO orders (user_id, kind, link, service, quantity, speed, amount, status)
                        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
                        RETURNING id, created_at, updated_at`
		o := model.Order{
			UserID:   userID,
			Kind:     model.OrderKindUpvote,
			Link:     link,
			Service:  service,
			Quantity: quantity,
			Speed:    speed,
			Amount:   amount,
			Status:   model.OrderStatusPending,
		}
		err := tx.QueryRow(ctx, insert, userID, o.Kind, link, int(service), quantity, speed, amount, o.Status).
			Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *ledgerRepository) PlaceCommentOrder(ctx context.Context, userID int64, link, content string, amount decimal.Decimal) (*model.Order, error) {
	var order *model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		if err := debitBalanceTx(ctx, tx, userID, amount); err != nil {
			return err
		}

		const insert = `INSERT INTO orders (user_id, kind, link, content, quantity, amount, status)
                        VALUES ($1, $2, $3, $4, 1, $5, $6)
                        RETURNING id, created_at, updated_at`
		o := model.Order{
			UserID:   userID,
			Kind:     model.OrderKindComment,
			Link:     link,
			Content:  content,
			Quantity: 1,
			Amount:   amount,
			Status:   model.OrderStatusPending,
		}
		err := tx.QueryRow(ctx, insert, userID, o.Kind, link, content, amount, o.Status).
			Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)
		if err != nil {
			return err
		}
		order = &o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *ledgerRepository) RefundOrder(ctx context.Context, orderID int64) (string, error) {
	var confirmation string
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		if !order.Status.CanTransitionTo(model.OrderStatusCancelled) {
			return domainErrors.ErrInvalidTransition
		}

		// Refund covers only the undelivered portion.
		refund := order.Amount
		if order.Quantity > 0 && order.VotesDelivered > 0 {
			undelivered := decimal.NewFromInt(int64(order.Quantity - order.VotesDelivered))
			refund = order.Amount.Mul(undelivered).Div(decimal.NewFromInt(int64(order.Quantity))).Round(2)
		}

		if err := creditBalanceTx(ctx, tx, order.UserID, refund); err != nil {
			return err
		}

		confirmation = fmt.Sprintf("Order #%d cancelled, $%s returned to wallet", order.ID, refund.StringFixed(2))
		const update = `UPDATE orders SET status=$1, error_message=concat_ws('; ', error_message, $2::text), updated_at=NOW() WHERE id=$3`
		_, err = tx.Exec(ctx, update, model.OrderStatusCancelled, confirmation, orderID)
		return err
	})
	if err != nil {
		return "", err
	}
	return confirmation, nil
}

func (r *ledgerRepository) AutoRefundFailedOrder(ctx context.Context, orderID int64, reason string) (string, error) {
	var confirmation string
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		order, err := lockOrder(ctx, tx, orderID)
		if err != nil {
			return err
		}
		// Automatic refunds apply only before any delivery started.
		if order.Status != model.OrderStatusPending && order.Status != model.OrderStatusPendingAPISubmission {
			return domainErrors.ErrInvalidTransition
		}
		if order.VotesDelivered > 0 {
			return domainErrors.ErrInvalidTransition
		}

		if err := creditBalanceTx(ctx, tx, order.UserID, order.Amount); err != nil {
			return err
		}

		confirmation = fmt.Sprintf("Submission failed (%s); $%s refunded to wallet", reason, order.Amount.StringFixed(2))
		const update = `UPDATE orders SET status=$1, error_message=concat_ws('; ', error_message, $2::text), updated_at=NOW() WHERE id=$3`
		_, err = tx.Exec(ctx, update, model.OrderStatusCancelled, confirmation, orderID)
		return err
	})
	if err != nil {
		return "", err
	}
	return confirmation, nil
}

func (r *ledgerRepository) Credit(ctx context.Context, userID int64, sum decimal.Decimal) error {
	if sum.LessThanOrEqual(decimal.Zero) {
		return domainErrors.ErrInvalidAmount
	}
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		return creditBalanceTx(ctx, tx, userID, sum)
	})
}

// --- BalanceRepository implementation ---

func (r *balanceRepository) GetSummary(ctx context.Context, userID int64) (*model.BalanceSummary, error) {
	const query = `SELECT current, spent FROM balances WHERE user_id=$1`
	var summary model.BalanceSummary
	err := r.storage.pool.QueryRow(ctx, query, userID).Scan(&summary.Current, &summary.Spent)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &model.BalanceSummary{Current: decimal.Zero, Spent: decimal.Zero}, nil
		}
		return nil, err
	}
	return &summary, nil
}

// --- DepositRepository implementation ---

func (r *depositRepository) Create(ctx context.Context, deposit *model.Deposit) (*model.Deposit, error) {
	const insert = `INSERT INTO deposits (user_id, reference, method, amount_cents, currency, provider_id, status)
                    VALUES ($1, $2, $3, $4, $5, $6, $7)
                    RETURNING id, created_at`
	d := *deposit
	err := r.storage.pool.QueryRow(ctx, insert, d.UserID, d.Reference, d.Method, d.AmountCents, d.Currency, d.ProviderID, d.Status).
		Scan(&d.ID, &d.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *depositRepository) ListByUser(ctx context.Context, userID int64) ([]model.Deposit, error) {
	const query = `SELECT id, user_id, reference, method, amount_cents, currency, provider_id, status, created_at
                   FROM deposits WHERE user_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Deposit
	for rows.Next() {
		var (
			d      model.Deposit
			method string
			status string
		)
		if err := rows.Scan(&d.ID, &d.UserID, &d.Reference, &method, &d.AmountCents, &d.Currency, &d.ProviderID, &status, &d.CreatedAt); err != nil {
			return nil, err
		}
		d.Method = model.DepositMethod(method)
		d.Status = model.DepositStatus(status)
		result = append(result, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

// --- AccountRepository implementation ---

const accountColumns = `id, username, post_karma, comment_karma, age_years, profile_url, price, status, sold_to, sold_at, created_at`

func scanAccount(row rowScanner) (*model.RedditAccount, error) {
	var (
		a      model.RedditAccount
		status string
	)
	err := row.Scan(&a.ID, &a.Username, &a.PostKarma, &a.CommentKarma, &a.AgeYears, &a.ProfileURL,
		&a.Price, &status, &a.SoldTo, &a.SoldAt, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	a.Status = model.AccountStatus(status)
	return &a, nil
}

func (r *accountRepository) Create(ctx context.Context, account *model.RedditAccount) (*model.RedditAccount, error) {
	const insert = `INSERT INTO reddit_accounts (username, post_karma, comment_karma, age_years, profile_url, price, status)
                    VALUES ($1, $2, $3, $4, $5, $6, $7)
                    RETURNING id, created_at`
	a := *account
	if a.Status == "" {
		a.Status = model.AccountStatusAvailable
	}
	err := r.storage.pool.QueryRow(ctx, insert, a.Username, a.PostKarma, a.CommentKarma, a.AgeYears, a.ProfileURL, a.Price, a.Status).
		Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepository) ListAvailable(ctx context.Context) ([]model.RedditAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM reddit_accounts WHERE status=$1 ORDER BY created_at DESC`
	return r.list(ctx, query, model.AccountStatusAvailable)
}

func (r *accountRepository) ListAll(ctx context.Context) ([]model.RedditAccount, error) {
	query := `SELECT ` + accountColumns + ` FROM reddit_accounts ORDER BY created_at DESC`
	return r.list(ctx, query)
}

func (r *accountRepository) list(ctx context.Context, query string, args ...any) ([]model.RedditAccount, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.RedditAccount
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *accountRepository) Purchase(ctx context.Context, accountID, buyerID int64) (*model.RedditAccount, error) {
	var purchased *model.RedditAccount
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		query := `SELECT ` + accountColumns + ` FROM reddit_accounts WHERE id=$1 FOR UPDATE`
		account, err := scanAccount(tx.QueryRow(ctx, query, accountID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		if account.Status != model.AccountStatusAvailable {
			return domainErrors.ErrAccountUnavailable
		}

		if err := debitBalanceTx(ctx, tx, buyerID, account.Price); err != nil {
			return err
		}

		const update = `UPDATE reddit_accounts SET status=$1, sold_to=$2, sold_at=NOW() WHERE id=$3 RETURNING sold_at`
		if err := tx.QueryRow(ctx, update, model.AccountStatusSold, buyerID, accountID).Scan(&account.SoldAt); err != nil {
			return err
		}
		account.Status = model.AccountStatusSold
		account.SoldTo = &buyerID
		purchased = account
		return nil
	})
	if err != nil {
		return nil, err
	}
	return purchased, nil
}

// WithinTransaction executes function inside transaction boundary.
func (s *Storage) WithinTransaction(ctx context.Context, fn func(pgx.Tx) error) (err error) {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	err = fn(tx)
	return err
}

// HealthCheck verifies database connectivity.
func (s *Storage) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.pool.Ping(ctx)
}

// Logger returns storage logger.
func (s *Storage) Logger() *slog.Logger {
	return s.logger
}
