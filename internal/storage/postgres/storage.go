package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/refmart/internal/domain/errors"
	"github.com/polkiloo/refmart/internal/domain/model"
	"github.com/polkiloo/refmart/internal/domain/repository"
)

const pgUniqueViolation = "23505"

// pgxPool is the subset of pgxpool.Pool the storage needs; tests substitute
// a mock implementation.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	BeginTx(ctx context.Context, txOptions pgx.TxOptions) (pgx.Tx, error)
	Ping(ctx context.Context) error
	Close()
}

var newPgxPool = func(ctx context.Context, cfg *pgxpool.Config) (pgxPool, error) {
	return pgxpool.NewWithConfig(ctx, cfg)
}

// Storage acts as repository facade backed by PostgreSQL.
type Storage struct {
	pool   pgxPool
	logger *slog.Logger
}

type userRepository struct {
	storage *Storage
}

type salespersonRepository struct {
	storage *Storage
}

type productRepository struct {
	storage *Storage
}

type orderRepository struct {
	storage *Storage
}

type ledgerRepository struct {
	storage *Storage
}

type payoutRepository struct {
	storage *Storage
}

// New creates storage with schema initialization.
func New(ctx context.Context, dsn string, logger *slog.Logger) (*Storage, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	pool, err := newPgxPool(ctx, cfg)
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

func (s *Storage) Salespeople() repository.SalespersonRepository {
	return &salespersonRepository{storage: s}
}

func (s *Storage) Products() repository.ProductRepository {
	return &productRepository{storage: s}
}

func (s *Storage) Orders() repository.OrderRepository {
	return &orderRepository{storage: s}
}

func (s *Storage) Ledger() repository.LedgerRepository {
	return &ledgerRepository{storage: s}
}

func (s *Storage) Payouts() repository.PayoutRepository {
	return &payoutRepository{storage: s}
}

func (s *Storage) initSchema(ctx context.Context) error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            login TEXT UNIQUE NOT NULL,
            password_hash TEXT NOT NULL,
            role TEXT NOT NULL DEFAULT 'buyer',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS salespeople (
            id SERIAL PRIMARY KEY,
            user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
            referral_code TEXT UNIQUE NOT NULL,
            suspended BOOLEAN NOT NULL DEFAULT FALSE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS products (
            id SERIAL PRIMARY KEY,
            name TEXT NOT NULL,
            price NUMERIC(20,2) NOT NULL,
            commission_type TEXT NOT NULL,
            commission_rate NUMERIC(10,2) NOT NULL DEFAULT 0,
            active BOOLEAN NOT NULL DEFAULT TRUE,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS orders (
            id SERIAL PRIMARY KEY,
            buyer_id BIGINT NOT NULL REFERENCES users(id),
            salesperson_id BIGINT REFERENCES salespeople(id),
            total_amount NUMERIC(20,2) NOT NULL,
            shipping_address TEXT NOT NULL DEFAULT '',
            payment_method TEXT NOT NULL,
            status TEXT NOT NULL,
            receipt_ref TEXT NOT NULL DEFAULT '',
            source TEXT NOT NULL DEFAULT 'link',
            user_agent TEXT NOT NULL DEFAULT '',
            clicked_at TIMESTAMPTZ,
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS order_items (
            id SERIAL PRIMARY KEY,
            order_id BIGINT NOT NULL REFERENCES orders(id),
            product_id BIGINT NOT NULL REFERENCES products(id),
            quantity INT NOT NULL,
            unit_price NUMERIC(20,2) NOT NULL
        )`,
		`CREATE TABLE IF NOT EXISTS ledger_entries (
            id SERIAL PRIMARY KEY,
            reference TEXT UNIQUE NOT NULL,
            kind TEXT NOT NULL,
            salesperson_id BIGINT NOT NULL REFERENCES salespeople(id),
            amount NUMERIC(20,2) NOT NULL,
            status TEXT NOT NULL,
            risk_score INT NOT NULL DEFAULT 0,
            source TEXT NOT NULL DEFAULT 'link',
            order_id BIGINT REFERENCES orders(id),
            line_item_id BIGINT REFERENCES order_items(id),
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE TABLE IF NOT EXISTS payout_requests (
            id SERIAL PRIMARY KEY,
            salesperson_id BIGINT NOT NULL REFERENCES salespeople(id),
            amount NUMERIC(20,2) NOT NULL,
            status TEXT NOT NULL,
            note TEXT NOT NULL DEFAULT '',
            created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
            updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
        )`,
		`CREATE INDEX IF NOT EXISTS idx_orders_buyer ON orders(buyer_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_salesperson ON ledger_entries(salesperson_id, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ledger_order ON ledger_entries(order_id)`,
		`CREATE INDEX IF NOT EXISTS idx_payouts_salesperson ON payout_requests(salesperson_id, created_at DESC)`,
	}

	for _, stmt := range statements {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: %w", err)
		}
	}

	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// --- UserRepository implementation ---

func (r *userRepository) Create(ctx context.Context, login, passwordHash string, role model.Role) (*model.User, error) {
	const query = `INSERT INTO users (login, password_hash, role) VALUES ($1, $2, $3) RETURNING id, created_at`
	var u model.User
	err := r.storage.pool.QueryRow(ctx, query, login, passwordHash, role).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	u.Login = login
	u.PasswordHash = passwordHash
	u.Role = role
	return &u, nil
}

func (r *userRepository) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE login=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, login))
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	const query = `SELECT id, login, password_hash, role, created_at FROM users WHERE id=$1`
	return scanUser(r.storage.pool.QueryRow(ctx, query, id))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Login, &u.PasswordHash, &u.Role, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// --- SalespersonRepository implementation ---

func (r *salespersonRepository) Create(ctx context.Context, userID int64, referralCode string) (*model.Salesperson, error) {
	const query = `INSERT INTO salespeople (user_id, referral_code) VALUES ($1, $2) RETURNING id, created_at`
	var sp model.Salesperson
	err := r.storage.pool.QueryRow(ctx, query, userID, referralCode).Scan(&sp.ID, &sp.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	sp.UserID = userID
	sp.ReferralCode = referralCode
	return &sp, nil
}

func (r *salespersonRepository) GetByCode(ctx context.Context, code string) (*model.Salesperson, error) {
	const query = `SELECT id, user_id, referral_code, suspended, created_at FROM salespeople WHERE referral_code=$1`
	return scanSalesperson(r.storage.pool.QueryRow(ctx, query, code))
}

func (r *salespersonRepository) GetByID(ctx context.Context, id int64) (*model.Salesperson, error) {
	const query = `SELECT id, user_id, referral_code, suspended, created_at FROM salespeople WHERE id=$1`
	return scanSalesperson(r.storage.pool.QueryRow(ctx, query, id))
}

func (r *salespersonRepository) GetByUserID(ctx context.Context, userID int64) (*model.Salesperson, error) {
	const query = `SELECT id, user_id, referral_code, suspended, created_at FROM salespeople WHERE user_id=$1`
	return scanSalesperson(r.storage.pool.QueryRow(ctx, query, userID))
}

func scanSalesperson(row pgx.Row) (*model.Salesperson, error) {
	var sp model.Salesperson
	err := row.Scan(&sp.ID, &sp.UserID, &sp.ReferralCode, &sp.Suspended, &sp.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &sp, nil
}

// --- ProductRepository implementation ---

func (r *productRepository) Create(ctx context.Context, product *model.Product) (*model.Product, error) {
	const query = `INSERT INTO products (name, price, commission_type, commission_rate, active)
                   VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		product.Name, product.Price, product.Commission.Type, product.Commission.Rate, product.Active,
	).Scan(&product.ID, &product.CreatedAt)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	const query = `SELECT id, name, price, commission_type, commission_rate, active, created_at
                   FROM products WHERE id=$1`
	var p model.Product
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.Price, &p.Commission.Type, &p.Commission.Rate, &p.Active, &p.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// --- OrderRepository implementation ---

func (r *orderRepository) Create(ctx context.Context, order *model.Order, entries []model.LedgerEntry) (*model.Order, error) {
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const insertOrder = `INSERT INTO orders (buyer_id, salesperson_id, total_amount, shipping_address,
                                payment_method, status, receipt_ref, source, user_agent, clicked_at)
                             VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
                             RETURNING id, created_at, updated_at`
		err := tx.QueryRow(ctx, insertOrder,
			order.BuyerID, order.SalespersonID, order.TotalAmount, order.ShippingAddress,
			order.PaymentMethod, order.Status, order.ReceiptRef, order.Source,
			order.UserAgent, order.ClickedAt,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return err
		}

		const insertItem = `INSERT INTO order_items (order_id, product_id, quantity, unit_price)
                            VALUES ($1, $2, $3, $4) RETURNING id`
		for i := range order.Items {
			item := &order.Items[i]
			item.OrderID = order.ID
			if err := tx.QueryRow(ctx, insertItem, order.ID, item.ProductID, item.Quantity, item.UnitPrice).Scan(&item.ID); err != nil {
				return err
			}
		}

		// Entries built before the order had an identity get their
		// references and links filled in here, inside the same transaction.
		for i := range entries {
			entry := &entries[i]
			if entry.Reference == "" {
				entry.Reference = model.CommissionReference(order.ID, i+1)
			}
			orderID := order.ID
			entry.OrderID = &orderID
			if i < len(order.Items) {
				entry.LineItemID = &order.Items[i].ID
			}
			if err := insertEntryTx(ctx, tx, entry, false); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	const query = `SELECT id, buyer_id, salesperson_id, total_amount, shipping_address, payment_method,
                          status, receipt_ref, source, user_agent, clicked_at, created_at, updated_at
                   FROM orders WHERE id=$1`
	var o model.Order
	err := r.storage.pool.QueryRow(ctx, query, id).Scan(
		&o.ID, &o.BuyerID, &o.SalespersonID, &o.TotalAmount, &o.ShippingAddress, &o.PaymentMethod,
		&o.Status, &o.ReceiptRef, &o.Source, &o.UserAgent, &o.ClickedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}

	items, err := r.itemsForOrder(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *orderRepository) itemsForOrder(ctx context.Context, orderID int64) ([]model.LineItem, error) {
	const query = `SELECT id, order_id, product_id, quantity, unit_price
                   FROM order_items WHERE order_id=$1 ORDER BY id`
	rows, err := r.storage.pool.Query(ctx, query, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []model.LineItem
	for rows.Next() {
		var li model.LineItem
		if err := rows.Scan(&li.ID, &li.OrderID, &li.ProductID, &li.Quantity, &li.UnitPrice); err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *orderRepository) ListByBuyer(ctx context.Context, buyerID int64) ([]model.Order, error) {
	const query = `SELECT id, buyer_id, salesperson_id, total_amount, shipping_address, payment_method,
                          status, receipt_ref, source, user_agent, clicked_at, created_at, updated_at
                   FROM orders WHERE buyer_id=$1 ORDER BY created_at DESC`
	return r.listOrders(ctx, query, buyerID)
}

func (r *orderRepository) listOrders(ctx context.Context, query string, args ...any) ([]model.Order, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.Order
	for rows.Next() {
		var o model.Order
		if err := rows.Scan(
			&o.ID, &o.BuyerID, &o.SalespersonID, &o.TotalAmount, &o.ShippingAddress, &o.PaymentMethod,
			&o.Status, &o.ReceiptRef, &o.Source, &o.UserAgent, &o.ClickedAt, &o.CreatedAt, &o.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range result {
		items, err := r.itemsForOrder(ctx, result[i].ID)
		if err != nil {
			return nil, err
		}
		result[i].Items = items
	}
	return result, nil
}

func (r *orderRepository) Verify(ctx context.Context, orderID int64, entries []model.LedgerEntry) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const transition = `UPDATE orders SET status=$1, updated_at=NOW()
                            WHERE id=$2 AND status=$3`
		tag, err := tx.Exec(ctx, transition, model.OrderStatusPaid, orderID, model.OrderStatusPendingApproval)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var status model.OrderStatus
			err := tx.QueryRow(ctx, `SELECT status FROM orders WHERE id=$1`, orderID).Scan(&status)
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			if err != nil {
				return err
			}
			return domainErrors.ErrInvalidStateTransition
		}

		for i := range entries {
			if err := insertEntryTx(ctx, tx, &entries[i], true); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *orderRepository) ListUnposted(ctx context.Context, limit int) ([]model.Order, error) {
	const query = `SELECT o.id, o.buyer_id, o.salesperson_id, o.total_amount, o.shipping_address,
                          o.payment_method, o.status, o.receipt_ref, o.source, o.user_agent,
                          o.clicked_at, o.created_at, o.updated_at
                   FROM orders o
                   WHERE o.status=$1
                     AND o.salesperson_id IS NOT NULL
                     AND EXISTS (
                        SELECT 1 FROM order_items i
                        WHERE i.order_id = o.id
                          AND NOT EXISTS (
                            SELECT 1 FROM ledger_entries le
                            WHERE le.order_id = o.id AND le.line_item_id = i.id
                          )
                     )
                   ORDER BY o.created_at
                   LIMIT $2`
	return r.listOrders(ctx, query, model.OrderStatusPaid, limit)
}

// --- LedgerRepository implementation ---

func insertEntryTx(ctx context.Context, tx pgx.Tx, entry *model.LedgerEntry, skipDuplicates bool) error {
	query := `INSERT INTO ledger_entries (reference, kind, salesperson_id, amount, status, risk_score,
                  source, order_id, line_item_id)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	if skipDuplicates {
		query += ` ON CONFLICT (reference) DO NOTHING`
	}
	_, err := tx.Exec(ctx, query,
		entry.Reference, entry.Kind, entry.SalespersonID, entry.Amount, entry.Status,
		entry.RiskScore, entry.Source, entry.OrderID, entry.LineItemID,
	)
	return err
}

func (r *ledgerRepository) Insert(ctx context.Context, entry *model.LedgerEntry) (*model.LedgerEntry, error) {
	const query = `INSERT INTO ledger_entries (reference, kind, salesperson_id, amount, status, risk_score,
                       source, order_id, line_item_id)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
                   RETURNING id, created_at`
	err := r.storage.pool.QueryRow(ctx, query,
		entry.Reference, entry.Kind, entry.SalespersonID, entry.Amount, entry.Status,
		entry.RiskScore, entry.Source, entry.OrderID, entry.LineItemID,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}
	return entry, nil
}

func (r *ledgerRepository) InsertForOrder(ctx context.Context, orderID int64, entries []model.LedgerEntry) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		for i := range entries {
			if err := insertEntryTx(ctx, tx, &entries[i], true); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ledgerRepository) ListBySalesperson(ctx context.Context, salespersonID int64) ([]model.LedgerEntry, error) {
	const query = `SELECT id, reference, kind, salesperson_id, amount, status, risk_score, source,
                          order_id, line_item_id, created_at
                   FROM ledger_entries WHERE salesperson_id=$1 ORDER BY created_at DESC`
	rows, err := r.storage.pool.Query(ctx, query, salespersonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.LedgerEntry
	for rows.Next() {
		var e model.LedgerEntry
		if err := rows.Scan(
			&e.ID, &e.Reference, &e.Kind, &e.SalespersonID, &e.Amount, &e.Status,
			&e.RiskScore, &e.Source, &e.OrderID, &e.LineItemID, &e.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

const balanceQuery = `SELECT
        COALESCE(SUM(amount) FILTER (WHERE status = 'paid'), 0),
        COALESCE(SUM(amount) FILTER (WHERE status IN ('pending', 'flagged')), 0),
        COALESCE(-SUM(amount) FILTER (WHERE kind = 'payout' AND status = 'paid'), 0)
    FROM ledger_entries WHERE salesperson_id=$1`

const holdsQuery = `SELECT COALESCE(SUM(amount), 0) FROM payout_requests
    WHERE salesperson_id=$1 AND status IN ('pending', 'processing')`

func balanceTx(ctx context.Context, tx pgx.Tx, salespersonID int64) (*model.BalanceSummary, error) {
	var settled, pending, withdrawn, holds decimal.Decimal
	if err := tx.QueryRow(ctx, balanceQuery, salespersonID).Scan(&settled, &pending, &withdrawn); err != nil {
		return nil, err
	}
	if err := tx.QueryRow(ctx, holdsQuery, salespersonID).Scan(&holds); err != nil {
		return nil, err
	}
	return &model.BalanceSummary{
		Available: settled.Sub(holds),
		Pending:   pending,
		Withdrawn: withdrawn,
	}, nil
}

// Balance recomputes from the full entry set on every call: the summary is a
// pure function of the entries and open holds, never a running counter.
func (r *ledgerRepository) Balance(ctx context.Context, salespersonID int64) (*model.BalanceSummary, error) {
	var summary *model.BalanceSummary
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		summary, err = balanceTx(ctx, tx, salespersonID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return summary, nil
}

func (r *ledgerRepository) UpdateStatus(ctx context.Context, entryID int64, from, to model.EntryStatus) error {
	const query = `UPDATE ledger_entries SET status=$1 WHERE id=$2 AND status=$3`
	tag, err := r.storage.pool.Exec(ctx, query, to, entryID, from)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		var current model.EntryStatus
		err := r.storage.pool.QueryRow(ctx, `SELECT status FROM ledger_entries WHERE id=$1`, entryID).Scan(&current)
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		if err != nil {
			return err
		}
		return domainErrors.ErrInvalidStateTransition
	}
	return nil
}

// --- PayoutRepository implementation ---

func (r *payoutRepository) Create(ctx context.Context, salespersonID int64, minAmount decimal.Decimal) (*model.PayoutRequest, error) {
	var request model.PayoutRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		// Row lock serializes concurrent requests for the same salesperson,
		// so the second request observes the first request's hold.
		var id int64
		err := tx.QueryRow(ctx, `SELECT id FROM salespeople WHERE id=$1 FOR UPDATE`, salespersonID).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			return domainErrors.ErrNotFound
		}
		if err != nil {
			return err
		}

		summary, err := balanceTx(ctx, tx, salespersonID)
		if err != nil {
			return err
		}
		if summary.Available.LessThan(minAmount) {
			return domainErrors.ErrInsufficientBalance
		}

		const insert = `INSERT INTO payout_requests (salesperson_id, amount, status)
                        VALUES ($1, $2, $3) RETURNING id, created_at, updated_at`
		if err := tx.QueryRow(ctx, insert, salespersonID, summary.Available, model.PayoutStatusPending).
			Scan(&request.ID, &request.CreatedAt, &request.UpdatedAt); err != nil {
			return err
		}
		request.SalespersonID = salespersonID
		request.Amount = summary.Available
		request.Status = model.PayoutStatusPending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *payoutRepository) ListBySalesperson(ctx context.Context, salespersonID int64) ([]model.PayoutRequest, error) {
	const query = `SELECT id, salesperson_id, amount, status, note, created_at, updated_at
                   FROM payout_requests WHERE salesperson_id=$1 ORDER BY created_at DESC`
	return r.listRequests(ctx, query, salespersonID)
}

func (r *payoutRepository) ListByStatus(ctx context.Context, status model.PayoutStatus) ([]model.PayoutRequest, error) {
	const query = `SELECT id, salesperson_id, amount, status, note, created_at, updated_at
                   FROM payout_requests WHERE status=$1 ORDER BY created_at`
	return r.listRequests(ctx, query, status)
}

func (r *payoutRepository) listRequests(ctx context.Context, query string, args ...any) ([]model.PayoutRequest, error) {
	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []model.PayoutRequest
	for rows.Next() {
		var p model.PayoutRequest
		if err := rows.Scan(&p.ID, &p.SalespersonID, &p.Amount, &p.Status, &p.Note, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func lockRequestTx(ctx context.Context, tx pgx.Tx, requestID int64) (*model.PayoutRequest, error) {
	const query = `SELECT id, salesperson_id, amount, status, note, created_at, updated_at
                   FROM payout_requests WHERE id=$1 FOR UPDATE`
	var p model.PayoutRequest
	err := tx.QueryRow(ctx, query, requestID).Scan(
		&p.ID, &p.SalespersonID, &p.Amount, &p.Status, &p.Note, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domainErrors.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *payoutRepository) Resolve(ctx context.Context, requestID int64, approve bool, note string) (*model.PayoutRequest, error) {
	var request *model.PayoutRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		request, err = lockRequestTx(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if request.Status != model.PayoutStatusPending {
			return domainErrors.ErrInvalidStateTransition
		}

		next := model.PayoutStatusProcessing
		if !approve {
			next = model.PayoutStatusRejected
		}

		const update = `UPDATE payout_requests SET status=$1, note=$2, updated_at=NOW() WHERE id=$3`
		if _, err := tx.Exec(ctx, update, next, note, requestID); err != nil {
			return err
		}
		request.Status = next
		request.Note = note
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (r *payoutRepository) ResolveBatch(ctx context.Context, requestIDs []int64) error {
	return r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const update = `UPDATE payout_requests SET status=$1, updated_at=NOW()
                        WHERE id=$2 AND status=$3`
		for _, id := range requestIDs {
			tag, err := tx.Exec(ctx, update, model.PayoutStatusProcessing, id, model.PayoutStatusPending)
			if err != nil {
				return err
			}
			if tag.RowsAffected() == 0 {
				return domainErrors.ErrInvalidStateTransition
			}
		}
		return nil
	})
}

func (r *payoutRepository) Settle(ctx context.Context, requestID int64, paid bool, note, reference string) (*model.PayoutRequest, error) {
	var request *model.PayoutRequest
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		var err error
		request, err = lockRequestTx(ctx, tx, requestID)
		if err != nil {
			return err
		}
		if request.Status != model.PayoutStatusProcessing {
			return domainErrors.ErrInvalidStateTransition
		}

		next := model.PayoutStatusRejected
		if paid {
			next = model.PayoutStatusPaid
		}

		const update = `UPDATE payout_requests SET status=$1, note=$2, updated_at=NOW() WHERE id=$3`
		if _, err := tx.Exec(ctx, update, next, note, requestID); err != nil {
			return err
		}
		request.Status = next
		request.Note = note

		// The debit posts only on paid: rejected settlements release the
		// held amount with no ledger effect.
		if paid {
			entry := model.LedgerEntry{
				Reference:     reference,
				Kind:          model.EntryKindPayout,
				SalespersonID: request.SalespersonID,
				Amount:        request.Amount.Neg(),
				Status:        model.EntryStatusPaid,
				Source:        model.AttributionManual,
			}
			if err := insertEntryTx(ctx, tx, &entry, false); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return request, nil
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
