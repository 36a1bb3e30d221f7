package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/hoangvn/nhatro/internal/billing"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

const selectInvoiceColumns = `
	i.id, i.room_id, r.room_code, i.tenancy_id, i.month, i.year,
	i.room_fee, i.daily_deduction, i.absent_days, i.absent_deduction,
	i.electric_fee, i.water_fee, i.electric_metered, i.water_metered,
	i.garbage_fee, i.wifi_fee, i.tv_fee, i.laundry_fee,
	i.other_fee, i.other_fee_note, i.previous_debt, i.previous_credit,
	i.total, i.paid_amount, i.status, i.payment_date, i.notes,
	i.created_at, i.updated_at
`

// scanInvoice reads an invoice row in selectInvoiceColumns order.
func scanInvoice(s scanner) (*billing.Invoice, error) {
	var inv billing.Invoice

	var statusStr string

	var otherNote, notes sql.NullString

	var paymentDate sql.NullTime

	if err := s.Scan(
		&inv.ID, &inv.RoomID, &inv.RoomCode, &inv.TenancyID, &inv.Period.Month, &inv.Period.Year,
		&inv.RoomFee, &inv.DailyDeduction, &inv.AbsentDays, &inv.AbsentDeduction,
		&inv.ElectricFee, &inv.WaterFee, &inv.ElectricMetered, &inv.WaterMetered,
		&inv.GarbageFee, &inv.WifiFee, &inv.TVFee, &inv.LaundryFee,
		&inv.OtherFee, &otherNote, &inv.PreviousDebt, &inv.PreviousCredit,
		&inv.Total, &inv.PaidAmount, &statusStr, &paymentDate, &notes,
		&inv.CreatedAt, &inv.UpdatedAt,
	); err != nil {
		return nil, err
	}

	inv.Status = billing.Status(statusStr)
	inv.OtherFeeNote = otherNote.String
	inv.Notes = notes.String

	if paymentDate.Valid {
		inv.PaymentDate = &paymentDate.Time
	}

	return &inv, nil
}

func (s *Store) BillableRooms(ctx context.Context, locationID *uuid.UUID) ([]*billing.BillableRoom, error) {
	query := `
		SELECT r.id, r.room_code, r.location_id, t.id,
			r.price, rt.price, COALESCE(rt.daily_deduction, 0),
			l.electric_price, l.water_price,
			l.garbage_fee, l.wifi_fee, l.tv_fee, l.laundry_fee
		FROM rooms r
		JOIN locations l ON l.id = r.location_id
		JOIN tenancies t ON t.room_id = r.id AND t.is_active
		LEFT JOIN room_types rt ON rt.id = r.room_type_id
		WHERE r.deleted_at IS NULL
	`

	var args []any

	if locationID != nil {
		query += " AND r.location_id = $1"

		args = append(args, *locationID)
	}

	query += " ORDER BY r.room_code ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing billable rooms: %w", err)
	}
	defer rows.Close()

	var result []*billing.BillableRoom

	for rows.Next() {
		var room billing.BillableRoom

		var price, typePrice sql.NullInt64

		if err := rows.Scan(
			&room.RoomID, &room.RoomCode, &room.LocationID, &room.TenancyID,
			&price, &typePrice, &room.TypeDailyDeduction,
			&room.ElectricPrice, &room.WaterPrice,
			&room.GarbageFee, &room.WifiFee, &room.TVFee, &room.LaundryFee,
		); err != nil {
			return nil, fmt.Errorf("scanning billable room: %w", err)
		}

		if price.Valid {
			room.PriceOverride = &price.Int64
		}

		if typePrice.Valid {
			room.TypePrice = &typePrice.Int64
		}

		result = append(result, &room)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating billable rooms: %w", err)
	}

	return result, nil
}

func (s *Store) PeriodReadings(ctx context.Context, roomID uuid.UUID, period billing.Period) (map[billing.MeterKind]billing.Reading, error) {
	query := `
		SELECT m.meter_type, mr.old_reading, mr.new_reading
		FROM meters m
		JOIN meter_readings mr ON mr.meter_id = m.id AND mr.month = $2 AND mr.year = $3
		WHERE m.room_id = $1
	`

	rows, err := s.db.QueryContext(ctx, query, roomID, period.Month, period.Year)
	if err != nil {
		return nil, fmt.Errorf("listing period readings: %w", err)
	}
	defer rows.Close()

	readings := make(map[billing.MeterKind]billing.Reading)

	for rows.Next() {
		var kind string

		var oldStr, newStr string

		if err := rows.Scan(&kind, &oldStr, &newStr); err != nil {
			return nil, fmt.Errorf("scanning reading: %w", err)
		}

		oldVal, err := decimal.NewFromString(oldStr)
		if err != nil {
			return nil, fmt.Errorf("parsing old reading: %w", err)
		}

		newVal, err := decimal.NewFromString(newStr)
		if err != nil {
			return nil, fmt.Errorf("parsing new reading: %w", err)
		}

		readings[billing.MeterKind(kind)] = billing.Reading{Old: oldVal, New: newVal}
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating readings: %w", err)
	}

	return readings, nil
}

func (s *Store) PreviousInvoice(ctx context.Context, roomID, tenancyID uuid.UUID, period billing.Period) (*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN rooms r ON r.id = i.room_id
		WHERE i.room_id = $1 AND i.tenancy_id = $2 AND i.month = $3 AND i.year = $4`

	inv, err := scanInvoice(s.db.QueryRowContext(ctx, query, roomID, tenancyID, period.Month, period.Year))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}

		return nil, fmt.Errorf("getting previous invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) CreateInvoice(ctx context.Context, inv *billing.Invoice) error {
	// The UNIQUE (room_id, month, year) constraint is the idempotence
	// guarantee: a concurrent second writer gets no row back.
	query := `
		INSERT INTO invoices (
			room_id, tenancy_id, month, year,
			room_fee, daily_deduction, absent_days, absent_deduction,
			electric_fee, water_fee, electric_metered, water_metered,
			garbage_fee, wifi_fee, tv_fee, laundry_fee,
			other_fee, other_fee_note, previous_debt, previous_credit,
			total, paid_amount, status, notes, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, 0, $22, $23, NOW(), NOW())
		ON CONFLICT (room_id, month, year) DO NOTHING
		RETURNING id, created_at, updated_at
	`

	err := s.db.QueryRowContext(ctx, query,
		inv.RoomID, inv.TenancyID, inv.Period.Month, inv.Period.Year,
		inv.RoomFee, inv.DailyDeduction, inv.AbsentDays, inv.AbsentDeduction,
		inv.ElectricFee, inv.WaterFee, inv.ElectricMetered, inv.WaterMetered,
		inv.GarbageFee, inv.WifiFee, inv.TVFee, inv.LaundryFee,
		inv.OtherFee, nullString(inv.OtherFeeNote), inv.PreviousDebt, inv.PreviousCredit,
		inv.Total, inv.Status, nullString(inv.Notes),
	).Scan(&inv.ID, &inv.CreatedAt, &inv.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return billing.ErrDuplicateInvoice
		}

		return fmt.Errorf("creating invoice: %w", err)
	}

	return nil
}

func (s *Store) GetInvoice(ctx context.Context, id uuid.UUID) (*billing.Invoice, error) {
	return getInvoice(ctx, s.db, id, false)
}

func getInvoice(ctx context.Context, q querier, id uuid.UUID, forUpdate bool) (*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN rooms r ON r.id = i.room_id
		WHERE i.id = $1`

	if forUpdate {
		query += " FOR UPDATE OF i"
	}

	inv, err := scanInvoice(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, billing.ErrNotFound
		}

		return nil, fmt.Errorf("getting invoice: %w", err)
	}

	return inv, nil
}

func (s *Store) ListInvoices(ctx context.Context, filter billing.ListFilter) ([]*billing.Invoice, error) {
	query := `SELECT ` + selectInvoiceColumns + `
		FROM invoices i
		JOIN rooms r ON r.id = i.room_id
		WHERE TRUE`

	var args []any

	argIdx := 1

	if filter.Period != nil {
		query += fmt.Sprintf(" AND i.month = $%d AND i.year = $%d", argIdx, argIdx+1)

		args = append(args, filter.Period.Month, filter.Period.Year)
		argIdx += 2
	}

	if filter.LocationID != nil {
		query += fmt.Sprintf(" AND r.location_id = $%d", argIdx)

		args = append(args, *filter.LocationID)
		argIdx++
	}

	if filter.Status != nil {
		query += fmt.Sprintf(" AND i.status = $%d", argIdx)

		args = append(args, *filter.Status)
		argIdx++
	}

	query += " ORDER BY i.year DESC, i.month DESC, r.room_code ASC"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*billing.Invoice

	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invoice: %w", err)
		}

		invoices = append(invoices, inv)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invoices: %w", err)
	}

	return invoices, nil
}

func (s *Store) ListPayments(ctx context.Context, invoiceID uuid.UUID) ([]*billing.Payment, error) {
	query := `
		SELECT id, invoice_id, amount, paid_at, note, created_at
		FROM payments
		WHERE invoice_id = $1
		ORDER BY paid_at ASC, created_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, invoiceID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	defer rows.Close()

	var payments []*billing.Payment

	for rows.Next() {
		var p billing.Payment

		var note sql.NullString

		if err := rows.Scan(&p.ID, &p.InvoiceID, &p.Amount, &p.PaidAt, &note, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}

		p.Note = note.String

		payments = append(payments, &p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating payments: %w", err)
	}

	return payments, nil
}

// AddPayment appends a payment and bumps the invoice's paid amount and
// derived status. The invoice row is locked for the duration so two
// concurrent payments cannot read the same stale paid amount.
func (s *Store) AddPayment(ctx context.Context, invoiceID uuid.UUID, amount int64, paidAt time.Time, note string) (*billing.Invoice, error) {
	return s.payInTx(ctx, invoiceID, paidAt, note, func(*billing.Invoice) (int64, error) {
		return amount, nil
	})
}

// SettleInvoice pays exactly what remains on the invoice.
func (s *Store) SettleInvoice(ctx context.Context, invoiceID uuid.UUID, paidAt time.Time) (*billing.Invoice, error) {
	return s.payInTx(ctx, invoiceID, paidAt, "", func(inv *billing.Invoice) (int64, error) {
		remaining := inv.RemainingDebt()
		if remaining == 0 {
			return 0, billing.ErrAlreadyPaid
		}

		return remaining, nil
	})
}

// payInTx runs one payment against a row-locked invoice. amountFn sees
// the locked invoice and decides the amount to append.
func (s *Store) payInTx(ctx context.Context, invoiceID uuid.UUID, paidAt time.Time, note string, amountFn func(*billing.Invoice) (int64, error)) (*billing.Invoice, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning payment tx: %w", err)
	}
	defer dbTx.Rollback()

	inv, err := getInvoice(ctx, dbTx, invoiceID, true)
	if err != nil {
		return nil, err
	}

	amount, err := amountFn(inv)
	if err != nil {
		return nil, err
	}

	insertQuery := `
		INSERT INTO payments (invoice_id, amount, paid_at, note, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`
	if _, err := dbTx.ExecContext(ctx, insertQuery, invoiceID, amount, paidAt, nullString(note)); err != nil {
		return nil, fmt.Errorf("inserting payment: %w", err)
	}

	inv.PaidAmount += amount
	inv.Status = billing.StatusFor(inv.PaidAmount, inv.Total)
	inv.PaymentDate = &paidAt

	updateQuery := `
		UPDATE invoices
		SET paid_amount = $1, status = $2, payment_date = $3, updated_at = NOW()
		WHERE id = $4
	`
	if _, err := dbTx.ExecContext(ctx, updateQuery, inv.PaidAmount, inv.Status, paidAt, invoiceID); err != nil {
		return nil, fmt.Errorf("updating invoice paid amount: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing payment: %w", err)
	}

	return inv, nil
}

// CorrectAbsence recomputes the absence deduction and total from the
// tariff stored on the invoice at generation time. Only allowed while
// the payment ledger for the invoice is still empty.
func (s *Store) CorrectAbsence(ctx context.Context, invoiceID uuid.UUID, absentDays int) (*billing.Invoice, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning correction tx: %w", err)
	}
	defer dbTx.Rollback()

	inv, err := getInvoice(ctx, dbTx, invoiceID, true)
	if err != nil {
		return nil, err
	}

	var paymentCount int
	if err := dbTx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payments WHERE invoice_id = $1", invoiceID,
	).Scan(&paymentCount); err != nil {
		return nil, fmt.Errorf("counting payments: %w", err)
	}

	if paymentCount > 0 {
		return nil, billing.ErrInvoicePaid
	}

	deduction, err := billing.AbsenceDeduction(inv.RoomFee, inv.DailyDeduction, absentDays, inv.Period.Days())
	if err != nil {
		return nil, err
	}

	inv.AbsentDays = absentDays
	inv.AbsentDeduction = deduction
	inv.Total = inv.ComputeTotal()
	inv.Status = billing.StatusFor(inv.PaidAmount, inv.Total)

	query := `
		UPDATE invoices
		SET absent_days = $1, absent_deduction = $2, total = $3, status = $4, updated_at = NOW()
		WHERE id = $5
	`
	if _, err := dbTx.ExecContext(ctx, query, inv.AbsentDays, inv.AbsentDeduction, inv.Total, inv.Status, invoiceID); err != nil {
		return nil, fmt.Errorf("updating invoice absence: %w", err)
	}

	if err := dbTx.Commit(); err != nil {
		return nil, fmt.Errorf("committing correction: %w", err)
	}

	return inv, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
