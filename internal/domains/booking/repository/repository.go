package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"villa/infras/otel"
	"villa/internal/domains/booking/model"
	"villa/shared/constant"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("reservation not found")

// Booking is the reservation store. Get and GetByPaymentReference return a
// zero Reservation (empty ID) when nothing matches.
type Booking interface {
	Insert(ctx context.Context, reservation model.Reservation) (model.Reservation, error)
	Get(ctx context.Context, id string) (model.Reservation, error)
	GetByPaymentReference(ctx context.Context, reference string) (model.Reservation, error)
	GetAll(ctx context.Context) ([]model.Reservation, error)
	UpdatePaymentReference(ctx context.Context, id, reference string) error
	UpdatePaymentStatus(ctx context.Context, id string, from, to model.PaymentStatus) (bool, error)
	Delete(ctx context.Context, id string) error
}

type record struct {
	seq         uint64
	reservation model.Reservation
}

// repositoryImpl keeps reservations in process memory. Every value going in
// or out is cloned so callers never hold a reference into the map.
type repositoryImpl struct {
	mu      sync.RWMutex
	records map[string]record
	seq     uint64
	otel    otel.Otel
}

func New(otel otel.Otel) Booking {
	return &repositoryImpl{
		records: make(map[string]record),
		otel:    otel,
	}
}

func (r *repositoryImpl) Insert(ctx context.Context, reservation model.Reservation) (res model.Reservation, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Insert")
	defer scope.End()
	defer scope.TraceIfError(err)

	res = reservation.Clone()

	if res.ID == constant.Empty {
		res.ID = uuid.NewString()
	}

	if res.CreatedAt.IsZero() {
		res.CreatedAt = timezone.Now()
	}

	if res.PaymentStatus == "" {
		res.PaymentStatus = model.PaymentStatusPending
	}

	if res.SpecialRequirements != nil && *res.SpecialRequirements == constant.Empty {
		res.SpecialRequirements = nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[res.ID]; exists {
		return model.Reservation{}, fmt.Errorf("reservation %s already exists", res.ID)
	}

	r.seq++
	r.records[res.ID] = record{seq: r.seq, reservation: res}

	scope.SetAttribute("reservation.id", res.ID)

	return res.Clone(), nil
}

func (r *repositoryImpl) Get(ctx context.Context, id string) (model.Reservation, error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Get")
	defer scope.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[id]
	if !ok {
		return model.Reservation{}, nil
	}

	return rec.reservation.Clone(), nil
}

func (r *repositoryImpl) GetByPaymentReference(ctx context.Context, reference string) (model.Reservation, error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetByPaymentReference")
	defer scope.End()

	if reference == constant.Empty {
		return model.Reservation{}, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.records {
		ref := rec.reservation.ExternalPaymentReference
		if ref != nil && *ref == reference {
			return rec.reservation.Clone(), nil
		}
	}

	return model.Reservation{}, nil
}

// GetAll lists reservations by createdAt, then insertion order.
func (r *repositoryImpl) GetAll(ctx context.Context) ([]model.Reservation, error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".GetAll")
	defer scope.End()

	r.mu.RLock()

	recs := make([]record, 0, len(r.records))
	for _, rec := range r.records {
		recs = append(recs, rec)
	}

	r.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i].reservation.CreatedAt, recs[j].reservation.CreatedAt
		if !a.Equal(b) {
			return a.Before(b)
		}

		return recs[i].seq < recs[j].seq
	})

	res := make([]model.Reservation, len(recs))
	for i, rec := range recs {
		res[i] = rec.reservation.Clone()
	}

	scope.SetAttribute("reservation.count", len(res))

	return res, nil
}

func (r *repositoryImpl) UpdatePaymentReference(ctx context.Context, id, reference string) (err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpdatePaymentReference")
	defer scope.End()
	defer scope.TraceIfError(err)

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return fmt.Errorf("update payment reference of %s: %w", id, ErrNotFound)
	}

	ref := reference
	rec.reservation.ExternalPaymentReference = &ref
	r.records[id] = rec

	return nil
}

// UpdatePaymentStatus moves a reservation from one status to another and
// reports whether this call made the change. A reservation that is no longer
// in the from status is left alone.
func (r *repositoryImpl) UpdatePaymentStatus(ctx context.Context, id string, from, to model.PaymentStatus) (updated bool, err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".UpdatePaymentStatus")
	defer scope.End()
	defer scope.TraceIfError(err)

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[id]
	if !ok {
		return false, fmt.Errorf("update payment status of %s: %w", id, ErrNotFound)
	}

	if rec.reservation.PaymentStatus != from {
		return false, nil
	}

	rec.reservation.PaymentStatus = to
	r.records[id] = rec

	return true, nil
}

func (r *repositoryImpl) Delete(ctx context.Context, id string) (err error) {
	_, scope := r.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+"."+model.EntityName+".Delete")
	defer scope.End()
	defer scope.TraceIfError(err)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.records[id]; !ok {
		return fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}

	delete(r.records, id)

	return nil
}
