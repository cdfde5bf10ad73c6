//go:build integration

package order

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MikeMC777/khattak-mart/internal/pgdb/pgtest"
)

func TestPGRepo_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewPGRepo(pgtest.Pool(t))

	d := draft(MethodCard, PaymentPendingVerification, item("p1", "100", 2), item("p2", "50", 1))
	d.PaymentProofURL = "/uploads/proof.png"
	o, err := repo.Add(ctx, d)
	require.NoError(t, err)
	assert.Equal(t, "ORD-001", o.ID)
	assert.Equal(t, "250", o.Total.String())
	require.Len(t, o.Items, 2)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Add(ctx, draft(MethodCOD, PaymentPendingCOD, item("p1", "1", 1)))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 11)

	up, err := repo.UpdateStatus(ctx, o.ID, StatusConfirmed, PaymentPaid)
	require.NoError(t, err)
	assert.Equal(t, PaymentPaid, up.PaymentStatus)

	_, err = repo.UpdateStatus(ctx, "ORD-999", StatusConfirmed, PaymentPaid)
	assert.ErrorIs(t, err, ErrNotFound)

	_, ok, err := repo.Get(ctx, "ORD-999")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPGRepo_IDsWidenPast999(t *testing.T) {
	ctx := context.Background()
	pool := pgtest.Pool(t)
	repo := NewPGRepo(pool)

	_, err := pool.Exec(ctx, `SELECT setval('order_seq', 999)`)
	require.NoError(t, err)

	a, err := repo.Add(ctx, draft(MethodCOD, PaymentPendingCOD, item("p1", "10", 1)))
	require.NoError(t, err)
	b, err := repo.Add(ctx, draft(MethodCOD, PaymentPendingCOD, item("p1", "10", 1)))
	require.NoError(t, err)
	assert.Equal(t, "ORD-1000", a.ID)
	assert.Equal(t, "ORD-1001", b.ID)
	assert.Equal(t, FormatID(1001), b.ID)
}

func TestPGRepo_TransitionIsAtomic(t *testing.T) {
	ctx := context.Background()
	repo := NewPGRepo(pgtest.Pool(t))
	o, err := repo.Add(ctx, draft(MethodCOD, PaymentPendingCOD, item("p1", "10", 1)))
	require.NoError(t, err)
	_, err = repo.Transition(ctx, o.ID, StatusConfirmed, PaymentPendingCOD)
	require.NoError(t, err)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won []Status
	)
	for i := 0; i < 6; i++ {
		to := StatusDelivered
		if i%2 == 1 {
			to = StatusCancelled
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Transition(ctx, o.ID, to, PaymentPaid); err == nil {
				mu.Lock()
				won = append(won, to)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	require.NotEmpty(t, won)
	for _, s := range won {
		assert.Equal(t, won[0], s)
	}
	got, _, err := repo.Get(ctx, o.ID)
	require.NoError(t, err)
	assert.Equal(t, won[0], got.OrderStatus)

	_, err = repo.Transition(ctx, "ORD-999", StatusConfirmed, PaymentPaid)
	assert.ErrorIs(t, err, ErrNotFound)
}
