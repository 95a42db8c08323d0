package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/payformhq/payform/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentFormRepository_Create(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewPaymentFormRepository(db)
	ctx := context.Background()

	t.Run("create form successfully", func(t *testing.T) {
		form := &model.PaymentForm{
			Name:     "Donation",
			Amount:   10,
			Currency: "USD",
			OwnerID:  1,
			Slug:     "slug-create-1",
		}

		created, err := repo.Create(ctx, form)
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.Equal(t, "slug-create-1", created.Slug)
		assert.NotZero(t, created.CreatedAt)
	})

	t.Run("duplicate slug rejected", func(t *testing.T) {
		form := &model.PaymentForm{
			Name:     "Other",
			Amount:   5,
			Currency: "USD",
			OwnerID:  2,
			Slug:     "slug-create-1",
		}

		_, err := repo.Create(ctx, form)
		assert.ErrorIs(t, err, ErrSlugTaken)
	})
}

func TestPaymentFormRepository_GetBySlug(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewPaymentFormRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.PaymentForm{
		Name:     "Tickets",
		Amount:   25,
		Currency: "EUR",
		OwnerID:  1,
		Slug:     "slug-lookup",
	})
	require.NoError(t, err)

	t.Run("existing slug", func(t *testing.T) {
		form, err := repo.GetBySlug(ctx, "slug-lookup")
		require.NoError(t, err)
		assert.Equal(t, created.ID, form.ID)
		assert.Equal(t, "Tickets", form.Name)
	})

	t.Run("unknown slug", func(t *testing.T) {
		_, err := repo.GetBySlug(ctx, "no-such-slug")
		assert.ErrorIs(t, err, ErrFormNotFound)
	})
}

func TestPaymentFormRepository_GetByID(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewPaymentFormRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, &model.PaymentForm{
		Name:     "Workshop",
		Amount:   100,
		Currency: "USD",
		OwnerID:  1,
		Slug:     "slug-by-id",
	})
	require.NoError(t, err)

	t.Run("existing id", func(t *testing.T) {
		form, err := repo.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, "slug-by-id", form.Slug)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, 99999)
		assert.ErrorIs(t, err, ErrFormNotFound)
	})
}

func TestPaymentFormRepository_ListByOwner(t *testing.T) {
	db := setupTestDB(t).DB
	repo := NewPaymentFormRepository(db)
	ctx := context.Background()

	ownerID := int64(77)
	for i := 0; i < 3; i++ {
		_, err := repo.Create(ctx, &model.PaymentForm{
			Name:     fmt.Sprintf("Form %d", i),
			Amount:   float64(i),
			Currency: "USD",
			OwnerID:  ownerID,
			Slug:     fmt.Sprintf("slug-owner-%d", i),
		})
		require.NoError(t, err)
		time.Sleep(5 * time.Millisecond)
	}

	t.Run("owner sees own forms in creation order", func(t *testing.T) {
		forms, err := repo.ListByOwner(ctx, ownerID)
		require.NoError(t, err)
		require.Len(t, forms, 3)
		for i := 0; i < len(forms)-1; i++ {
			assert.True(t, !forms[i].CreatedAt.After(forms[i+1].CreatedAt))
		}
	})

	t.Run("other owner sees nothing", func(t *testing.T) {
		forms, err := repo.ListByOwner(ctx, 1234)
		require.NoError(t, err)
		assert.Len(t, forms, 0)
	})
}
