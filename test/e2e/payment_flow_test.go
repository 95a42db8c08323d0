package e2e

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/payformhq/payform/internal/auth"
	"github.com/payformhq/payform/internal/mailer"
	"github.com/payformhq/payform/internal/model"
	"github.com/payformhq/payform/internal/notifier"
	"github.com/payformhq/payform/internal/queue"
	"github.com/payformhq/payform/internal/repository"
	"github.com/payformhq/payform/internal/services"
	"github.com/payformhq/payform/pkg/pg"
	"github.com/payformhq/payform/pkg/redis"
	"github.com/payformhq/payform/test/fixtures"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testDB = pg.DB

type TestEnvironment struct {
	DB              *pg.DB
	Redis           *miniredis.Miniredis
	RedisAdapter    redis.RedisAdapter
	Queue           *queue.Queue
	UserRepo        *repository.UserRepository
	FormRepo        *repository.PaymentFormRepository
	TransactionRepo *repository.TransactionRepository
	UserService     *services.UserService
	FormService     *services.FormService
	PaymentService  *services.PaymentService
}

func setupE2EEnvironment(t *testing.T) *TestEnvironment {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&repository.UserEntity{},
		&repository.PaymentFormEntity{},
		&repository.TransactionEntity{},
	)
	require.NoError(t, err)

	pgDB := &testDB{}
	pgDBValue := reflect.ValueOf(pgDB).Elem()

	readField := pgDBValue.FieldByName("read")
	writeField := pgDBValue.FieldByName("write")

	readField = reflect.NewAt(readField.Type(), readField.Addr().UnsafePointer()).Elem()
	writeField = reflect.NewAt(writeField.Type(), writeField.Addr().UnsafePointer()).Elem()

	readField.Set(reflect.ValueOf(db))
	writeField.Set(reflect.ValueOf(db))

	mr, err := miniredis.Run()
	require.NoError(t, err)

	// Use unique connection name per test to avoid global adapter caching issues
	connName := fmt.Sprintf("test-%d", time.Now().UnixNano())
	redisAdapter, err := redis.NewRedisAdapter(connName, "", &goredis.UniversalOptions{
		Addrs: []string{mr.Addr()},
	})
	require.NoError(t, err)

	queueConfig := queue.QueueConfig{
		Name:              "test:notifications",
		ConsumerGroup:     "test-group",
		ConsumerName:      "test-consumer",
		MaxRetries:        3,
		VisibilityTimeout: 5 * time.Second,
		PollInterval:      100 * time.Millisecond,
		BatchSize:         10,
		MaxLen:            1000,
		EnableDLQ:         true,
	}

	q, err := queue.NewQueue(redisAdapter, queueConfig)
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(pgDB)
	formRepo := repository.NewPaymentFormRepository(pgDB)
	transactionRepo := repository.NewTransactionRepository(pgDB)

	tokens := auth.NewTokenManager("e2e-secret", 30*time.Minute)

	userService := services.NewUserService(userRepo, tokens)
	formService := services.NewFormService(formRepo, "http://localhost:8080")
	paymentService := services.NewPaymentService(formRepo, transactionRepo, userRepo, q)

	return &TestEnvironment{
		DB:              pgDB,
		Redis:           mr,
		RedisAdapter:    redisAdapter,
		Queue:           q,
		UserRepo:        userRepo,
		FormRepo:        formRepo,
		TransactionRepo: transactionRepo,
		UserService:     userService,
		FormService:     formService,
		PaymentService:  paymentService,
	}
}

func (env *TestEnvironment) Cleanup() {
	// Stop queue first (gracefully drain messages)
	if env.Queue != nil {
		_ = env.Queue.Stop(5 * time.Second)
	}
	// Give time for any in-flight operations to complete
	time.Sleep(100 * time.Millisecond)
	// Then close Redis
	if env.Redis != nil {
		env.Redis.Close()
	}
}

func (env *TestEnvironment) registerUser(t *testing.T, name, email string) *model.User {
	t.Helper()
	user, err := env.UserService.Register(context.Background(), model.RegisterRequest{
		Name:     name,
		Email:    email,
		Password: "s3cret",
	})
	require.NoError(t, err)
	return user
}

func TestE2E_PaymentFlow(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	owner := env.registerUser(t, fixtures.TestOwner.Name, fixtures.TestOwner.Email)

	created, err := env.FormService.Create(ctx, model.FormCreateRequest{
		OwnerID:  owner.ID,
		Name:     "Donations",
		Amount:   10,
		Currency: "USD",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, created.Form.Slug)
	assert.Contains(t, created.ShareableURL, created.Form.Slug)

	tx, err := env.PaymentService.SubmitBySlug(ctx, created.Form.Slug,
		fixtures.NewTestPaymentRequest("payer@example.com", 25.5, "EUR"))
	require.NoError(t, err)
	assert.NotZero(t, tx.ID)
	assert.Equal(t, created.Form.ID, tx.FormID)
	assert.Equal(t, 25.5, tx.AmountPaid)

	// Owner reads the full history
	txs, err := env.PaymentService.ListTransactions(ctx, created.Form.ID, owner.ID)
	require.NoError(t, err)
	require.Len(t, txs, 1)
	assert.Equal(t, tx.ID, txs[0].ID)

	// Anyone else is refused
	other := env.registerUser(t, fixtures.TestOtherUser.Name, fixtures.TestOtherUser.Email)
	_, err = env.PaymentService.ListTransactions(ctx, created.Form.ID, other.ID)
	assert.ErrorIs(t, err, services.ErrForbidden)

	// The owner notification was enqueued
	stats, err := env.Queue.GetStats()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, stats.TotalMessages, int64(1))
}

func TestE2E_NotificationDelivery(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	owner := env.registerUser(t, fixtures.TestOwner.Name, fixtures.TestOwner.Email)

	form, err := env.FormRepo.Create(ctx, fixtures.NewTestForm(owner.ID, "Donations", "e2e-slug"))
	require.NoError(t, err)

	gotMail := make(chan mailer.SendRequest, 1)
	relay := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req mailer.SendRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		gotMail <- req
		json.NewEncoder(w).Encode(mailer.SendResponse{MessageID: "m-1", Status: "queued"})
	}))
	defer relay.Close()

	mailClient, err := mailer.NewClient(mailer.Config{
		RelayURL:    relay.URL,
		FromAddress: "no-reply@payform.local",
		Timeout:     time.Second,
	})
	require.NoError(t, err)

	processor := notifier.NewEmailProcessor(mailClient)
	err = env.Queue.Consume(func(ctx context.Context, msg *queue.Message) error {
		return processor.Process(ctx, msg)
	})
	require.NoError(t, err)

	_, err = env.PaymentService.SubmitBySlug(ctx, form.Slug,
		fixtures.NewTestPaymentRequest("payer@example.com", 25.5, "EUR"))
	require.NoError(t, err)

	select {
	case mail := <-gotMail:
		assert.Equal(t, owner.Email, mail.To)
		assert.Contains(t, mail.Subject, "Donations")
		assert.Contains(t, mail.Body, "25.50 EUR")
		assert.Contains(t, mail.Body, "payer@example.com")
	case <-time.After(3 * time.Second):
		t.Fatal("notification not delivered within timeout")
	}
}

func TestE2E_UnknownSlug(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	_, err := env.PaymentService.SubmitBySlug(ctx, "no-such-slug",
		fixtures.NewTestPaymentRequest("payer@example.com", 1, "USD"))
	assert.ErrorIs(t, err, services.ErrFormNotFound)

	var count int64
	env.DB.Read(ctx).Model(&repository.TransactionEntity{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestE2E_DuplicateRegistration(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	env.registerUser(t, fixtures.TestOwner.Name, fixtures.TestOwner.Email)

	_, err := env.UserService.Register(ctx, model.RegisterRequest{
		Name:     "Someone Else",
		Email:    fixtures.TestOwner.Email,
		Password: "another",
	})
	assert.ErrorIs(t, err, services.ErrEmailTaken)

	var count int64
	env.DB.Read(ctx).Model(&repository.UserEntity{}).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestE2E_SlugsDistinctAcrossForms(t *testing.T) {
	env := setupE2EEnvironment(t)
	defer env.Cleanup()

	ctx := context.Background()

	owner := env.registerUser(t, fixtures.TestOwner.Name, fixtures.TestOwner.Email)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		created, err := env.FormService.Create(ctx, model.FormCreateRequest{
			OwnerID:  owner.ID,
			Name:     fmt.Sprintf("Form %d", i),
			Amount:   10,
			Currency: "USD",
		})
		require.NoError(t, err)
		assert.False(t, seen[created.Form.Slug])
		seen[created.Form.Slug] = true
	}

	forms, err := env.FormService.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, forms, 3)
}
