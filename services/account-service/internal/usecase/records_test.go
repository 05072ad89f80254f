package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
)

func TestProfileUsecase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewProfileUsecase(f.users, f.profiles)

	_, err := uc.CreateProfile(ctx, &model.Profile{Email: "a@x.com", FirstName: "Alice"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = uc.GetProfile(ctx, "a@x.com")
	assert.ErrorIs(t, err, ErrProfileNotFound)

	signup(t, f, "alice", "a@x.com", "p1")

	_, err = uc.UpdateProfile(ctx, &model.Profile{Email: "a@x.com", FirstName: "Al"})
	assert.ErrorIs(t, err, ErrProfileNotFound)

	created, err := uc.CreateProfile(ctx, &model.Profile{Email: "a@x.com", FirstName: "Alice", Bio: "hi"})
	require.NoError(t, err)

	updated, err := uc.UpdateProfile(ctx, &model.Profile{Email: "a@x.com", FirstName: "Al"})
	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Al", updated.FirstName)
	assert.Empty(t, updated.Bio)

	got, err := uc.GetProfile(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "Al", got.FirstName)
}

func TestGoalUsecase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewGoalUsecase(f.users, f.goals)

	_, err := uc.CreateGoal(ctx, &model.Goal{Email: "a@x.com", Title: "car"})
	assert.ErrorIs(t, err, ErrUserNotFound)

	signup(t, f, "alice", "a@x.com", "p1")

	later := time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC)
	sooner := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	car, err := uc.CreateGoal(ctx, &model.Goal{Email: "a@x.com", Title: "car", TargetDate: later})
	require.NoError(t, err)
	_, err = uc.CreateGoal(ctx, &model.Goal{Email: "a@x.com", Title: "trip", TargetDate: sooner})
	require.NoError(t, err)

	goals, err := uc.ListGoals(ctx, "a@x.com")
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "trip", goals[0].Title)

	title := "new car"
	updated, err := uc.UpdateGoal(ctx, car.ID.Hex(), repository.UpdateGoalParams{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "new car", updated.Title)
	assert.Equal(t, later, updated.TargetDate)

	_, err = uc.UpdateGoal(ctx, bson.NewObjectID().Hex(), repository.UpdateGoalParams{Title: &title})
	assert.ErrorIs(t, err, ErrGoalNotFound)
	_, err = uc.UpdateGoal(ctx, "not-an-id", repository.UpdateGoalParams{Title: &title})
	assert.ErrorIs(t, err, ErrGoalNotFound)

	require.NoError(t, uc.DeleteGoal(ctx, car.ID.Hex()))
	assert.ErrorIs(t, uc.DeleteGoal(ctx, car.ID.Hex()), ErrGoalNotFound)
}

func TestTransactionUsecase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewTransactionUsecase(f.users, f.transactions)

	_, err := uc.CreateTransaction(ctx, &model.Transaction{Email: "a@x.com", Amount: 5})
	assert.ErrorIs(t, err, ErrUserNotFound)

	signup(t, f, "alice", "a@x.com", "p1")

	tx, err := uc.CreateTransaction(ctx, &model.Transaction{
		Email:           "a@x.com",
		Type:            "food",
		Amount:          12.5,
		TransactionType: "expense",
	})
	require.NoError(t, err)
	assert.False(t, tx.Date.IsZero())

	list, err := uc.ListTransactions(ctx, "a@x.com")
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.DeleteTransaction(ctx, tx.ID.Hex()))
	assert.ErrorIs(t, uc.DeleteTransaction(ctx, tx.ID.Hex()), ErrTransactionNotFound)
	assert.ErrorIs(t, uc.DeleteTransaction(ctx, "zzz"), ErrTransactionNotFound)
}

func TestContactUsecase(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	uc := NewContactUsecase(f.mail, "support@cashflower.app")

	require.NoError(t, uc.SendContactMessage(ctx, ContactParams{Name: "Alice", Email: "a@x.com", Message: "hello"}))

	sent := f.mail.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, []string{"support@cashflower.app"}, sent[0].To)
	assert.Equal(t, "a@x.com", sent[0].ReplyTo)
	assert.Equal(t, "New Contact Form Submission", sent[0].Subject)
	assert.Equal(t, "Name: Alice\nEmail: a@x.com\nMessage: hello", sent[0].Body)

	f.mail.Err = errors.New("connection refused")
	err := uc.SendContactMessage(ctx, ContactParams{Name: "Alice", Email: "a@x.com", Message: "again"})
	assert.ErrorIs(t, err, ErrMailDelivery)
}

