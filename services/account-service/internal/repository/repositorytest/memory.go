// Package repositorytest provides in-memory repositories that mimic the
// MongoDB implementations, including their error values.
package repositorytest

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/vasapolrittideah/cashflower/services/account-service/internal/model"
	"github.com/vasapolrittideah/cashflower/services/account-service/internal/repository"
)

var (
	_ repository.UserRepository               = (*Users)(nil)
	_ repository.ProfileRepository            = (*Profiles)(nil)
	_ repository.GoalRepository               = (*Goals)(nil)
	_ repository.TransactionRepository        = (*Transactions)(nil)
	_ repository.PasswordResetTokenRepository = (*ResetTokens)(nil)
)

// faults lets a test make a named method fail.
type faults struct {
	mu     sync.Mutex
	byName map[string]error
}

// FailOn makes every later call to method return err.
func (f *faults) FailOn(method string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.byName == nil {
		f.byName = map[string]error{}
	}
	f.byName[method] = err
}

func (f *faults) fault(method string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.byName[method]
}

func duplicateKeyError() error {
	return mongo.WriteException{
		WriteErrors: mongo.WriteErrors{{Code: 11000, Message: "E11000 duplicate key error"}},
	}
}

func parseID(id string) (bson.ObjectID, error) {
	objectID, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return bson.ObjectID{}, repository.ErrInvalidID
	}
	return objectID, nil
}

// Users is an in-memory UserRepository with a unique email constraint.
type Users struct {
	faults
	mu    sync.Mutex
	users map[string]model.User
}

func NewUsers() *Users {
	return &Users{users: map[string]model.User{}}
}

// Count returns the number of stored users with email.
func (r *Users) Count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[email]; ok {
		return 1
	}
	return 0
}

func (r *Users) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	if err := r.fault("CreateUser"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.Email]; ok {
		return nil, duplicateKeyError()
	}

	now := time.Now()
	user.ID = bson.NewObjectID()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.Email] = *user

	return user, nil
}

func (r *Users) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	if err := r.fault("GetUserByEmail"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return &user, nil
}

func (r *Users) UpdateUserByEmail(
	_ context.Context,
	email string,
	params repository.UpdateUserParams,
) (*model.User, error) {
	if err := r.fault("UpdateUserByEmail"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	user, ok := r.users[email]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if params.Username == nil && params.PasswordHash == nil {
		return nil, errors.New("no user fields to update")
	}
	if params.Username != nil {
		user.Username = *params.Username
	}
	if params.PasswordHash != nil {
		user.PasswordHash = *params.PasswordHash
	}
	user.UpdatedAt = time.Now()
	r.users[email] = user

	return &user, nil
}

func (r *Users) DeleteUserByEmail(_ context.Context, email string) (int64, error) {
	if err := r.fault("DeleteUserByEmail"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[email]; !ok {
		return 0, nil
	}
	delete(r.users, email)
	return 1, nil
}

// Profiles is an in-memory ProfileRepository. Like the Mongo collection it
// allows several profiles per email.
type Profiles struct {
	faults
	mu       sync.Mutex
	profiles []model.Profile
}

func NewProfiles() *Profiles {
	return &Profiles{}
}

// Count returns the number of stored profiles with email.
func (r *Profiles) Count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, p := range r.profiles {
		if p.Email == email {
			n++
		}
	}
	return n
}

func (r *Profiles) CreateProfile(_ context.Context, profile *model.Profile) (*model.Profile, error) {
	if err := r.fault("CreateProfile"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	profile.ID = bson.NewObjectID()
	profile.CreatedAt = now
	profile.UpdatedAt = now
	r.profiles = append(r.profiles, *profile)

	return profile, nil
}

func (r *Profiles) GetProfileByEmail(_ context.Context, email string) (*model.Profile, error) {
	if err := r.fault("GetProfileByEmail"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range r.profiles {
		if p.Email == email {
			return &p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *Profiles) ReplaceProfileByEmail(
	_ context.Context,
	email string,
	profile *model.Profile,
) (*model.Profile, error) {
	if err := r.fault("ReplaceProfileByEmail"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, p := range r.profiles {
		if p.Email != email {
			continue
		}
		updated := *profile
		updated.ID = p.ID
		updated.Email = p.Email
		updated.CreatedAt = p.CreatedAt
		updated.UpdatedAt = time.Now()
		r.profiles[i] = updated
		return &updated, nil
	}
	return nil, mongo.ErrNoDocuments
}

func (r *Profiles) DeleteProfilesByEmail(_ context.Context, email string) (int64, error) {
	if err := r.fault("DeleteProfilesByEmail"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	kept := r.profiles[:0]
	var n int64
	for _, p := range r.profiles {
		if p.Email == email {
			n++
			continue
		}
		kept = append(kept, p)
	}
	r.profiles = kept
	return n, nil
}

// Goals is an in-memory GoalRepository.
type Goals struct {
	faults
	mu    sync.Mutex
	goals map[bson.ObjectID]model.Goal
}

func NewGoals() *Goals {
	return &Goals{goals: map[bson.ObjectID]model.Goal{}}
}

// Count returns the number of stored goals with email.
func (r *Goals) Count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, g := range r.goals {
		if g.Email == email {
			n++
		}
	}
	return n
}

func (r *Goals) CreateGoal(_ context.Context, goal *model.Goal) (*model.Goal, error) {
	if err := r.fault("CreateGoal"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	goal.ID = bson.NewObjectID()
	goal.CreatedAt = now
	goal.UpdatedAt = now
	r.goals[goal.ID] = *goal

	return goal, nil
}

func (r *Goals) ListGoalsByEmail(_ context.Context, email string) ([]*model.Goal, error) {
	if err := r.fault("ListGoalsByEmail"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	goals := []*model.Goal{}
	for _, g := range r.goals {
		if g.Email == email {
			goals = append(goals, &g)
		}
	}
	sort.Slice(goals, func(i, j int) bool { return goals[i].TargetDate.Before(goals[j].TargetDate) })

	return goals, nil
}

func (r *Goals) UpdateGoal(_ context.Context, id string, params repository.UpdateGoalParams) (*model.Goal, error) {
	if err := r.fault("UpdateGoal"); err != nil {
		return nil, err
	}
	objectID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	goal, ok := r.goals[objectID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	if params.Title != nil {
		goal.Title = *params.Title
	}
	if params.Description != nil {
		goal.Description = *params.Description
	}
	if params.TargetDate != nil {
		goal.TargetDate = *params.TargetDate
	}
	goal.UpdatedAt = time.Now()
	r.goals[objectID] = goal

	return &goal, nil
}

func (r *Goals) DeleteGoal(_ context.Context, id string) error {
	if err := r.fault("DeleteGoal"); err != nil {
		return err
	}
	objectID, err := parseID(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.goals[objectID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.goals, objectID)
	return nil
}

func (r *Goals) DeleteGoalsByEmail(_ context.Context, email string) (int64, error) {
	if err := r.fault("DeleteGoalsByEmail"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, g := range r.goals {
		if g.Email == email {
			delete(r.goals, id)
			n++
		}
	}
	return n, nil
}

// Transactions is an in-memory TransactionRepository.
type Transactions struct {
	faults
	mu           sync.Mutex
	transactions map[bson.ObjectID]model.Transaction
}

func NewTransactions() *Transactions {
	return &Transactions{transactions: map[bson.ObjectID]model.Transaction{}}
}

// Count returns the number of stored transactions with email.
func (r *Transactions) Count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, tx := range r.transactions {
		if tx.Email == email {
			n++
		}
	}
	return n
}

func (r *Transactions) CreateTransaction(_ context.Context, tx *model.Transaction) (*model.Transaction, error) {
	if err := r.fault("CreateTransaction"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	tx.ID = bson.NewObjectID()
	tx.CreatedAt = now
	if tx.Date.IsZero() {
		tx.Date = now
	}
	r.transactions[tx.ID] = *tx

	return tx, nil
}

func (r *Transactions) ListTransactionsByEmail(_ context.Context, email string) ([]*model.Transaction, error) {
	if err := r.fault("ListTransactionsByEmail"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	transactions := []*model.Transaction{}
	for _, tx := range r.transactions {
		if tx.Email == email {
			transactions = append(transactions, &tx)
		}
	}
	sort.Slice(transactions, func(i, j int) bool { return transactions[i].Date.After(transactions[j].Date) })

	return transactions, nil
}

func (r *Transactions) DeleteTransaction(_ context.Context, id string) error {
	if err := r.fault("DeleteTransaction"); err != nil {
		return err
	}
	objectID, err := parseID(id)
	if err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.transactions[objectID]; !ok {
		return mongo.ErrNoDocuments
	}
	delete(r.transactions, objectID)
	return nil
}

func (r *Transactions) DeleteTransactionsByEmail(_ context.Context, email string) (int64, error) {
	if err := r.fault("DeleteTransactionsByEmail"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for id, tx := range r.transactions {
		if tx.Email == email {
			delete(r.transactions, id)
			n++
		}
	}
	return n, nil
}

// ResetTokens is an in-memory PasswordResetTokenRepository.
type ResetTokens struct {
	faults
	mu     sync.Mutex
	tokens map[string]model.PasswordResetToken
}

func NewResetTokens() *ResetTokens {
	return &ResetTokens{tokens: map[string]model.PasswordResetToken{}}
}

// Count returns the number of stored tokens for email.
func (r *ResetTokens) Count(email string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, tok := range r.tokens {
		if tok.Email == email {
			n++
		}
	}
	return n
}

func (r *ResetTokens) CreateToken(
	_ context.Context,
	token *model.PasswordResetToken,
) (*model.PasswordResetToken, error) {
	if err := r.fault("CreateToken"); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tokens[token.JTI]; ok {
		return nil, duplicateKeyError()
	}

	now := time.Now()
	token.ID = bson.NewObjectID()
	token.CreatedAt = now
	token.UpdatedAt = now
	token.Used = false
	r.tokens[token.JTI] = *token

	return token, nil
}

func (r *ResetTokens) ConsumeToken(_ context.Context, jti string) (bool, error) {
	if err := r.fault("ConsumeToken"); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tok, ok := r.tokens[jti]
	if !ok || tok.Used {
		return false, nil
	}
	tok.Used = true
	tok.UpdatedAt = time.Now()
	r.tokens[jti] = tok
	return true, nil
}

func (r *ResetTokens) InvalidateEmailTokens(_ context.Context, email string) error {
	if err := r.fault("InvalidateEmailTokens"); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	for jti, tok := range r.tokens {
		if tok.Email == email && !tok.Used {
			tok.Used = true
			r.tokens[jti] = tok
		}
	}
	return nil
}

func (r *ResetTokens) DeleteTokensByEmail(_ context.Context, email string) (int64, error) {
	if err := r.fault("DeleteTokensByEmail"); err != nil {
		return 0, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64
	for jti, tok := range r.tokens {
		if tok.Email == email {
			delete(r.tokens, jti)
			n++
		}
	}
	return n, nil
}
