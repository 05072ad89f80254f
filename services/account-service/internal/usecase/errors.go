package usecase

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserAlreadyExists   = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrInvalidToken        = errors.New("invalid token")
	ErrMailDelivery        = errors.New("failed to deliver email")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrGoalNotFound        = errors.New("goal not found")
	ErrTransactionNotFound = errors.New("transaction not found")
)
