package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"hotelres/internal/domains/auth/model"
	"sync"
)

var (
	ErrAccountNotFound = errors.New("account not found")
	ErrEmailTaken      = errors.New("email already registered")
)

// Account stores guest accounts. Emails are expected in normalized form.
type Account interface {
	Insert(ctx context.Context, account model.Account) error
	GetByEmail(ctx context.Context, email string) (model.Account, error)
	GetByID(ctx context.Context, id string) (model.Account, error)
}

type memoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]model.Account
	byEmail map[string]string
}

// NewMemory keeps accounts for the life of the process.
func NewMemory() Account {
	return &memoryRepository{
		byID:    make(map[string]model.Account),
		byEmail: make(map[string]string),
	}
}

func (r *memoryRepository) Insert(_ context.Context, account model.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[account.Email]; ok {
		return fmt.Errorf("failed to insert data (account): %w", ErrEmailTaken)
	}

	r.byID[account.ID] = account
	r.byEmail[account.Email] = account.ID

	return nil
}

func (r *memoryRepository) GetByEmail(_ context.Context, email string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return model.Account{}, ErrAccountNotFound
	}

	return r.byID[id], nil
}

func (r *memoryRepository) GetByID(_ context.Context, id string) (model.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.byID[id]
	if !ok {
		return model.Account{}, ErrAccountNotFound
	}

	return account, nil
}
