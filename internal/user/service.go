package user

import (
	"bookStore/internal/apperror"
	"bookStore/internal/session"
	"context"
	"errors"
	"fmt"
	"golang.org/x/crypto/bcrypt"
)

const (
	emailTakenMessage    = "Email already taken"
	restrictionsMessage  = "Too big length of name/email or unsuitable password length"
	notRegisteredMessage = "Account not registered"
)

type Service struct {
	storage  Storage
	sessions *session.Store
	hashCost int
}

func NewService(storage Storage, sessions *session.Store) *Service {
	return &Service{storage: storage, sessions: sessions, hashCost: bcrypt.DefaultCost}
}

func (s *Service) Register(ctx context.Context, request User) (*User, error) {
	request.Email = NormalizeEmail(request.Email)
	if request.FirstName == "" || request.LastName == "" || request.Email == "" || request.Password == "" {
		return nil, apperror.InvalidParam(apperror.MissingParamsMessage)
	}
	if !SuitableForRestrictions(&request) {
		return nil, apperror.InvalidParam(restrictionsMessage)
	}

	taken, err := s.storage.IsEmailTaken(ctx, request.Email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, apperror.InvalidParam(emailTakenMessage)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	id, err := s.storage.Create(ctx, &request, string(hash))
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return &User{ID: id, FirstName: request.FirstName, LastName: request.LastName, Email: request.Email}, nil
}

// Login checks credentials and issues a fresh session token, replacing any older one.
func (s *Service) Login(ctx context.Context, request LoginRequest) (string, error) {
	email := NormalizeEmail(request.Email)
	if email == "" || request.Password == "" {
		return "", apperror.InvalidParam(apperror.MissingParamsMessage)
	}

	creds, err := s.storage.FindCredentials(ctx, email)
	if err != nil {
		return "", fmt.Errorf("find credentials: %w", err)
	}
	if creds == nil {
		return "", apperror.InvalidParam(notRegisteredMessage)
	}

	err = bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(request.Password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return "", apperror.InvalidParam(notRegisteredMessage)
	}
	if err != nil {
		return "", fmt.Errorf("compare password: %w", err)
	}

	return s.sessions.Create(ctx, creds.UserID)
}

func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return apperror.InvalidParam("No user logged in.")
	}
	return s.sessions.Invalidate(ctx, token)
}

func (s *Service) Identify(ctx context.Context, token string) (*session.Identity, error) {
	return s.sessions.Resolve(ctx, token)
}
