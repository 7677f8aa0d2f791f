// Package account implements signup, login, email verification and profile
// editing over the shared store.
package account

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"eats-backend/internal/auth"
	"eats-backend/internal/mail"
	"eats-backend/internal/store"
)

// ---------------------------------------------------------------------------
// Parameters (passed in from resolvers)
// ---------------------------------------------------------------------------

type CreateParams struct {
	Email    string            `validate:"required,email"`
	Password string            `validate:"required"`
	Role     store.AccountRole `validate:"required"`
}

type LoginParams struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// EditProfileParams carries a partial update; nil fields stay untouched.
type EditProfileParams struct {
	Email    *string `validate:"omitempty,email"`
	Password *string
}

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

type Service struct {
	store    *store.Store
	mailer   mail.Mailer
	tokens   auth.Manager
	hasher   PasswordHasher
	validate *validator.Validate
	log      *logrus.Entry
}

func NewService(st *store.Store, mailer mail.Mailer, tokens auth.Manager, hasher PasswordHasher, log *logrus.Entry) *Service {
	return &Service{
		store:    st,
		mailer:   mailer,
		tokens:   tokens,
		hasher:   hasher,
		validate: validator.New(),
		log:      log,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ---------------------------------------------------------------------------
// Create
// ---------------------------------------------------------------------------

// Create registers a new account and its pending verification in one
// transaction, then fires the verification email. The email is best-effort:
// a failed send is logged and signup still succeeds.
func (s *Service) Create(ctx context.Context, p CreateParams) error {
	if err := s.validate.Struct(p); err != nil {
		return ErrInvalidInput
	}
	if !store.ValidRole(p.Role) {
		return ErrInvalidInput
	}

	email := normalizeEmail(p.Email)
	existing, err := s.store.Accounts.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrEmailTaken
	}

	hash, err := s.hasher.Hash(p.Password)
	if err != nil {
		return err
	}

	var code string
	err = s.store.Transaction(ctx, func(tx *store.Store) error {
		a := &store.Account{Email: email, PasswordHash: hash, Role: p.Role}
		if err := tx.Accounts.Create(ctx, a); err != nil {
			return err
		}
		v := &store.Verification{AccountID: a.ID}
		if err := tx.Verifications.Create(ctx, v); err != nil {
			return err
		}
		code = v.Code
		return nil
	})
	if err != nil {
		return err
	}

	s.sendVerification(ctx, email, code)
	return nil
}

// ---------------------------------------------------------------------------
// Login
// ---------------------------------------------------------------------------

// Login checks the credentials and returns a signed session token.
func (s *Service) Login(ctx context.Context, p LoginParams) (string, error) {
	if err := s.validate.Struct(p); err != nil {
		return "", ErrInvalidInput
	}

	a, err := s.store.Accounts.FindByEmail(ctx, normalizeEmail(p.Email))
	if err != nil {
		return "", err
	}
	if a == nil {
		return "", ErrNotFound
	}
	if !s.hasher.Verify(a.PasswordHash, p.Password) {
		return "", ErrWrongPassword
	}

	return s.tokens.Issue(a.ID)
}

// ---------------------------------------------------------------------------
// FindByID
// ---------------------------------------------------------------------------

func (s *Service) FindByID(ctx context.Context, id int32) (*store.Account, error) {
	a, err := s.store.Accounts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// ---------------------------------------------------------------------------
// EditProfile
// ---------------------------------------------------------------------------

// EditProfile applies a partial update to the caller's account. Changing the
// email resets the verified flag and swaps the pending verification for a
// fresh one, all in the same transaction; the new code is mailed out after
// commit. Saves that do not change the password never re-hash it.
func (s *Service) EditProfile(ctx context.Context, accountID int32, p EditProfileParams) error {
	if err := s.validate.Struct(p); err != nil {
		return ErrInvalidInput
	}

	var (
		emailChanged bool
		email, code  string
	)
	err := s.store.Transaction(ctx, func(tx *store.Store) error {
		a, err := tx.Accounts.FindByID(ctx, accountID)
		if err != nil {
			return err
		}
		if a == nil {
			return ErrNotFound
		}

		if p.Email != nil && normalizeEmail(*p.Email) != a.Email {
			next := normalizeEmail(*p.Email)
			other, err := tx.Accounts.FindByEmail(ctx, next)
			if err != nil {
				return err
			}
			if other != nil {
				return ErrEmailTaken
			}

			a.Email = next
			a.Verified = false
			if err := tx.Verifications.DeleteByAccount(ctx, a.ID); err != nil {
				return err
			}
			v := &store.Verification{AccountID: a.ID}
			if err := tx.Verifications.Create(ctx, v); err != nil {
				return err
			}
			emailChanged = true
			email, code = a.Email, v.Code
		}

		if p.Password != nil && *p.Password != "" {
			hash, err := s.hasher.Hash(*p.Password)
			if err != nil {
				return err
			}
			a.PasswordHash = hash
		}

		return tx.Accounts.Save(ctx, a)
	})
	if err != nil {
		return err
	}

	if emailChanged {
		s.sendVerification(ctx, email, code)
	}
	return nil
}

// ---------------------------------------------------------------------------
// VerifyEmail
// ---------------------------------------------------------------------------

// VerifyEmail consumes a one-time code: the owning account is marked
// verified and the verification row is deleted, so a second attempt with the
// same code fails.
func (s *Service) VerifyEmail(ctx context.Context, code string) error {
	return s.store.Transaction(ctx, func(tx *store.Store) error {
		v, err := tx.Verifications.FindByCode(ctx, code)
		if err != nil {
			return err
		}
		if v == nil {
			return ErrCodeNotFound
		}

		a := v.Account
		a.Verified = true
		if err := tx.Accounts.Save(ctx, &a); err != nil {
			return err
		}
		return tx.Verifications.Delete(ctx, v.ID)
	})
}

// sendVerification fires the verification email and logs a failed send
// without surfacing it.
func (s *Service) sendVerification(ctx context.Context, email string, code string) {
	if err := s.mailer.SendVerification(ctx, email, code); err != nil {
		s.log.WithError(err).WithField("email", email).Warn("verification email not sent")
	}
}
