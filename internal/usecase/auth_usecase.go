package usecase

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	repo "smokeysalmons/internal/repository"
)

// メールまたはパスワードが違う（どちらが違うかは出さない）
var ErrInvalidCredentials = errors.New("invalid credentials")

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(adminID string, email string, now time.Time) (token string, expiresAt time.Time, err error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type BcryptPasswordVerifier struct{}

func NewBcryptPasswordVerifier() *BcryptPasswordVerifier {
	return &BcryptPasswordVerifier{}
}

func (v *BcryptPasswordVerifier) Verify(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}

type AuthUsecase struct {
	admins   repo.AdminUserRepository
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

func NewAuthUsecase(
	admins repo.AdminUserRepository,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{admins: admins, verifier: verifier, issuer: issuer, clock: clock}
}

type LoginInput struct {
	Email    string
	Password string
}

type LoginOutput struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Loginは管理者を認証してアクセストークンを返す
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (LoginOutput, error) {
	admin, err := u.admins.FindByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return LoginOutput{}, ErrInvalidCredentials
		}
		return LoginOutput{}, err
	}

	if !admin.IsActive {
		return LoginOutput{}, ErrInvalidCredentials
	}

	if !u.verifier.Verify(in.Password, admin.PasswordHash) {
		return LoginOutput{}, ErrInvalidCredentials
	}

	token, expiresAt, err := u.issuer.Issue(admin.ID, admin.Email, u.clock.Now())
	if err != nil {
		return LoginOutput{}, err
	}

	return LoginOutput{AccessToken: token, ExpiresAt: expiresAt}, nil
}

