package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/equiledger/backend/internal/apperr"
	"github.com/equiledger/backend/internal/model"
	"github.com/equiledger/backend/internal/repository"
)

const bcryptCost = 10

// RegisterInput is the self-service (or invited) registration payload.
type RegisterInput struct {
	FName             string `json:"fname" validate:"required"`
	MName             string `json:"mname"`
	SName             string `json:"sname" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	PhoneNumber       string `json:"phone_number"`
	DateOfBirth       string `json:"date_of_birth" validate:"required"`
	PPSNo             string `json:"ppsno"`
	IDImageURL        string `json:"id_image_url"`
	Currency          string `json:"currency"`
	AddressLine1      string `json:"address_line1"`
	AddressLine2      string `json:"address_line2"`
	City              string `json:"city"`
	State             string `json:"state"`
	Country           string `json:"country"`
	TaxStatus         string `json:"tax_status"`
	MaritalStatus     string `json:"marital_status"`
	PostalCode        string `json:"postal_code"`
	Occupation        string `json:"occupation"`
	Password          string `json:"password" validate:"required"`
	Role              string `json:"role"`
	SubscriptionLevel string `json:"subscription_level"`
	AccountStatus     string `json:"account_status"`
	IsAutoRenew       *bool  `json:"is_auto_renew"`
	PaymentMethod     string `json:"payment_method"`
	RenewalDate       string `json:"renewal_date"`
	InviteToken       string `json:"token"`
}

type Authorization interface {
	Register(ctx context.Context, in *RegisterInput) (*model.User, string, error)
	Login(ctx context.Context, email, password string) (*model.User, string, error)
	DashboardLogin(ctx context.Context, email, password string) (*model.User, string, error)
	Invite(ctx context.Context, email string) error
	RequestPasswordReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

type Auth struct {
	users       repository.User
	tokens      *Tokens
	mailer      Mailer
	frontendURL string
}

func NewAuth(users repository.User, tokens *Tokens, mailer Mailer, frontendURL string) *Auth {
	return &Auth{
		users:       users,
		tokens:      tokens,
		mailer:      mailer,
		frontendURL: frontendURL,
	}
}

// Register creates an account and returns it with a fresh session
// token. The existence check here is only the fast path for a friendly
// 400; the unique constraint in the store decides the race.
func (a *Auth) Register(ctx context.Context, in *RegisterInput) (*model.User, string, error) {
	if in.InviteToken != "" {
		claims, err := a.tokens.VerifyInvite(in.InviteToken)
		if err != nil {
			return nil, "", apperr.Validationf("Invalid or expired invite token.")
		}
		if claims.Email != in.Email {
			return nil, "", apperr.Validationf("Invalid invite token.")
		}
	}

	existing, err := a.users.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", err
	}
	if existing != nil {
		return nil, "", apperr.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcryptCost)
	if err != nil {
		return nil, "", fmt.Errorf("service.Auth, hash password error: %v", err)
	}

	role := model.Role(in.Role)
	if !role.Valid() {
		role = model.RoleClient
	}

	user := &model.User{
		FName:             in.FName,
		MName:             in.MName,
		SName:             in.SName,
		Email:             in.Email,
		PhoneNumber:       in.PhoneNumber,
		DateOfBirth:       in.DateOfBirth,
		PPSNo:             in.PPSNo,
		IDImageURL:        in.IDImageURL,
		Currency:          in.Currency,
		AddressLine1:      in.AddressLine1,
		AddressLine2:      in.AddressLine2,
		City:              in.City,
		State:             in.State,
		Country:           in.Country,
		TaxStatus:         in.TaxStatus,
		MaritalStatus:     in.MaritalStatus,
		PostalCode:        in.PostalCode,
		Occupation:        in.Occupation,
		PasswordHash:      string(hash),
		Role:              role,
		SubscriptionLevel: defaultString(in.SubscriptionLevel, "free"),
		AccountStatus:     defaultString(in.AccountStatus, "active"),
		IsAutoRenew:       in.IsAutoRenew == nil || *in.IsAutoRenew,
		PaymentMethod:     in.PaymentMethod,
		RenewalDate:       in.RenewalDate,
	}

	created, err := a.users.Create(ctx, user)
	if err != nil {
		return nil, "", err
	}

	token, err := a.tokens.IssueSession(created.ID, created.Role)
	if err != nil {
		return nil, "", err
	}

	logrus.Infof("user created successfully: %s", created.Email)
	return created, token, nil
}

func (a *Auth) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := a.authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := a.tokens.IssueSession(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	if err = a.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logrus.Errorf("could not stamp last login for %s: %s", email, err)
	}

	logrus.Infof("user logged in successfully: %s", email)
	return user, token, nil
}

// DashboardLogin is the credential exchange for the back-office
// dashboard: same checks as Login plus an elevated-role requirement.
func (a *Auth) DashboardLogin(ctx context.Context, email, password string) (*model.User, string, error) {
	user, err := a.authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}
	if !user.Role.Elevated() {
		logrus.Warnf("user %s does not have the required role for the dashboard", email)
		return nil, "", apperr.ErrBadCredentials
	}

	token, err := a.tokens.IssueSession(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}

	if err = a.users.UpdateLastLogin(ctx, user.ID); err != nil {
		logrus.Errorf("could not stamp last login for %s: %s", email, err)
	}

	return user, token, nil
}

func (a *Auth) authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logrus.Warnf("invalid login attempt for email: %s", email)
		return nil, apperr.ErrBadCredentials
	}
	if err = bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logrus.Warnf("invalid password for email: %s", email)
		return nil, apperr.ErrBadCredentials
	}
	return user, nil
}

// Invite mails a time-limited registration link to a not-yet-existing
// address.
func (a *Auth) Invite(ctx context.Context, email string) error {
	existing, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.ErrDuplicateEmail
	}

	token, err := a.tokens.IssueInvite(email)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/create-user?token=%s", a.frontendURL, token)
	body := fmt.Sprintf("You have been invited to create an account. Click the link to create your account: %s", link)
	if err = a.mailer.Send(email, "You have been invited to create an account", body); err != nil {
		return err
	}

	logrus.Infof("invitation email sent to: %s", email)
	return nil
}

func (a *Auth) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := a.users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		logrus.Warnf("password reset requested for non-existing user: %s", email)
		return apperr.ErrNotFound
	}

	token, err := a.tokens.IssueReset(user.ID)
	if err != nil {
		return err
	}

	link := fmt.Sprintf("%s/reset-password?token=%s", a.frontendURL, token)
	body := fmt.Sprintf("You requested a password reset. Click the link to reset your password: %s", link)
	if err = a.mailer.Send(email, "Password Reset", body); err != nil {
		return err
	}

	logrus.Infof("password reset email sent to: %s", email)
	return nil
}

func (a *Auth) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := a.tokens.VerifyReset(token)
	if err != nil {
		return err
	}

	user, err := a.users.GetByID(ctx, claims.UserID)
	if err != nil {
		return err
	}
	if user == nil {
		logrus.Warnf("password reset attempted for non-existing user: %d", claims.UserID)
		return apperr.ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcryptCost)
	if err != nil {
		return fmt.Errorf("service.Auth, hash password error: %v", err)
	}
	if err = a.users.UpdatePassword(ctx, user.Email, string(hash)); err != nil {
		return err
	}

	logrus.Infof("password reset successfully for user: %s", user.Email)
	return nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
