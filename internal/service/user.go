package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/equiledger/backend/internal/access"
	"github.com/equiledger/backend/internal/apperr"
	"github.com/equiledger/backend/internal/model"
	"github.com/equiledger/backend/internal/repository"
)

// UserUpdate is a partial update: nil fields are left unchanged.
type UserUpdate struct {
	FName             *string `json:"fname"`
	MName             *string `json:"mname"`
	SName             *string `json:"sname"`
	PhoneNumber       *string `json:"phone_number"`
	DateOfBirth       *string `json:"date_of_birth"`
	PPSNo             *string `json:"ppsno"`
	IDImageURL        *string `json:"id_image_url"`
	Currency          *string `json:"currency"`
	AddressLine1      *string `json:"address_line1"`
	AddressLine2      *string `json:"address_line2"`
	City              *string `json:"city"`
	State             *string `json:"state"`
	Country           *string `json:"country"`
	TaxStatus         *string `json:"tax_status"`
	MaritalStatus     *string `json:"marital_status"`
	PostalCode        *string `json:"postal_code"`
	Occupation        *string `json:"occupation"`
	Role              *string `json:"role"`
	SubscriptionLevel *string `json:"subscription_level"`
	AccountStatus     *string `json:"account_status"`
	IsAutoRenew       *bool   `json:"is_auto_renew"`
	PaymentMethod     *string `json:"payment_method"`
	RenewalDate       *string `json:"renewal_date"`
}

type Users interface {
	GetAll(ctx context.Context, caller access.Caller) ([]model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	Update(ctx context.Context, caller access.Caller, email string, update *UserUpdate) (*model.User, error)
	Delete(ctx context.Context, caller access.Caller, email string) error
}

type User struct {
	repo repository.User
}

func NewUser(repo repository.User) *User {
	return &User{
		repo: repo,
	}
}

func (u *User) GetAll(ctx context.Context, caller access.Caller) ([]model.User, error) {
	if !access.CanListAll(caller.Role) {
		logrus.Warnf("unauthorized list-all attempt by user: %s", caller.Email)
		return nil, apperr.ErrForbidden
	}
	return u.repo.GetAll(ctx)
}

func (u *User) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

func (u *User) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

// Update applies a partial update to the account addressed by email.
// Not-found is resolved before access so the two outcomes stay
// distinguishable. A role change is honored only when the caller is an
// admin; an accountant's role field is skipped while the rest of the
// payload still applies.
func (u *User) Update(ctx context.Context, caller access.Caller, email string, update *UserUpdate) (*model.User, error) {
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		logrus.Warnf("user not found for update with email: %s", email)
		return nil, apperr.ErrNotFound
	}

	if !access.CanMutate(caller, access.ByEmail(user.Email)) {
		logrus.Warnf("unauthorized update attempt by user: %s for user email: %s", caller.Email, email)
		return nil, apperr.ErrForbidden
	}

	merge(&user.FName, update.FName)
	merge(&user.MName, update.MName)
	merge(&user.SName, update.SName)
	merge(&user.PhoneNumber, update.PhoneNumber)
	merge(&user.DateOfBirth, update.DateOfBirth)
	merge(&user.PPSNo, update.PPSNo)
	merge(&user.IDImageURL, update.IDImageURL)
	merge(&user.Currency, update.Currency)
	merge(&user.AddressLine1, update.AddressLine1)
	merge(&user.AddressLine2, update.AddressLine2)
	merge(&user.City, update.City)
	merge(&user.State, update.State)
	merge(&user.Country, update.Country)
	merge(&user.TaxStatus, update.TaxStatus)
	merge(&user.MaritalStatus, update.MaritalStatus)
	merge(&user.PostalCode, update.PostalCode)
	merge(&user.Occupation, update.Occupation)
	merge(&user.SubscriptionLevel, update.SubscriptionLevel)
	merge(&user.AccountStatus, update.AccountStatus)
	merge(&user.PaymentMethod, update.PaymentMethod)
	merge(&user.RenewalDate, update.RenewalDate)
	if update.IsAutoRenew != nil {
		user.IsAutoRenew = *update.IsAutoRenew
	}

	if update.Role != nil {
		role := model.Role(*update.Role)
		if caller.Role == model.RoleAdmin && role.Valid() {
			user.Role = role
		} else {
			logrus.Warnf("role change by %s (%s) on %s skipped", caller.Email, caller.Role, email)
		}
	}

	updated, err := u.repo.UpdateByEmail(ctx, email, user)
	if err != nil {
		return nil, err
	}

	logrus.Infof("user updated successfully: %s", email)
	return updated, nil
}

// Delete removes the account permanently. Owned expenses are left in
// place; there is no cascade.
func (u *User) Delete(ctx context.Context, caller access.Caller, email string) error {
	user, err := u.repo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if user == nil {
		logrus.Warnf("user not found for deletion with email: %s", email)
		return apperr.ErrNotFound
	}

	if !access.CanMutate(caller, access.ByEmail(user.Email)) {
		logrus.Warnf("unauthorized delete attempt by user: %s for user email: %s", caller.Email, email)
		return apperr.ErrForbidden
	}

	if err = u.repo.DeleteByEmail(ctx, email); err != nil {
		return err
	}

	logrus.Infof("user deleted successfully: %s", email)
	return nil
}

func merge(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}
