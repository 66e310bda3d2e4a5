package accountsvc

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/tiffinbox/marketplace/internal/auth"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/iapartmentrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/icustomerrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/inotifyrepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/iotprepo"
	"github.com/tiffinbox/marketplace/internal/dal/interfaces/ivendorrepo"
	"github.com/tiffinbox/marketplace/internal/service/models/apartment"
	"github.com/tiffinbox/marketplace/internal/service/models/customer"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
)

// smsSender delivers one-time codes out of band.
type smsSender interface {
	SendOTP(ctx context.Context, phoneNumber, code string) error
}

// AccountService owns signup, login by phone, contact verification and
// account profiles for both customers and vendors.
type AccountService struct {
	customerRepo  icustomerrepo.ICustomerRepository
	vendorRepo    ivendorrepo.IVendorRepository
	apartmentRepo iapartmentrepo.IApartmentRepository
	otpRepo       iotprepo.IOTPRepository
	notifyRepo    inotifyrepo.INotificationRepository
	sms           smsSender
}

// option is a function that configures the AccountService.
type option func(*AccountService)

// MustNewAccountService creates a new AccountService.
func MustNewAccountService(opts ...option) *AccountService {
	s := &AccountService{}
	for _, opt := range opts {
		opt(s)
	}

	return s
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithCustomerRepository(repo icustomerrepo.ICustomerRepository) option {
	return func(s *AccountService) {
		s.customerRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithVendorRepository(repo ivendorrepo.IVendorRepository) option {
	return func(s *AccountService) {
		s.vendorRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithApartmentRepository(repo iapartmentrepo.IApartmentRepository) option {
	return func(s *AccountService) {
		s.apartmentRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithOTPRepository(repo iotprepo.IOTPRepository) option {
	return func(s *AccountService) {
		s.otpRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithNotificationRepository(repo inotifyrepo.INotificationRepository) option {
	return func(s *AccountService) {
		s.notifyRepo = repo
	}
}

//goland:noinspection GoExportedFuncWithUnexportedType
func WithSMSSender(sender smsSender) option {
	return func(s *AccountService) {
		s.sms = sender
	}
}

// SignupCustomer registers a customer and returns it with a minted token.
func (s *AccountService) SignupCustomer(ctx context.Context, c customer.Customer) (customer.Customer, string, error) {
	id, err := s.customerRepo.Insert(ctx, c)
	if err != nil {
		return customer.Customer{}, "", err
	}
	c.ID = id

	token, err := auth.NewCustomerToken(c.ID, c.Name)
	if err != nil {
		return customer.Customer{}, "", err
	}

	return c, token, nil
}

// SignupVendor registers a vendor and returns it with a minted token.
func (s *AccountService) SignupVendor(ctx context.Context, v vendor.Vendor) (vendor.Vendor, string, error) {
	id, err := s.vendorRepo.Insert(ctx, v)
	if err != nil {
		return vendor.Vendor{}, "", err
	}
	v.ID = id

	token, err := auth.NewVendorToken(v.ID, v.Name)
	if err != nil {
		return vendor.Vendor{}, "", err
	}

	return v, token, nil
}

// CheckCustomer looks a customer up by phone number. A nil customer means the
// number is unregistered; when found a fresh token is minted alongside.
func (s *AccountService) CheckCustomer(ctx context.Context, phoneNumber string) (*customer.Customer, string, error) {
	c, err := s.customerRepo.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, "", err
	}
	if c == nil {
		return nil, "", nil
	}

	token, err := auth.NewCustomerToken(c.ID, c.Name)
	if err != nil {
		return nil, "", err
	}

	return c, token, nil
}

// CheckVendor looks a vendor up by phone number, minting a token when found.
func (s *AccountService) CheckVendor(ctx context.Context, phoneNumber string) (*vendor.Vendor, string, error) {
	v, err := s.vendorRepo.GetByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, "", err
	}
	if v == nil {
		return nil, "", nil
	}

	token, err := auth.NewVendorToken(v.ID, v.Name)
	if err != nil {
		return nil, "", err
	}

	return v, token, nil
}

// SendOTP generates a four digit code, stores it with a TTL and dispatches it
// over SMS. The code is returned so the handler can echo it.
func (s *AccountService) SendOTP(ctx context.Context, phoneNumber string) (string, error) {
	code := fmt.Sprintf("%d", rand.Intn(9000)+1000)

	if err := s.otpRepo.Store(ctx, phoneNumber, code); err != nil {
		return "", err
	}

	if err := s.sms.SendOTP(ctx, phoneNumber, code); err != nil {
		return "", err
	}

	return code, nil
}

// VerifyOTP checks a submitted code against the stored one and consumes it on
// a match.
func (s *AccountService) VerifyOTP(ctx context.Context, phoneNumber, code string) (bool, error) {
	stored, err := s.otpRepo.Get(ctx, phoneNumber)
	if err != nil {
		return false, err
	}
	if stored == "" || stored != code {
		return false, nil
	}

	if err := s.otpRepo.Delete(ctx, phoneNumber); err != nil {
		slog.Error("Failed to delete consumed otp", "phone_number", phoneNumber, "error", err)
	}

	return true, nil
}

// CustomerDetails returns a customer together with their apartment.
func (s *AccountService) CustomerDetails(ctx context.Context, customerID int64) (*customer.Customer, *apartment.Apartment, error) {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, nil, err
	}

	a, err := s.apartmentRepo.GetByID(ctx, c.ApartmentID)
	if err != nil {
		slog.Error("Failed to load customer apartment", "customer_id", customerID, "error", err)

		return c, nil, nil
	}

	return c, a, nil
}

// UpdateVendorDetails overwrites a vendor's contact email and note.
func (s *AccountService) UpdateVendorDetails(ctx context.Context, vendorID int64, email, note string) error {
	return s.vendorRepo.UpdateProfile(ctx, vendorID, email, note)
}

// CustomerQuery records a support query and forwards it to the mailer queue.
// A publish failure is surfaced to the caller; the stored row is kept.
func (s *AccountService) CustomerQuery(ctx context.Context, customerID int64, query string) error {
	c, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return err
	}

	if err := s.customerRepo.InsertQuery(ctx, customerID, query); err != nil {
		return err
	}

	return s.notifyRepo.PublishCustomerQuery(ctx, customerID, c.Name, query)
}
