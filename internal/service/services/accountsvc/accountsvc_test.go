package accountsvc_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tiffinbox/marketplace/internal/auth"
	"github.com/tiffinbox/marketplace/internal/service/models/apartment"
	"github.com/tiffinbox/marketplace/internal/service/models/customer"
	"github.com/tiffinbox/marketplace/internal/service/models/order"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
	"github.com/tiffinbox/marketplace/internal/service/services/accountsvc"
)

type fakeCustomerRepo struct {
	customers map[int64]customer.Customer
	queries   []string
	nextID    int64
}

func (f *fakeCustomerRepo) Insert(_ context.Context, c customer.Customer) (int64, error) {
	f.nextID++
	c.ID = f.nextID
	f.customers[c.ID] = c

	return c.ID, nil
}

func (f *fakeCustomerRepo) GetByID(_ context.Context, id int64) (*customer.Customer, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, customer.ErrNotFound
	}

	return &c, nil
}

func (f *fakeCustomerRepo) GetByPhone(_ context.Context, phoneNumber string) (*customer.Customer, error) {
	for _, c := range f.customers {
		if c.PhoneNumber == phoneNumber {
			return &c, nil
		}
	}

	return nil, nil
}

func (f *fakeCustomerRepo) ListByIDs(_ context.Context, _ []int64) ([]customer.Customer, error) {
	return nil, nil
}

func (f *fakeCustomerRepo) InsertQuery(_ context.Context, _ int64, query string) error {
	f.queries = append(f.queries, query)

	return nil
}

type fakeVendorRepo struct {
	vendors map[int64]vendor.Vendor
	nextID  int64
}

func (f *fakeVendorRepo) Insert(_ context.Context, v vendor.Vendor) (int64, error) {
	f.nextID++
	v.ID = f.nextID
	f.vendors[v.ID] = v

	return v.ID, nil
}

func (f *fakeVendorRepo) GetByID(_ context.Context, id int64) (*vendor.Vendor, error) {
	v, ok := f.vendors[id]
	if !ok {
		return nil, vendor.ErrNotFound
	}

	return &v, nil
}

func (f *fakeVendorRepo) GetByPhone(_ context.Context, phoneNumber string) (*vendor.Vendor, error) {
	for _, v := range f.vendors {
		if v.PhoneNumber == phoneNumber {
			return &v, nil
		}
	}

	return nil, nil
}

func (f *fakeVendorRepo) ListByApartment(_ context.Context, _ int64) ([]vendor.Vendor, error) {
	return nil, nil
}

func (f *fakeVendorRepo) UpdateRating(_ context.Context, _ int64, _ float64) error {
	return nil
}

func (f *fakeVendorRepo) UpdateProfile(_ context.Context, id int64, email, note string) error {
	v := f.vendors[id]
	v.Email = email
	v.Note = note
	f.vendors[id] = v

	return nil
}

type fakeApartmentRepo struct{}

func (f *fakeApartmentRepo) Insert(_ context.Context, a apartment.Apartment) (apartment.Apartment, error) {
	return a, nil
}

func (f *fakeApartmentRepo) GetByID(_ context.Context, id int64) (*apartment.Apartment, error) {
	return &apartment.Apartment{ID: id, Name: "Green Residency"}, nil
}

func (f *fakeApartmentRepo) ListAll(_ context.Context) ([]apartment.Apartment, error) {
	return nil, nil
}

func (f *fakeApartmentRepo) Search(_ context.Context, _ string, _ int) ([]apartment.Apartment, error) {
	return nil, nil
}

type fakeOTPRepo struct {
	codes map[string]string
}

func (f *fakeOTPRepo) Store(_ context.Context, phoneNumber, code string) error {
	f.codes[phoneNumber] = code

	return nil
}

func (f *fakeOTPRepo) Get(_ context.Context, phoneNumber string) (string, error) {
	return f.codes[phoneNumber], nil
}

func (f *fakeOTPRepo) Delete(_ context.Context, phoneNumber string) error {
	delete(f.codes, phoneNumber)

	return nil
}

type fakeSMSSender struct {
	sent map[string]string
	fail bool
}

func (f *fakeSMSSender) SendOTP(_ context.Context, phoneNumber, code string) error {
	if f.fail {
		return errors.New("gateway unreachable")
	}
	f.sent[phoneNumber] = code

	return nil
}

type fakeNotifyRepo struct {
	queries []string
	fail    bool
}

func (f *fakeNotifyRepo) PublishOrderPlaced(_ context.Context, _ order.Order) error {
	return nil
}

func (f *fakeNotifyRepo) PublishCustomerQuery(_ context.Context, _ int64, _, query string) error {
	if f.fail {
		return errors.New("publish failed")
	}
	f.queries = append(f.queries, query)

	return nil
}

func newAccount(t *testing.T) (*accountsvc.AccountService, *fakeCustomerRepo, *fakeVendorRepo, *fakeOTPRepo, *fakeSMSSender, *fakeNotifyRepo) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	customerRepo := &fakeCustomerRepo{customers: make(map[int64]customer.Customer)}
	vendorRepo := &fakeVendorRepo{vendors: make(map[int64]vendor.Vendor)}
	otpRepo := &fakeOTPRepo{codes: make(map[string]string)}
	sms := &fakeSMSSender{sent: make(map[string]string)}
	notifyRepo := &fakeNotifyRepo{}

	svc := accountsvc.MustNewAccountService(
		accountsvc.WithCustomerRepository(customerRepo),
		accountsvc.WithVendorRepository(vendorRepo),
		accountsvc.WithApartmentRepository(&fakeApartmentRepo{}),
		accountsvc.WithOTPRepository(otpRepo),
		accountsvc.WithNotificationRepository(notifyRepo),
		accountsvc.WithSMSSender(sms),
	)

	return svc, customerRepo, vendorRepo, otpRepo, sms, notifyRepo
}

func TestSignupCustomerMintsToken(t *testing.T) {
	svc, _, _, _, _, _ := newAccount(t)

	c, token, err := svc.SignupCustomer(context.Background(), customer.Customer{
		Name:        "Asha",
		PhoneNumber: "+911234567890",
		ApartmentID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.ID)

	claims, err := auth.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, c.ID, claims.CustomerID)
	assert.Zero(t, claims.VendorID)
	assert.Equal(t, "Asha", claims.Name)
}

func TestCheckCustomer(t *testing.T) {
	svc, _, _, _, _, _ := newAccount(t)

	c, token, err := svc.CheckCustomer(context.Background(), "+911234567890")
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Empty(t, token)

	_, _, err = svc.SignupCustomer(context.Background(), customer.Customer{
		Name:        "Asha",
		PhoneNumber: "+911234567890",
		ApartmentID: 1,
	})
	require.NoError(t, err)

	c, token, err = svc.CheckCustomer(context.Background(), "+911234567890")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.NotEmpty(t, token)
}

func TestSendAndVerifyOTP(t *testing.T) {
	svc, _, _, otpRepo, sms, _ := newAccount(t)

	code, err := svc.SendOTP(context.Background(), "+911234567890")
	require.NoError(t, err)
	require.Len(t, code, 4)
	assert.Equal(t, code, sms.sent["+911234567890"])
	assert.Equal(t, code, otpRepo.codes["+911234567890"])

	ok, err := svc.VerifyOTP(context.Background(), "+911234567890", "0000")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = svc.VerifyOTP(context.Background(), "+911234567890", code)
	require.NoError(t, err)
	assert.True(t, ok)

	// the code is consumed on a successful match
	ok, err = svc.VerifyOTP(context.Background(), "+911234567890", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSendOTPGatewayFailure(t *testing.T) {
	svc, _, _, _, sms, _ := newAccount(t)
	sms.fail = true

	_, err := svc.SendOTP(context.Background(), "+911234567890")
	assert.Error(t, err)
}

func TestCustomerQueryPublishFailureSurfaces(t *testing.T) {
	svc, customerRepo, _, _, _, notifyRepo := newAccount(t)
	customerRepo.customers[1] = customer.Customer{ID: 1, Name: "Asha"}

	require.NoError(t, svc.CustomerQuery(context.Background(), 1, "where is my order"))
	assert.Equal(t, []string{"where is my order"}, notifyRepo.queries)
	assert.Equal(t, []string{"where is my order"}, customerRepo.queries)

	notifyRepo.fail = true
	err := svc.CustomerQuery(context.Background(), 1, "second question")
	assert.Error(t, err)
	// the row is still stored even when the publish fails
	assert.Contains(t, customerRepo.queries, "second question")
}

func TestUpdateVendorDetails(t *testing.T) {
	svc, _, vendorRepo, _, _, _ := newAccount(t)
	_, _, err := svc.SignupVendor(context.Background(), vendor.Vendor{
		Name:        "Asha Kitchen",
		PhoneNumber: "+919999999999",
		ApartmentID: 1,
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateVendorDetails(context.Background(), 1, "asha@example.com", "home cooked"))
	assert.Equal(t, "asha@example.com", vendorRepo.vendors[1].Email)
	assert.Equal(t, "home cooked", vendorRepo.vendors[1].Note)
}
