package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/spf13/viper"
	"github.com/tiffinbox/marketplace/internal/service/models/apartment"
	"github.com/tiffinbox/marketplace/internal/service/models/customer"
	"github.com/tiffinbox/marketplace/internal/service/models/fooditem"
	"github.com/tiffinbox/marketplace/internal/service/models/ledger"
	"github.com/tiffinbox/marketplace/internal/service/models/review"
	"github.com/tiffinbox/marketplace/internal/service/models/vendor"
	"github.com/tiffinbox/marketplace/internal/service/services/catalogsvc"
	"github.com/tiffinbox/marketplace/internal/service/services/ordersvc"
	accountdetails "github.com/tiffinbox/marketplace/internal/transport/http/account_details"
	addfooditem "github.com/tiffinbox/marketplace/internal/transport/http/add_food_item"
	"github.com/tiffinbox/marketplace/internal/transport/http/apartments"
	availableorders "github.com/tiffinbox/marketplace/internal/transport/http/available_orders"
	checkuser "github.com/tiffinbox/marketplace/internal/transport/http/check_user"
	customerquery "github.com/tiffinbox/marketplace/internal/transport/http/customer_query"
	deleteexpired "github.com/tiffinbox/marketplace/internal/transport/http/delete_expired"
	deletefooditem "github.com/tiffinbox/marketplace/internal/transport/http/delete_food_item"
	editfooditem "github.com/tiffinbox/marketplace/internal/transport/http/edit_food_item"
	fetchorders "github.com/tiffinbox/marketplace/internal/transport/http/fetch_orders"
	getvendors "github.com/tiffinbox/marketplace/internal/transport/http/get_vendors"
	listfooditems "github.com/tiffinbox/marketplace/internal/transport/http/list_food_items"
	placeorder "github.com/tiffinbox/marketplace/internal/transport/http/place_order"
	"github.com/tiffinbox/marketplace/internal/transport/http/reviews"
	"github.com/tiffinbox/marketplace/internal/transport/http/signup"
	stoporders "github.com/tiffinbox/marketplace/internal/transport/http/stop_orders"
	updateavailableorders "github.com/tiffinbox/marketplace/internal/transport/http/update_available_orders"
	updateorderstatus "github.com/tiffinbox/marketplace/internal/transport/http/update_order_status"
	vendorfooditems "github.com/tiffinbox/marketplace/internal/transport/http/vendor_food_items"
	vendororders "github.com/tiffinbox/marketplace/internal/transport/http/vendor_orders"
	verifycontact "github.com/tiffinbox/marketplace/internal/transport/http/verify_contact"
	authmw "github.com/tiffinbox/marketplace/pkg/http/middleware/auth"
	"github.com/tiffinbox/marketplace/pkg/http/middleware/trace"
	"github.com/tiffinbox/marketplace/pkg/logger"
)

type orderService interface {
	PlaceOrder(ctx context.Context, customerID, apartmentID int64, items []ordersvc.RequestedItem) (*ordersvc.PlacementResult, error)
	FetchCustomerOrders(ctx context.Context, customerID int64) ([]ordersvc.CustomerOrder, error)
	VendorOrders(ctx context.Context, vendorID, apartmentID int64) ([]ordersvc.VendorOrderEntry, error)
	AcknowledgeNewOrders(ctx context.Context, vendorID, apartmentID int64) error
	MarkPrepared(ctx context.Context, orderIDs []int64, foodItemID int64) error
	MarkDelivered(ctx context.Context, orderID int64, foodItemIDs []int64) error
}

type catalogService interface {
	AddFoodItem(ctx context.Context, item fooditem.FoodItem) (int64, error)
	EditFoodItem(ctx context.Context, item fooditem.FoodItem) error
	DeleteFoodItem(ctx context.Context, vendorID, foodItemID int64) error
	VendorFoodItems(ctx context.Context, vendorID int64) ([]fooditem.FoodItem, error)
	ListFoodItems(ctx context.Context, apartmentID int64, ids []int64) ([]fooditem.Annotated, error)
	AvailableOrders(ctx context.Context, foodItemIDs []int64) ([]ledger.Entry, error)
	StopOrders(ctx context.Context, foodItemID int64) error
	UpdateAvailableOrders(ctx context.Context, vendorID, foodItemID int64, value int) error
	ListApartments(ctx context.Context) ([]apartment.Apartment, error)
	SaveApartment(ctx context.Context, a apartment.Apartment) (apartment.Apartment, error)
	SearchApartments(ctx context.Context, fragment string, limit int) ([]apartment.Apartment, error)
	ListVendors(ctx context.Context, apartmentID int64) ([]vendor.Vendor, error)
	VendorWithReviews(ctx context.Context, vendorID int64, includeReviews bool) (*catalogsvc.VendorProfile, error)
	WriteReview(ctx context.Context, rv review.Review) (review.Review, float64, error)
	VendorReviews(ctx context.Context, vendorID int64) ([]review.Review, error)
}

type accountService interface {
	SignupCustomer(ctx context.Context, c customer.Customer) (customer.Customer, string, error)
	SignupVendor(ctx context.Context, v vendor.Vendor) (vendor.Vendor, string, error)
	CheckCustomer(ctx context.Context, phoneNumber string) (*customer.Customer, string, error)
	CheckVendor(ctx context.Context, phoneNumber string) (*vendor.Vendor, string, error)
	SendOTP(ctx context.Context, phoneNumber string) (string, error)
	VerifyOTP(ctx context.Context, phoneNumber, code string) (bool, error)
	CustomerDetails(ctx context.Context, customerID int64) (*customer.Customer, *apartment.Apartment, error)
	UpdateVendorDetails(ctx context.Context, vendorID int64, email, note string) error
	CustomerQuery(ctx context.Context, customerID int64, query string) error
}

type sweeper interface {
	Sweep(ctx context.Context, now time.Time) error
}

type HTTPTransport struct {
	server     *http.Server
	router     *chi.Mux
	orderSvc   orderService
	catalogSvc catalogService
	accountSvc accountService
	sweeper    sweeper
}

func NewHTTPTransport(orderSvc orderService, catalogSvc catalogService, accountSvc accountService, sweeper sweeper) *HTTPTransport {
	router := newRouter()
	server := newServer(router)

	return &HTTPTransport{
		server:     server,
		router:     router,
		orderSvc:   orderSvc,
		catalogSvc: catalogSvc,
		accountSvc: accountSvc,
		sweeper:    sweeper,
	}
}

func (h *HTTPTransport) Run() error {
	return h.server.ListenAndServe()
}

func (h *HTTPTransport) Shutdown(ctx context.Context) error {
	return h.server.Shutdown(ctx)
}

// RegisterRoutes registers the routes for the HTTPTransport.
func (h *HTTPTransport) RegisterRoutes() {
	h.router.Route("/users", func(r chi.Router) {
		r.Post("/customer/signup", h.signupCustomer)
		r.Post("/vendor/signup", h.signupVendor)
		r.Post("/customer/check", h.checkCustomer)
		r.Post("/vendor/check", h.checkVendor)
		r.Post("/verify-contact", h.sendOTP)
		r.Post("/verify-otp", h.verifyOTP)
	})

	h.router.Route("/apartments", func(r chi.Router) {
		r.Get("/", h.listApartments)
		r.Post("/", h.saveApartment)
		r.Get("/search", h.searchApartments)
	})

	h.router.Route("/vendors", func(r chi.Router) {
		r.Get("/", h.listVendors)
		r.Get("/{vendorId}", h.vendorProfile)
		r.Get("/{vendorId}/reviews", h.vendorReviews)
	})

	h.router.Route("/auth/customer", func(r chi.Router) {
		r.Use(authmw.NewAuthMiddleware())
		r.Post("/place-order", h.placeOrder)
		r.Get("/fetch-orders", h.fetchOrders)
		r.Get("/food-items", h.listFoodItems)
		r.Get("/available-orders", h.availableOrders)
		r.Post("/reviews", h.writeReview)
		r.Get("/account-details", h.customerDetails)
		r.Post("/query", h.customerQuery)
	})

	h.router.Route("/auth/vendor", func(r chi.Router) {
		r.Use(authmw.NewAuthMiddleware())
		r.Get("/new-orders", h.vendorOrders)
		r.Post("/new-orders/acknowledge", h.acknowledgeNewOrders)
		r.Patch("/order-status", h.updateOrderStatus)
		r.Post("/food-items", h.addFoodItem)
		r.Put("/food-items", h.editFoodItem)
		r.Delete("/food-items/{foodItemId}", h.deleteFoodItem)
		r.Get("/food-items", h.vendorFoodItems)
		r.Post("/stop-orders", h.stopOrders)
		r.Patch("/available-orders", h.updateAvailableOrders)
		r.Get("/account-details", h.vendorDetails)
		r.Patch("/account-details", h.updateVendorDetails)
	})

	h.router.Route("/auth/admin", func(r chi.Router) {
		r.Use(authmw.NewAuthMiddleware())
		r.Post("/delete-expired-food", h.deleteExpiredFood)
	})
}

func (h *HTTPTransport) placeOrder(w http.ResponseWriter, r *http.Request) {
	placeorder.PlaceOrder(w, r, h.orderSvc)
}

func (h *HTTPTransport) fetchOrders(w http.ResponseWriter, r *http.Request) {
	fetchorders.FetchOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) vendorOrders(w http.ResponseWriter, r *http.Request) {
	vendororders.VendorOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) acknowledgeNewOrders(w http.ResponseWriter, r *http.Request) {
	vendororders.AcknowledgeNewOrders(w, r, h.orderSvc)
}

func (h *HTTPTransport) updateOrderStatus(w http.ResponseWriter, r *http.Request) {
	updateorderstatus.UpdateOrderStatus(w, r, h.orderSvc)
}

func (h *HTTPTransport) addFoodItem(w http.ResponseWriter, r *http.Request) {
	addfooditem.AddFoodItem(w, r, h.catalogSvc)
}

func (h *HTTPTransport) editFoodItem(w http.ResponseWriter, r *http.Request) {
	editfooditem.EditFoodItem(w, r, h.catalogSvc)
}

func (h *HTTPTransport) deleteFoodItem(w http.ResponseWriter, r *http.Request) {
	deletefooditem.DeleteFoodItem(w, r, h.catalogSvc)
}

func (h *HTTPTransport) vendorFoodItems(w http.ResponseWriter, r *http.Request) {
	vendorfooditems.VendorFoodItems(w, r, h.catalogSvc)
}

func (h *HTTPTransport) listFoodItems(w http.ResponseWriter, r *http.Request) {
	listfooditems.ListFoodItems(w, r, h.catalogSvc)
}

func (h *HTTPTransport) availableOrders(w http.ResponseWriter, r *http.Request) {
	availableorders.AvailableOrders(w, r, h.catalogSvc)
}

func (h *HTTPTransport) stopOrders(w http.ResponseWriter, r *http.Request) {
	stoporders.StopOrders(w, r, h.catalogSvc)
}

func (h *HTTPTransport) updateAvailableOrders(w http.ResponseWriter, r *http.Request) {
	updateavailableorders.UpdateAvailableOrders(w, r, h.catalogSvc)
}

func (h *HTTPTransport) listApartments(w http.ResponseWriter, r *http.Request) {
	apartments.ListApartments(w, r, h.catalogSvc)
}

func (h *HTTPTransport) saveApartment(w http.ResponseWriter, r *http.Request) {
	apartments.SaveApartment(w, r, h.catalogSvc)
}

func (h *HTTPTransport) searchApartments(w http.ResponseWriter, r *http.Request) {
	apartments.SearchApartments(w, r, h.catalogSvc)
}

func (h *HTTPTransport) listVendors(w http.ResponseWriter, r *http.Request) {
	getvendors.ListVendors(w, r, h.catalogSvc)
}

func (h *HTTPTransport) vendorProfile(w http.ResponseWriter, r *http.Request) {
	getvendors.VendorProfile(w, r, h.catalogSvc)
}

func (h *HTTPTransport) writeReview(w http.ResponseWriter, r *http.Request) {
	reviews.WriteReview(w, r, h.catalogSvc)
}

func (h *HTTPTransport) vendorReviews(w http.ResponseWriter, r *http.Request) {
	reviews.VendorReviews(w, r, h.catalogSvc)
}

func (h *HTTPTransport) signupCustomer(w http.ResponseWriter, r *http.Request) {
	signup.Customer(w, r, h.accountSvc)
}

func (h *HTTPTransport) signupVendor(w http.ResponseWriter, r *http.Request) {
	signup.Vendor(w, r, h.accountSvc)
}

func (h *HTTPTransport) checkCustomer(w http.ResponseWriter, r *http.Request) {
	checkuser.Customer(w, r, h.accountSvc)
}

func (h *HTTPTransport) checkVendor(w http.ResponseWriter, r *http.Request) {
	checkuser.Vendor(w, r, h.accountSvc)
}

func (h *HTTPTransport) sendOTP(w http.ResponseWriter, r *http.Request) {
	verifycontact.SendOTP(w, r, h.accountSvc)
}

func (h *HTTPTransport) verifyOTP(w http.ResponseWriter, r *http.Request) {
	verifycontact.VerifyOTP(w, r, h.accountSvc)
}

func (h *HTTPTransport) customerDetails(w http.ResponseWriter, r *http.Request) {
	accountdetails.CustomerDetails(w, r, h.accountSvc)
}

func (h *HTTPTransport) vendorDetails(w http.ResponseWriter, r *http.Request) {
	accountdetails.VendorDetails(w, r, h.catalogSvc)
}

func (h *HTTPTransport) updateVendorDetails(w http.ResponseWriter, r *http.Request) {
	accountdetails.UpdateVendorDetails(w, r, h.accountSvc)
}

func (h *HTTPTransport) customerQuery(w http.ResponseWriter, r *http.Request) {
	customerquery.CustomerQuery(w, r, h.accountSvc)
}

func (h *HTTPTransport) deleteExpiredFood(w http.ResponseWriter, r *http.Request) {
	deleteexpired.DeleteExpiredFood(w, r, h.sweeper)
}

func newRouter() *chi.Mux {
	router := chi.NewMux()
	router.Use(middleware.RequestID)
	router.Use(logger.NewLoggerMiddleware(slog.Default()))
	router.Use(trace.NewTraceMiddleware)

	allowedOrigins := viper.GetStringSlice("server.http.cors.allowed_origins")
	allowedMethods := viper.GetStringSlice("server.http.cors.allowed_methods")
	allowedHeaders := viper.GetStringSlice("server.http.cors.allowed_headers")
	exposedHeaders := viper.GetStringSlice("server.http.cors.exposed_headers")
	allowCredentials := viper.GetBool("server.http.cors.allow_credentials")
	maxAge := viper.GetInt("server.http.cors.max_age")

	c := cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   allowedMethods,
		AllowedHeaders:   allowedHeaders,
		ExposedHeaders:   exposedHeaders,
		AllowCredentials: allowCredentials,
		MaxAge:           maxAge,
	})

	router.Use(c.Handler)

	return router
}

func newServer(router http.Handler) *http.Server {
	return &http.Server{
		Addr:    "0.0.0.0:" + viper.GetString("server.http.port"),
		Handler: router,
	}
}
