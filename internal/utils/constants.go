package utils

import "time"

// Application Constants
const (
	AppName    = "GoCab"
	AppVersion = "1.0.0"

	// Default values
	DefaultCurrency    = "INR"
	DefaultCountryCode = "+91"
	DefaultTimeZone    = "Asia/Kolkata"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour

	// Search
	SearchCacheTTL     = 2 * time.Minute
	SuggestionDebounce = 300 * time.Millisecond
	MaxSuggestions     = 5

	// Booking Constants
	BookingNumberPrefix = "GC"
	MaxPassengers       = 12
	MaxRentalHours      = 24
	MaxTripDays         = 30

	// Rate Limiting
	DefaultRateLimit = 100
	SearchRateLimit  = 30
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
	StatusFailed  = "failed"
)

// Error Messages
const (
	ErrInvalidCredentials = "invalid credentials"
	ErrInvalidToken       = "invalid token"
	ErrTokenExpired       = "token expired"
	ErrInvalidInput       = "invalid input"
	ErrInternalServer     = "internal server error"
	ErrUnauthorized       = "unauthorized"
	ErrForbidden          = "forbidden"
	ErrNotFound           = "not found"
	ErrConflict           = "conflict"
	ErrValidationFailed   = "validation failed"
	ErrBookingNotFound    = "booking not found"
	ErrSupplierNotFound   = "supplier not found"
	ErrNoOffersAvailable  = "no offers available for this route"
	ErrPriceUnavailable   = "price unavailable for this option"
)

// Cache Keys
const (
	CacheUserPrefix      = "user:"
	CacheSearchPrefix    = "search:"
	CacheBookingPrefix   = "booking:"
	CacheSupplierPrefix  = "supplier:"
	CacheRoutePrefix     = "route:"
	CacheRateLimitPrefix = "rate_limit:"
	CacheSessionPrefix   = "session:"
)

// Event Types
const (
	EventSearchPerformed  = "search_performed"
	EventBookingCreated   = "booking_created"
	EventBookingConfirmed = "booking_confirmed"
	EventBookingCompleted = "booking_completed"
	EventBookingCancelled = "booking_cancelled"
	EventBookingExpired   = "booking_expired"
	EventDriverAssigned   = "driver_assigned"
)
