package service

import (
	"context" // Request-scoped operations
	"errors"  // Error classification
	"fmt"     // Error wrapping
	"strconv" // Cache key suffixes
	"time"    // Cache TTL

	"payment_tracker/internal/domain" // Importing domain models
	"payment_tracker/internal/utils"  // Cache helpers

	"github.com/redis/go-redis/v9"  // Redis client
	"github.com/shopspring/decimal" // Exact decimal amounts
	"github.com/sirupsen/logrus"    // Structured logging
	"gorm.io/gorm"                  // GORM ORM library
)

// Cache keys for payment reads. Entries are stored under "<key>:<generation>"
const (
	cacheKeyGen   = "payments:gen"   // Generation counter, bumped by every create
	cacheKeyAll   = "payments:all"   // Full listing
	cacheKeyStats = "payments:stats" // Dashboard aggregate
)

// cacheKey names the entry for base under generation gen
func cacheKey(base string, gen int64) string {
	return base + ":" + strconv.FormatInt(gen, 10)
}

// CreatePaymentInput is the data needed to record a payment
type CreatePaymentInput struct {
	Amount   decimal.Decimal // Payment amount, not validated
	Receiver string          // Who received the money
	Status   string          // Must be Success, Failed or Pending
	Method   string          // Payment method, e.g. UPI
}

// PaymentService records payments and answers dashboard queries
type PaymentService struct {
	db       *gorm.DB      // Database handle
	rdb      redis.Cmdable // Optional read cache, nil disables it
	cacheTTL time.Duration // Lifetime of cached reads
}

// NewPaymentService creates a new PaymentService; rdb may be nil
func NewPaymentService(db *gorm.DB, rdb redis.Cmdable, cacheTTL time.Duration) *PaymentService {
	return &PaymentService{db: db, rdb: rdb, cacheTTL: cacheTTL}
}

// Create inserts a payment; the database assigns CreatedAt
func (s *PaymentService) Create(ctx context.Context, in CreatePaymentInput) (*domain.Payment, error) {
	status, err := domain.ParsePaymentStatus(in.Status) // Closed set of statuses
	if err != nil {
		return nil, err
	}
	payment := domain.Payment{
		Amount:   in.Amount,   // Payment amount
		Receiver: in.Receiver, // Receiver name or ID
		Status:   status,      // Parsed status
		Method:   in.Method,   // Payment method
	}
	if err := s.db.WithContext(ctx).Create(&payment).Error; err != nil {
		return nil, fmt.Errorf("insert payment: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"payment_id": payment.ID,              // Payment ID
		"amount":     payment.Amount.String(), // Payment amount
		"status":     payment.Status,          // Payment status
		"method":     payment.Method,          // Payment method
	}).Info("Payment recorded") // Log payment creation
	s.invalidate(ctx)           // Listing and stats are now stale
	return &payment, nil
}

// FindAll returns every payment, newest first
func (s *PaymentService) FindAll(ctx context.Context) ([]domain.Payment, error) {
	payments := []domain.Payment{} // Empty slice marshals as []
	// The generation is read before the query, so a create that lands in between
	// leaves this result under a key no later reader uses
	gen, cacheOK := s.generation(ctx)
	if cacheOK && s.cached(ctx, cacheKey(cacheKeyAll, gen), &payments) {
		return payments, nil
	}
	// id breaks ties between rows inserted within the same clock tick
	if err := s.db.WithContext(ctx).Order("created_at desc").Order("id desc").Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	if cacheOK {
		s.store(ctx, cacheKey(cacheKeyAll, gen), payments)
	}
	return payments, nil
}

// FindOne returns a single payment by ID
func (s *PaymentService) FindOne(ctx context.Context, id uint) (*domain.Payment, error) {
	var payment domain.Payment
	err := s.db.WithContext(ctx).First(&payment, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.Errorf(domain.ErrNotFound, "Payment with ID #%d not found", id)
	} else if err != nil {
		return nil, fmt.Errorf("find payment: %w", err)
	}
	return &payment, nil
}

// Stats sums successful payments and counts all and failed ones.
// Status matching is exact and case-sensitive.
func (s *PaymentService) Stats(ctx context.Context) (domain.PaymentStats, error) {
	var stats domain.PaymentStats
	gen, cacheOK := s.generation(ctx) // Read before querying, see FindAll
	if cacheOK && s.cached(ctx, cacheKey(cacheKeyStats, gen), &stats) {
		return stats, nil
	}
	db := s.db.WithContext(ctx) // Session bound to the request context
	// Sum of an empty set is NULL in SQL, COALESCE turns it into 0
	row := db.Model(&domain.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", string(domain.StatusSuccess)).
		Row()
	if err := row.Scan(&stats.TotalRevenue); err != nil {
		return stats, fmt.Errorf("sum revenue: %w", err)
	}
	if err := db.Model(&domain.Payment{}).Count(&stats.TotalCount).Error; err != nil {
		return stats, fmt.Errorf("count payments: %w", err)
	}
	if err := db.Model(&domain.Payment{}).Where("status = ?", string(domain.StatusFailed)).Count(&stats.FailedCount).Error; err != nil {
		return stats, fmt.Errorf("count failed payments: %w", err)
	}
	if cacheOK {
		s.store(ctx, cacheKey(cacheKeyStats, gen), stats)
	}
	return stats, nil
}

// generation returns the current cache generation; false means the cache is off or unreachable
func (s *PaymentService) generation(ctx context.Context) (int64, bool) {
	if s.rdb == nil {
		return 0, false
	}
	gen, err := utils.GetGeneration(ctx, s.rdb, cacheKeyGen)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": cacheKeyGen, "error": err.Error()}).Warn("Cache read failed")
		return 0, false
	}
	return gen, true
}

// cached reads key into dest; any cache problem counts as a miss
func (s *PaymentService) cached(ctx context.Context, key string, dest any) bool {
	if s.rdb == nil {
		return false
	}
	found, err := utils.GetCache(ctx, s.rdb, key, dest)
	if err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache read failed")
		return false
	}
	return found
}

// store writes a value to the cache, logging failures
func (s *PaymentService) store(ctx context.Context, key string, value any) {
	if s.rdb == nil {
		return
	}
	if err := utils.SetCache(ctx, s.rdb, key, value, s.cacheTTL); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err.Error()}).Warn("Cache write failed")
	}
}

// invalidate starts a new cache generation and drops the entries of the previous one
func (s *PaymentService) invalidate(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	gen, err := utils.BumpGeneration(ctx, s.rdb, cacheKeyGen)
	if err != nil {
		logrus.WithFields(logrus.Fields{"error": err.Error()}).Warn("Cache invalidation failed")
		return
	}
	// Old entries are unreachable already, deleting them only frees memory
	if err := utils.DeleteCache(ctx, s.rdb, cacheKey(cacheKeyAll, gen-1), cacheKey(cacheKeyStats, gen-1)); err != nil {
		logrus.WithFields(logrus.Fields{"error": err.Error()}).Warn("Cache cleanup failed")
	}
}
