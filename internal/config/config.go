// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/iliyamo/restaurant-table-reservation/internal/database"
	"github.com/iliyamo/restaurant-table-reservation/internal/reservation"
)

// Config holds all runtime configuration values.  Each field
// corresponds to an environment variable.  Booking policy knobs get
// the restaurant's standard defaults and only need to be set when the
// policy changes.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	DBMaxOpenConns int    // connection pool ceiling
	DBMaxIdleConns int    // idle connections kept warm
	DBConnLifeMin  int    // connection max lifetime in minutes
	JWTSecret      string // secret used to sign JWTs
	AccessTTLMin   int    // access token time-to-live in minutes
	RefreshTTLDays int    // refresh token time-to-live in days
	BcryptCost     int    // bcrypt cost for password hashing

	ServiceDurationMin int    // minutes a reservation occupies a table
	GracePeriodMin     int    // minutes a customer may arrive late
	MaxSittingMin      int    // displayed sitting-time upper bound
	OpenTime           string // first bookable start time
	CloseTime          string // bookable starts are strictly before this
	BookingHorizonDays int    // how far ahead bookings are accepted
	CancelCutoffHours  int    // minimum lead time for cancellations
}

// Load reads configuration from environment variables.  Required
// variables are enforced by must(); missing values exit with a fatal
// log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		DBMaxOpenConns: envInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns: envInt("DB_MAX_IDLE_CONNS", 25),
		DBConnLifeMin:  envInt("DB_CONN_MAX_LIFETIME_MIN", 30),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     mustInt("BCRYPT_COST"),

		ServiceDurationMin: envInt("RESERVATION_SERVICE_DURATION_MIN", 105),
		GracePeriodMin:     envInt("RESERVATION_GRACE_PERIOD_MIN", 15),
		MaxSittingMin:      envInt("RESERVATION_MAX_SITTING_MIN", 120),
		OpenTime:           envStr("RESERVATION_OPEN_TIME", "08:00"),
		CloseTime:          envStr("RESERVATION_CLOSE_TIME", "23:00"),
		BookingHorizonDays: envInt("RESERVATION_HORIZON_DAYS", 60),
		CancelCutoffHours:  envInt("RESERVATION_CANCEL_CUTOFF_HOURS", 2),
	}
}

// ReservationPolicy materializes the booking policy from the loaded
// configuration, starting from the standard defaults so the service
// slot list stays in one place.
func (c Config) ReservationPolicy() reservation.Policy {
	p := reservation.DefaultPolicy()
	p.ServiceDurationMin = c.ServiceDurationMin
	p.GracePeriodMin = c.GracePeriodMin
	p.MaxSittingMin = c.MaxSittingMin
	p.OpenTime = c.OpenTime
	p.CloseTime = c.CloseTime
	p.BookingHorizonDays = c.BookingHorizonDays
	p.CancelCutoff = time.Duration(c.CancelCutoffHours) * time.Hour
	return p
}

// DBPool materializes the connection pool bounds for database.Open.
func (c Config) DBPool() database.Pool {
	return database.Pool{
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: time.Duration(c.DBConnLifeMin) * time.Minute,
	}
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the value into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
