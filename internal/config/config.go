package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Policy holds the per-tenant thresholds used to route and score withdrawals.
type Policy struct {
	AutoApprovalThreshold   decimal.Decimal
	CommitteeThreshold      decimal.Decimal
	RiskThreshold           decimal.Decimal
	UrgentRequiresCommittee bool
	ApprovedFlowProbability int
	PendingFlowProbability  int
}

func DefaultPolicy() Policy {
	return Policy{
		AutoApprovalThreshold:   decimal.NewFromInt(1000),
		CommitteeThreshold:      decimal.NewFromInt(10000),
		RiskThreshold:           decimal.NewFromInt(5000),
		ApprovedFlowProbability: 95,
		PendingFlowProbability:  70,
	}
}

type Database struct {
	User     string
	Password string
	Host     string
	Port     string
	Name     string
}

type Config struct {
	HTTPPort              string
	GRPCPort              string
	GinMode               string
	LogLevel              string
	RedisAddr             string
	RedisPassword         string
	FlowReconcileSchedule string
	DB                    Database
	Policy                Policy
}

// LoadEnv reads .env from the working directory, then its parent, before
// falling back to the process environment.
func LoadEnv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env", "../.env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err == nil {
			return
		}
	}
	log.Println("No .env file found, using system environment variables")
}

func Load() Config {
	defaults := DefaultPolicy()

	return Config{
		HTTPPort:              getEnv("PORT", "8080"),
		GRPCPort:              getEnv("GRPC_PORT", "50051"),
		GinMode:               getEnv("GIN_MODE", ""),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		RedisAddr:             getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		FlowReconcileSchedule: getEnv("FLOW_RECONCILE_SCHEDULE", "*/10 * * * *"),
		DB: Database{
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Host:     getEnv("DB_HOST", "127.0.0.1"),
			Port:     getEnv("DB_PORT", "3306"),
			Name:     getEnv("DB_NAME", "gmah"),
		},
		Policy: Policy{
			AutoApprovalThreshold:   getEnvDecimal("AUTO_APPROVAL_THRESHOLD", defaults.AutoApprovalThreshold),
			CommitteeThreshold:      getEnvDecimal("COMMITTEE_THRESHOLD", defaults.CommitteeThreshold),
			RiskThreshold:           getEnvDecimal("RISK_THRESHOLD", defaults.RiskThreshold),
			UrgentRequiresCommittee: getEnvBool("URGENT_REQUIRES_COMMITTEE", defaults.UrgentRequiresCommittee),
			ApprovedFlowProbability: getEnvPercent("APPROVED_FLOW_PROBABILITY", defaults.ApprovedFlowProbability),
			PendingFlowProbability:  getEnvPercent("PENDING_FLOW_PROBABILITY", defaults.PendingFlowProbability),
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := decimal.NewFromString(strings.TrimSpace(v))
	if err != nil || d.IsNegative() {
		log.Printf("Invalid %s=%q, using default %s", key, v, fallback)
		return fallback
	}
	return d
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		log.Printf("Invalid %s=%q, using default %t", key, v, fallback)
		return fallback
	}
	return b
}

func getEnvPercent(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 || n > 100 {
		log.Printf("Invalid %s=%q, using default %d", key, v, fallback)
		return fallback
	}
	return n
}
