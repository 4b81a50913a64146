package config // package config loads application configuration from environment variables

import (
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  Every value has a default suitable for local
// development so the server starts with no environment at all; production
// deployments override them.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    JWTSecret    string // secret used to sign JWTs
    AccessTTLMin int    // access token time-to-live in minutes
    BcryptCost   int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and returns a
// Config.  Unset variables fall back to local-development defaults; nothing
// is fatal here so the server can boot on a clean machine.
func Load() Config {
    return Config{
        Env:          getenv("APP_ENV", "dev"),
        Port:         getenv("APP_PORT", "8080"),
        DBUser:       getenv("DB_USER", "root"),
        DBPass:       os.Getenv("DB_PASS"), // empty allowed
        DBHost:       getenv("DB_HOST", "127.0.0.1"),
        DBPort:       getenv("DB_PORT", "3306"),
        DBName:       getenv("DB_NAME", "lost_and_found"),
        JWTSecret:    getenv("JWT_SECRET", "dev-secret-change-me"),
        AccessTTLMin: getenvInt("ACCESS_TOKEN_TTL_MIN", 60),
        BcryptCost:   getenvInt("BCRYPT_COST", 10),
    }
}

// getenv returns the value of an environment variable or the provided
// default when the variable is unset or empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}

// getenvInt is like getenv but converts the retrieved string into an
// integer, falling back to the default on parse failure.
func getenvInt(key string, def int) int {
    v := os.Getenv(key)
    if v == "" {
        return def
    }
    n, err := strconv.Atoi(v)
    if err != nil {
        return def
    }
    return n
}
