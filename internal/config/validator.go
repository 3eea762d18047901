package config

import (
	"fmt"
	"os"
	"strings"
)

// ExpectedEnvSchemaVersion is bumped whenever a variable is added, renamed or
// changes meaning, so stale .env files fail loudly
const ExpectedEnvSchemaVersion = "1.0"

const envSchemaVersion = "ENV_SCHEMA_VERSION"

// RequiredEnvVars must always be set
var RequiredEnvVars = []string{
	envSchemaVersion,
	"API_KEY",
}

// RequiredDBEnvVars must be set when the postgres store is used without DB_URL
var RequiredDBEnvVars = []string{
	"DB_USER",
	"DB_PASSWORD",
	"DB_HOST",
	"DB_PORT",
	"DB_NAME",
}

// envWarning flags a setting that starts but is probably a mistake
type envWarning struct {
	applies func() bool
	message string
}

var envWarnings = []envWarning{
	{
		applies: func() bool { return os.Getenv("DB_PASSWORD") == "change_this_secure_password" },
		message: "DB_PASSWORD still holds the example value; set a real password",
	},
	{
		applies: func() bool { return os.Getenv("API_KEY") == "generate_with_openssl_rand_hex_32" },
		message: "API_KEY still holds the example value; generate one with: openssl rand -hex 32",
	},
	{
		applies: func() bool { return os.Getenv("SUPER_ADMIN_ACCOUNT_ID") == "" },
		message: "SUPER_ADMIN_ACCOUNT_ID is not set; forced delisting, restocking and admin promotion are disabled",
	},
	{
		applies: func() bool { return strings.EqualFold(os.Getenv("FLOW_ISOLATION"), FlowIsolationSequential) },
		message: "FLOW_ISOLATION=sequential applies each step on its own; a failed step can leave an earlier debit in place",
	},
}

// ValidateEnv checks the schema version and that every required variable is set
func ValidateEnv() error {
	switch version := os.Getenv(envSchemaVersion); version {
	case ExpectedEnvSchemaVersion:
	case "":
		return fmt.Errorf("%s is not set; add it to your .env file (expected: %s)", envSchemaVersion, ExpectedEnvSchemaVersion)
	default:
		return fmt.Errorf("%s mismatch: expected %s, got %s; your .env file is outdated", envSchemaVersion, ExpectedEnvSchemaVersion, version)
	}

	if missing := missingVars(requiredVars()); len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ValidateEnvWithWarnings runs ValidateEnv and then reports settings that are
// legal but suspicious
func ValidateEnvWithWarnings() ([]string, error) {
	if err := ValidateEnv(); err != nil {
		return nil, err
	}

	var warnings []string
	for _, w := range envWarnings {
		if w.applies() {
			warnings = append(warnings, w.message)
		}
	}
	return warnings, nil
}

// requiredVars adds the DB_* parts only when they are the connection source
func requiredVars() []string {
	driver := strings.ToLower(os.Getenv("STORE_DRIVER"))
	if driver != "" && driver != StoreDriverPostgres {
		return RequiredEnvVars
	}
	if os.Getenv("DB_URL") != "" {
		return RequiredEnvVars
	}
	return append(append([]string{}, RequiredEnvVars...), RequiredDBEnvVars...)
}

func missingVars(names []string) []string {
	var missing []string
	for _, name := range names {
		if os.Getenv(name) == "" {
			missing = append(missing, name)
		}
	}
	return missing
}
