package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const defaultDataDirName = ".rtm"

// DataDir returns the directory for the index file, credentials, and task
// cache: RTM_DATA_DIR if set, otherwise ~/.rtm.
func DataDir() string {
	if env := os.Getenv("RTM_DATA_DIR"); env != "" {
		return env
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return defaultDataDirName
	}
	return filepath.Join(home, defaultDataDirName)
}

// IndexPath returns the path of the persisted index file, overridable via
// RTM_INDEX_FILE.
func IndexPath() string {
	if env := os.Getenv("RTM_INDEX_FILE"); env != "" {
		return env
	}
	return filepath.Join(DataDir(), "index.json")
}

// CredentialsPath returns the path of the stored credentials file.
func CredentialsPath() string {
	return filepath.Join(DataDir(), "auth.json")
}

// CachePath returns the path of the task snapshot database.
func CachePath() string {
	return filepath.Join(DataDir(), "tasks.db")
}

// APIKey returns the API key from RTM_API_KEY.
func APIKey() string {
	return os.Getenv("RTM_API_KEY")
}

// SharedSecret returns the signing secret from RTM_SHARED_SECRET.
func SharedSecret() string {
	return os.Getenv("RTM_SHARED_SECRET")
}

// MinInterval returns the minimum spacing between API calls for one user,
// from RTM_MIN_INTERVAL_MS. The default of one second tracks the service's
// enforced average rate.
func MinInterval() time.Duration {
	if env := os.Getenv("RTM_MIN_INTERVAL_MS"); env != "" {
		if ms, err := strconv.Atoi(env); err == nil && ms > 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return time.Second
}
