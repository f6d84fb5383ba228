package instance

import "os"

// GetID returns the serving instance identifier for log correlation.
// Platforms that set INSTANCE_ID (or a hostname) win; otherwise a stable
// default keeps single-node deployments readable.
func GetID() string {
	if id := os.Getenv("INSTANCE_ID"); id != "" {
		return id
	}
	if host, err := os.Hostname(); err == nil && host != "" {
		return host
	}
	return "api-0"
}
