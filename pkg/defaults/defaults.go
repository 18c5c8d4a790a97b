// Package defaults provides canonical default values for the entire codebase.
// This is the SINGLE SOURCE OF TRUTH for runtime configuration defaults.
//
// Usage:
//
//	client.Timeout = defaults.HTTPTimeout
//	req.Header.Set("Content-Type", defaults.ContentTypeJSON)
//
// DO NOT scatter hardcoded values like `Timeout: 30 * time.Second` around
// call sites. Reference the appropriate constant from this package instead.
package defaults

import "time"

// Version is the current dojoctl version.
const Version = "1.2.0"

// ============================================================================
// TIMEOUTS
// ============================================================================

const (
	// HTTPTimeout is the total per-request timeout for API calls (30s).
	HTTPTimeout = 30 * time.Second

	// SchemaProbeTimeout bounds each schema-endpoint probe (15s).
	SchemaProbeTimeout = 15 * time.Second

	// DialTimeout is the timeout for establishing connections (10s).
	DialTimeout = 10 * time.Second

	// TLSHandshakeTimeout is the timeout for the TLS handshake (10s).
	TLSHandshakeTimeout = 10 * time.Second
)

// ============================================================================
// REMOTE API SURFACE
// ============================================================================
//
// Paths are relative to the normalized base URL (trailing slash stripped).
// ============================================================================

const (
	PathTokenAuth    = "/api/v2/api-token-auth/"
	PathProducts     = "/api/v2/products/"
	PathEngagements  = "/api/v2/engagements/"
	PathTests        = "/api/v2/tests/"
	PathImportScan   = "/api/v2/import-scan/"
	PathReimportScan = "/api/v2/reimport-scan/"
)

// SchemaCandidates are the self-description endpoints probed in order when
// loading scan types from a live server. JSON endpoints only; no YAML, no
// HTML scraping.
var SchemaCandidates = []string{
	"/api/v2/oa3/openapi.json",
	"/api/v2/oa3/swagger.json",
	"/api/v2/oa3/schema/?format=json",
}

// ListLimit is the page size requested from list endpoints.
const ListLimit = 100

// ============================================================================
// ENVIRONMENT VARIABLES
// ============================================================================
//
// Each is a fallback consulted only when the corresponding flag is omitted.
// ============================================================================

const (
	EnvURL      = "DOJO_URL"
	EnvToken    = "DOJO_TOKEN"
	EnvUsername = "DOJO_USERNAME"
	EnvPassword = "DOJO_PASSWORD"
	EnvAPISpec  = "DOJO_API_SPEC"
	EnvConfig   = "DOJO_CONFIG"
)

// ============================================================================
// IMPORT DEFAULTS
// ============================================================================

const (
	// MinimumSeverity is the default severity floor for imports.
	MinimumSeverity = "Info"

	// EngagementType is the engagement type used when the wizard creates
	// an engagement.
	EngagementType = "CI/CD"

	// EngagementStatus is the status assigned to wizard-created engagements.
	EngagementStatus = "In Progress"

	// DateFormat is the wire format for engagement/test dates.
	DateFormat = "2006-01-02"
)

// Severities lists the severity floor values the server accepts, lowest first.
var Severities = []string{"Info", "Low", "Medium", "High", "Critical"}

// FallbackScanTypes is the static catalog substituted when neither the
// server nor a local schema file yields a scan-type enumeration. It covers
// the well-known formats; the server remains the authority.
var FallbackScanTypes = []string{
	"ZAP Scan",
	"Trivy Scan",
	"Checkov Scan",
	"Dependency Check Scan",
	"Burp Scan",
	"Snyk Scan",
	"SonarQube Scan",
	"Anchore Grype",
}

// ContentTypeJSON is the JSON media type sent and required on API calls.
const ContentTypeJSON = "application/json"

// AllowedPreview is how many allowed scan types a validation error lists
// before truncating.
const AllowedPreview = 12
