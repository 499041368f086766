// Where: internal/constants/env.go
// What: Environment variable naming constants.
// Why: Centralize environment variable names to avoid typos and inconsistencies.
package constants

const (
	// CLI configuration
	EnvConfigPath = "EMCP_CONFIG_PATH"
	EnvConfigHome = "EMCP_CONFIG_HOME"
	EnvHome       = "EMCP_HOME"

	// Credential resolution on the host
	EnvGoogleCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvAppData           = "APPDATA"

	// Variables injected into the running container
	EnvContainerCredentials = "GOOGLE_APPLICATION_CREDENTIALS"
	EnvContainerAuthMethod  = "EMCP_AUTH_METHOD"
	EnvContainerProject     = "GOOGLE_CLOUD_PROJECT"

	// Build argument carrying the short-lived registry token
	BuildArgToken = "GCP_TOKEN"
)

// Auth method values reported to the container via EMCP_AUTH_METHOD.
const (
	AuthMethodServiceAccount = "service-account"
	AuthMethodNone           = "none"
)

// CredentialMountPath is where the resolved credentials file is bind-mounted
// inside the container.
const CredentialMountPath = "/secrets/gcp/key.json"
