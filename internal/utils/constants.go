package utils

const (
	OrganizationName                      = "Poof"
	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// Longest room query the HTTP surface accepts.
	MaxRoomQueryLength = 20
)
