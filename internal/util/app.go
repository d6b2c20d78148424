package util

import "fmt"

func GetAppName() string {
	return "InkSign"
}

// BuildSignURL returns the frontend link a signer follows to open their
// signing session. The token is the only credential the link carries.
func BuildSignURL(frontendURL, documentId, signToken string) string {
	return fmt.Sprintf("%s/sign/%s/%s", frontendURL, documentId, signToken)
}
