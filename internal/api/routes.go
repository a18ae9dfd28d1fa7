package api

import "fmt"

// Backend route table. Paths mirror the service's router exactly.
const (
	routeSignup           = "/auth/signup"
	routeCredentialsLogin = "/auth/credentials-login"
	routeGoogleSignIn     = "/auth/google-signin"

	routeGetUser         = "/user/get"
	routeSaveResume      = "/user/resume/save"
	routeUploadResume    = "/user/resume/upload"
	routeGetResumeStatus = "/user/resume/status"

	routeStartGeneration = "/application/start-generation"
	routeListApps        = "/application/list"
	routeSearchApps      = "/application/search"
	routeStats           = "/application/stats"
)

func routeApplication(id string) string {
	return fmt.Sprintf("/application/%s", id)
}

func routeUpdateResume(id string) string {
	return fmt.Sprintf("/application/%s/resume", id)
}

func routeUpdateCoverLetter(id string) string {
	return fmt.Sprintf("/application/%s/cover-letter", id)
}

// StreamPath is the SSE endpoint for one application. Authentication rides in
// the path because EventSource-style clients cannot set headers.
func StreamPath(id, token string) string {
	return fmt.Sprintf("/application/%s/stream/%s", id, token)
}
