package auth

import "strings"

// NotConfiguredMessage is returned by every operation of a Resolver built
// without an identity provider.
const NotConfiguredMessage = "Authentication service is not configured"

// Raw provider messages that get friendlier wording.
const (
	rawInvalidCredentials = "Invalid login credentials"
	rawEmailNotConfirmed  = "Email not confirmed"
	rawUserExists         = "User already registered"
)

// SignInMessage turns a raw provider error message from a sign-in attempt
// into the text shown to the user.
func SignInMessage(raw string) string {
	return friendly(raw, false)
}

// SignUpMessage turns a raw provider error message from a sign-up attempt
// into the text shown to the user.
func SignUpMessage(raw string) string {
	return friendly(raw, true)
}

func friendly(raw string, signUp bool) string {
	switch {
	case strings.Contains(raw, rawInvalidCredentials):
		if signUp {
			return "Unable to create account. Please check your email and password."
		}
		return "Invalid email or password. Please check your credentials and try again."
	case strings.Contains(raw, rawEmailNotConfirmed):
		return "Please check your email and click the confirmation link before signing in."
	case strings.Contains(raw, rawUserExists):
		return "An account with this email already exists. Try signing in instead."
	default:
		return raw
	}
}
