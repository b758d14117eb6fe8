package notify

import "fmt"

// VerificationEmail builds the account verification email. The link lands on
// the API's verify-email endpoint, which flips the user's verified flag.
func VerificationEmail(baseURL, toEmail, toName, uid, token string) EmailMessage {
	link := fmt.Sprintf("%s/api/v1/auth/verify-email/%s/%s/", baseURL, uid, token)
	return EmailMessage{
		To:      toEmail,
		ToName:  toName,
		Subject: "Verify your MindEase account",
		Body: fmt.Sprintf(
			"Hi %s,\n\nWelcome to MindEase. Please verify your email address by opening the link below:\n\n%s\n\nIf you did not create this account you can ignore this message.\n",
			toName, link),
	}
}

// AppointmentBookedEmail builds the booking confirmation sent to the
// patient after a slot is reserved.
func AppointmentBookedEmail(toEmail, toName, therapistName, date, timeSlot string) EmailMessage {
	return EmailMessage{
		To:      toEmail,
		ToName:  toName,
		Subject: "Your MindEase appointment is booked",
		Body: fmt.Sprintf(
			"Hi %s,\n\nYour appointment with %s is booked for %s at %s.\n\nYou can view or cancel it from your appointments page.\n",
			toName, therapistName, date, timeSlot),
	}
}

// PasswordResetEmail builds the password reset email.
func PasswordResetEmail(baseURL, toEmail, toName, uid, token string) EmailMessage {
	link := fmt.Sprintf("%s/password-reset-confirm/%s/%s", baseURL, uid, token)
	return EmailMessage{
		To:      toEmail,
		ToName:  toName,
		Subject: "Reset your MindEase password",
		Body: fmt.Sprintf(
			"Hi %s,\n\nWe received a request to reset your password. Open the link below to choose a new one:\n\n%s\n\nThe link expires in one hour. If you did not request a reset, no action is needed.\n",
			toName, link),
	}
}
