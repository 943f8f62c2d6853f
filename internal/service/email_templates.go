package service

import "fmt"

func verificationEmailTemplate(verifyURL, appName string) (string, string) {
	subject := fmt.Sprintf("Verify your email for %s", appName)
	body := fmt.Sprintf(`Welcome! Please verify your school email by clicking this link:
%s

This link expires in 24 hours and can only be used once.

If you didn't sign up, you can safely ignore this email.

Best,
The %s Team`, verifyURL, appName)

	return subject, body
}

func welcomeEmailTemplate(appURL, appName string) (string, string) {
	subject := fmt.Sprintf("Welcome to %s!", appName)
	body := fmt.Sprintf(`Your email is verified and your account is active.

Browse dorms, save the ones you like, and share photos of your own room:
%s

Best,
The %s Team`, appURL, appName)

	return subject, body
}
