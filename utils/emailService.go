package utils

import (
	"fmt"
	"net/smtp"
	"strings"

	"academy/config"
)

// Generic Send Email
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := "smtp.gmail.com"
	smtpPort := "587"

	from := config.AppConfig.EmailSender
	password := config.AppConfig.Password

	// MIME basics
	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Academy <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg))
	if err != nil {
		fmt.Println("Error sending email:", err)
		return err
	}
	return nil
}

// HTML wrapper shared by every outgoing email
func getEmailTemplate(title string, bodyContent string) string {
	return fmt.Sprintf(`
	<!DOCTYPE html>
	<html>
	<head>
		<style>
			body { font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #F6F6F6; margin: 0; padding: 0; }
			.container { max-width: 600px; margin: 40px auto; background: #FFFFFF; border-radius: 8px; overflow: hidden; box-shadow: 0 4px 15px rgba(0,0,0,0.05); }
			.header { background-color: #1A1A40; padding: 30px; text-align: center; }
			.header h1 { color: #FFFFFF; margin: 0; font-size: 24px; letter-spacing: 1px; }
			.content { padding: 40px 30px; color: #1A1A40; line-height: 1.6; }
			.content h2 { color: #1A1A40; margin-top: 0; }
			.footer { background-color: #F6F6F6; padding: 20px; text-align: center; font-size: 12px; color: #666666; border-top: 1px solid #E0E0E0; }
			.btn { display: inline-block; padding: 12px 24px; background-color: #4F7CAC; color: #FFFFFF; text-decoration: none; border-radius: 4px; font-weight: bold; margin-top: 20px; }
			.info-box { background: #E8F0FE; padding: 15px; border-radius: 4px; border-left: 4px solid #4F7CAC; margin: 20px 0; }
		</style>
	</head>
	<body>
		<div class="container">
			<div class="header">
				<h1>ACADEMY</h1>
			</div>
			<div class="content">
				<h2>%s</h2>
				%s
			</div>
			<div class="footer">
				&copy; 2026 Academy. All rights reserved.
			</div>
		</div>
	</body>
	</html>
	`, title, bodyContent)
}

// --- Triggers ---

// 1. Welcome / Signup
func SendWelcomeEmail(email, name string) error {
	subject := "Welcome to Academy"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Welcome to <strong>Academy</strong>! We are thrilled to have you onboard.</p>
		<p>Your account has been successfully created. You can now browse the course catalog and start learning.</p>
		<p>If you have any questions, feel free to reach out to our support team.</p>
	`, name)

	return SendEmail([]string{email}, subject, getEmailTemplate("Welcome Onboard!", body))
}

// 2. Password Reset OTP
func SendOTPEmail(otp, email string) error {
	subject := "Your Password Reset Code"
	body := fmt.Sprintf(`
		<p>Hello,</p>
		<p>Use the code below to reset your password. It expires in 5 minutes.</p>
		<div class="info-box" style="text-align: center; font-size: 28px; letter-spacing: 6px; font-weight: bold;">%s</div>
		<p>If you did not request a password reset, you can safely ignore this email.</p>
	`, otp)

	return SendEmail([]string{email}, subject, getEmailTemplate("Password Reset", body))
}

// 3. Provisioned Account Credentials
func SendTempPasswordEmail(email, name, tempPassword string) error {
	subject := "Your Academy Account"
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>An account has been created for you on <strong>Academy</strong>.</p>
		<div class="info-box">
			<strong>Email:</strong> %s<br>
			<strong>Temporary Password:</strong> %s
		</div>
		<p>Please log in and change your password right away.</p>
	`, name, email, tempPassword)

	return SendEmail([]string{email}, subject, getEmailTemplate("Account Created", body))
}

// 4. Certificate Approved
func SendCertificateEmail(email, name, courseTitle, certificateNumber string) error {
	subject := "Certificate Issued: " + courseTitle
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>Congratulations! Your certificate for <strong>%s</strong> has been approved.</p>
		<div class="info-box">
			<strong>Certificate Number:</strong> %s
		</div>
		<p>Log in to your dashboard to view and download it.</p>
	`, name, courseTitle, certificateNumber)

	return SendEmail([]string{email}, subject, getEmailTemplate("Certificate Issued", body))
}

// 5. Deadline Reminder
func SendDeadlineReminderEmail(email, name, courseTitle, deadline string, daysLeft int) error {
	subject := fmt.Sprintf("Reminder: %s deadline approaching", courseTitle)
	dayWord := "days"
	if daysLeft == 1 {
		dayWord = "day"
	}
	body := fmt.Sprintf(`
		<p>Dear %s,</p>
		<p>The completion deadline for <strong>%s</strong> is <strong>%s</strong> (%d %s left).</p>
		<p>Pick up where you left off and finish the remaining modules in time.</p>
		<a href="#" class="btn">Continue Learning</a>
	`, name, courseTitle, deadline, daysLeft, dayWord)

	return SendEmail([]string{email}, subject, getEmailTemplate("Deadline Approaching", body))
}
