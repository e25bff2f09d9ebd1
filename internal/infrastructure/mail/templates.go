package mail

import (
	"bytes"
	"html/template"
)

const systemName = "SK Barangay Information System"

var (
	otpTemplate = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; padding: 20px; background-color: #f5f5f5;">
  <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 30px; border-radius: 10px;">
    <h2 style="color: #dc2626; text-align: center;">{{.Subject}}</h2>
    <p style="color: #333; font-size: 16px;">{{.Purpose}}</p>
    <div style="text-align: center; margin: 30px 0;">
      <h1 style="color: #dc2626; font-size: 36px; letter-spacing: 5px; margin: 0;">{{.Code}}</h1>
    </div>
    <p style="color: #666; font-size: 14px;">This code will expire in {{.Minutes}} minutes.</p>
    <p style="color: #666; font-size: 14px;">If you did not request this code, please ignore this email.</p>
  </div>
</div>`))

	credentialTemplate = template.Must(template.New("credential").Parse(`<div style="font-family: 'Poppins', Arial, sans-serif; padding: 20px; background-color: #f3f4f6;">
  <div style="max-width: 680px; margin: 0 auto; background:#ffffff; padding:22px; border-radius:8px; border:1px solid #e6e7eb;">
    <h2 style="color:#111827; font-size:18px; margin:0 0 10px;">{{.Heading}}</h2>
    <p style="color:#374151; font-size:14px; margin:0 0 12px;">Hello {{.FirstName}} {{.LastName}},</p>
    <p style="color:#374151; font-size:14px; margin:0 0 14px;">{{.Intro}} You will be asked to choose a new password the first time you log in.</p>
    <div style="background:#f9fafb; border:1px solid #e5e7eb; padding:12px; border-radius:6px; margin-bottom:14px;">
      <p style="margin:0; font-size:13px; color:#374151;"><strong>Temporary password:</strong> <span style="color:#111827;">{{.Password}}</span></p>
    </div>
    <p style="font-size:13px; color:#6b7280; margin:0 0 8px;">If you did not request this change, please contact your administrator immediately.</p>
    <hr style="border:none; border-top:1px solid #eef2f7; margin:16px 0;" />
    <p style="font-size:12px; color:#9ca3af; margin:0;">{{.System}}</p>
  </div>
</div>`))
)

// Message is a rendered email
type Message struct {
	Subject string
	HTML    string
}

// OTPMessage renders the one-time code email
func OTPMessage(subject, purpose, otp string, minutes int) (Message, error) {
	var buf bytes.Buffer
	err := otpTemplate.Execute(&buf, map[string]interface{}{
		"Subject": subject,
		"Purpose": purpose,
		"Code":    otp,
		"Minutes": minutes,
	})
	return Message{Subject: subject, HTML: buf.String()}, err
}

// PasswordResetMessage renders the temporary credential email after a reset
func PasswordResetMessage(firstName, lastName, password string) (Message, error) {
	return credentialMessage(
		"Your password has been reset - "+systemName,
		"Password Reset Successful",
		"Your account password has been reset. Please find your temporary credentials below.",
		firstName, lastName, password,
	)
}

// WelcomeMessage renders the account creation email
func WelcomeMessage(firstName, lastName, password string) (Message, error) {
	return credentialMessage(
		"Your account has been created",
		"Welcome, "+firstName+" "+lastName,
		"Your account has been created successfully.",
		firstName, lastName, password,
	)
}

func credentialMessage(subject, heading, intro, firstName, lastName, password string) (Message, error) {
	var buf bytes.Buffer
	err := credentialTemplate.Execute(&buf, map[string]string{
		"Heading":   heading,
		"Intro":     intro,
		"FirstName": firstName,
		"LastName":  lastName,
		"Password":  password,
		"System":    systemName,
	})
	return Message{Subject: subject, HTML: buf.String()}, err
}
