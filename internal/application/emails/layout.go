package emails

import (
	"fmt"
	"strings"
	"time"
)

const (
	themeHeader = "#4CAF50"
	themeText   = "#333333"
	themeMuted  = "#777777"
	themeValue  = "#0056b3"
	themeBody   = "#f4f4f4"
)

// EmailLayout wraps content in the site's notification layout.
func EmailLayout(title, siteName, contentHTML string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>%s</title>
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: %s; margin: 0; padding: 0; background-color: %s; }
    .label { color: #555555; }
    .value { font-weight: bold; color: %s; }
    @media only screen and (max-width: 600px) { .container { width: 100%% !important; margin: 0 !important; border-radius: 0 !important; } }
  </style>
</head>
<body>
  <table width="100%%" cellpadding="0" cellspacing="0" border="0" style="background-color: %s;">
    <tr>
      <td align="center" style="padding: 20px 0;">
        <table class="container" width="600" cellpadding="0" cellspacing="0" border="0" style="background-color: #ffffff; border-radius: 8px; border: 1px solid #e0e0e0;">
          <tr>
            <td style="background-color: %s; color: #ffffff; padding: 15px 20px; border-radius: 8px 8px 0 0; text-align: center;">
              <h2 style="margin: 0; color: #ffffff;">%s</h2>
            </td>
          </tr>
          %s
          <tr>
            <td style="text-align: center; padding: 20px; font-size: 0.8em; color: %s;">
              <p style="margin: 0;">This email was sent from your website.</p>
              <p style="margin: 5px 0 0;">&copy; %d %s</p>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`,
		EscapeHTML(title), themeText, themeBody, themeValue, themeBody, themeHeader,
		EscapeHTML(title), contentHTML, themeMuted, time.Now().Year(), EscapeHTML(siteName))
}

// EscapeHTML escapes HTML specials for safe interpolation.
func EscapeHTML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, "\"", "&quot;")
	return s
}

func field(label, valueHTML string) string {
	return fmt.Sprintf(`<p><span class="label"><strong>%s:</strong></span> <span class="value">%s</span></p>`, label, valueHTML)
}

// multiline escapes s and keeps its line breaks.
func multiline(s string) string {
	return strings.ReplaceAll(EscapeHTML(s), "\n", "<br>")
}

// ContactContent renders a contact form submission.
func ContactContent(name, email, subject, message string) string {
	if subject == "" {
		subject = "N/A"
	}
	e := EscapeHTML(email)
	return fmt.Sprintf(`
          <tr>
            <td style="padding: 20px; border-bottom: 1px solid #eeeeee;">
              <p style="margin-top: 0; margin-bottom: 15px;">You have received a new message from your contact form:</p>
              %s
              %s
              %s
            </td>
          </tr>
          <tr>
            <td style="padding: 20px;">
              <p style="margin-top: 0; margin-bottom: 10px;"><span class="label"><strong>Message:</strong></span></p>
              <p style="margin-bottom: 0;">%s</p>
            </td>
          </tr>`,
		field("Name", EscapeHTML(name)),
		field("Email", fmt.Sprintf(`<a href="mailto:%s" style="color: %s; text-decoration: none;">%s</a>`, e, themeValue, e)),
		field("Subject", EscapeHTML(subject)),
		multiline(message))
}

// ReviewNoticeContent renders the owner notice sent after a client redeems a review code.
func ReviewNoticeContent(code, clientName, name, review string) string {
	return fmt.Sprintf(`
          <tr>
            <td style="padding: 20px;">
              <p style="margin-top: 0; margin-bottom: 15px;">A new review was submitted with an invitation code:</p>
              %s
              %s
              %s
              <p style="margin-bottom: 0;">%s</p>
            </td>
          </tr>`,
		field("Code", EscapeHTML(code)),
		field("Client", EscapeHTML(clientName)),
		field("Name", EscapeHTML(name)),
		multiline(review))
}
