package mailer

import "fmt"

// OTPSubject is the subject line for verification and reset codes.
const OTPSubject = "Your CampusNotes verification code"

// OTPBody renders the HTML body carrying a one-time passcode.
func OTPBody(username, code string, validMinutes int) string {
	return fmt.Sprintf(
		`<html><body>
<p>Hi %s,</p>
<p>Your CampusNotes verification code is:</p>
<h2 style="letter-spacing:4px">%s</h2>
<p>The code expires in %d minutes. If you did not request it, you can ignore this email.</p>
</body></html>`,
		username, code, validMinutes,
	)
}
