// internal/extraction/prompt.go
package extraction

import "fmt"

const amendmentInstruction = `
CRITICAL: This is an AMENDMENT email. Follow these rules strictly:
1. Fields marked with "New" or showing changes (strikethrough ~~old~~ new) should be extracted
2. If name or phoneNumber are NOT explicitly shown as changed/new, set them to null
3. Only extract fields that are actually present and changed in this amendment
4. Do NOT extract names from greetings like "Hi [Name]" or "Dear [Name]"
`

// buildPrompt lays out the extraction request: subject, truncated body,
// the strict JSON field list, and the amendment block when the classifier
// flagged one.
func buildPrompt(body, subject string, amendmentHint bool, maxBodyChars int) string {
	if maxBodyChars > 0 && len(body) > maxBodyChars {
		body = body[:maxBodyChars]
	}

	instruction := ""
	if amendmentHint {
		instruction = amendmentInstruction
	}

	return fmt.Sprintf(`You are parsing a GetYourGuide booking email. Extract the following information accurately.

Email Subject: %s

Email Content:
%s

%s

Extract and return ONLY a valid JSON object with these exact fields (use null for missing data):
{
  "booking_reference": "GYG reference number (e.g., GYG83XQWFQ7B)",
  "name": "Customer's full name (NOT email address, NOT greeting name)",
  "phoneNumber": "Customer's phone number with country code",
  "tourDate": "Tour date in format 'Month DD, YYYY' (e.g., 'March 17, 2026')",
  "tourTime": "Tour start time (e.g., '6:00 AM')",
  "totalPassengers": "Number of passengers as integer",
  "tour": "Tour/Activity name",
  "vehicleType": "Vehicle type if mentioned (e.g., 'Private Car', 'Standard Van')",
  "address": "Pickup location or meeting point address",
  "is_cancellation": true/false,
  "is_amendment": true/false
}

CRITICAL RULES:
- "name" field must ONLY contain the person's actual name from booking details, NOT from greetings
- If name appears only in greeting context (Hi/Hello/Dear), set it to null
- "tourDate" must be the actual readable date
- All phone numbers should include country code
- Return ONLY the JSON object, no explanations
- If a field is not found or not changed (in amendments), use null
- totalPassengers must be a number, not a string`, subject, body, instruction)
}
