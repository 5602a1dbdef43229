package granola

import "strings"

// DisplayName resolves the name to show for a participant.
// Fallback order: resolved full name, then email. The raw name field is
// not used. It returns "" when neither is present.
func DisplayName(p Person) string {
	if name := fullName(p); name != "" {
		return name
	}
	return strings.TrimSpace(p.Email)
}

// CompanyName returns the participant's resolved company, or "".
func CompanyName(p Person) string {
	if p.Details == nil || p.Details.Company == nil {
		return ""
	}
	return strings.TrimSpace(p.Details.Company.Name)
}

func fullName(p Person) string {
	if p.Details == nil || p.Details.Person == nil || p.Details.Person.Name == nil {
		return ""
	}
	return strings.TrimSpace(p.Details.Person.Name.FullName)
}

// AttendeeNames resolves every attendee of doc, dropping attendees that
// have neither a resolved name nor an email.
func AttendeeNames(doc Document) []string {
	attendees := doc.Attendees()
	names := make([]string, 0, len(attendees))
	for _, a := range attendees {
		if name := DisplayName(a); name != "" {
			names = append(names, name)
		}
	}
	return names
}
