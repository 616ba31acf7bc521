package lead

import (
	"fmt"
	"regexp"
	"strings"
)

// FieldError is one validation failure, addressed to the offending field so
// the form can surface it inline.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors aggregates field-level failures.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, fe := range v {
		parts[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "lead: invalid submission: " + strings.Join(parts, "; ")
}

var (
	emailRe     = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	scriptTagRe = regexp.MustCompile(`(?is)<script[^>]*>.*?</script>`)
	angleTagRe  = regexp.MustCompile(`<[^>]*>`)
)

const (
	maxFieldLen = 200
	maxEmailLen = 254
)

// IsBot reports whether the submission tripped the honeypot. Bot traffic is
// dropped silently; it is not a validation error the caller should surface.
func (s Submission) IsBot() bool {
	return strings.TrimSpace(s.Website) != ""
}

// Validate sanitizes the submission in place and returns field-level errors
// for anything a human needs to fix. The honeypot is checked separately via
// IsBot.
func Validate(s *Submission) ValidationErrors {
	s.Name = sanitize(s.Name, maxFieldLen)
	s.Email = strings.TrimSpace(s.Email)
	s.Phone = sanitize(s.Phone, 40)
	s.Business = sanitize(s.Business, maxFieldLen)
	s.City = sanitize(s.City, maxFieldLen)
	s.State = sanitize(s.State, 40)
	s.FacilityType = sanitize(s.FacilityType, maxFieldLen)
	s.FacilitySize = sanitize(s.FacilitySize, maxFieldLen)
	s.Source = sanitize(s.Source, maxFieldLen)
	s.Referrer = sanitize(s.Referrer, 500)
	s.UserAgent = sanitize(s.UserAgent, 500)
	for i, sp := range s.Sports {
		s.Sports[i] = sanitize(sp, maxFieldLen)
	}

	var errs ValidationErrors
	if s.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "name is required"})
	}
	if s.Email == "" {
		errs = append(errs, FieldError{Field: "email", Message: "email is required"})
	} else if len(s.Email) > maxEmailLen || !emailRe.MatchString(s.Email) {
		errs = append(errs, FieldError{Field: "email", Message: "email is not valid"})
	}
	return errs
}

// sanitize strips script tags, any remaining markup, and control characters,
// then trims and truncates.
func sanitize(in string, maxLen int) string {
	out := scriptTagRe.ReplaceAllString(in, "")
	out = angleTagRe.ReplaceAllString(out, "")

	var b strings.Builder
	b.Grow(len(out))
	for _, r := range out {
		if r < 0x20 && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	out = strings.TrimSpace(b.String())

	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}
