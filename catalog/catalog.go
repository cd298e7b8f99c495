// Package catalog declares the CRM contract set: one contract per form or
// entity payload, plus the warning heuristics and custom validators that go
// with them. Install wires everything into an engine at startup.
package catalog

import (
	"fmt"
	"strings"

	"github.com/skorin/validy"
)

// Schema names registered by Install.
const (
	Login             = "login"
	Register          = "register"
	LeadCreate        = "leadCreate"
	MessageSend       = "messageSend"
	IntegrationConfig = "integrationConfig"
	PlaybookCreate    = "playbookCreate"
)

// EmailProvider is the custom validator name for the provider allow-list.
const EmailProvider = "emailProvider"

// Install registers every CRM contract, warning heuristic, and custom
// validator on the engine. Call it once during application startup.
func Install(e *validy.Engine) error {
	contracts := []struct {
		name     string
		contract validy.Contract
	}{
		{Login, LoginContract()},
		{Register, RegisterContract()},
		{LeadCreate, LeadCreateContract()},
		{MessageSend, MessageSendContract()},
		{IntegrationConfig, IntegrationConfigContract()},
		{PlaybookCreate, PlaybookCreateContract()},
	}
	for _, c := range contracts {
		if err := e.Register(c.name, c.contract); err != nil {
			return fmt.Errorf("catalog: register %s: %w", c.name, err)
		}
	}
	for _, schema := range []string{Login, Register, LeadCreate} {
		e.RegisterWarning(schema, PlaceholderEmail)
	}
	if err := e.RegisterValidator(EmailProvider, EmailProviderValidator()); err != nil {
		return fmt.Errorf("catalog: register %s: %w", EmailProvider, err)
	}
	return nil
}

// LoginContract validates the sign-in form.
func LoginContract() *validy.ObjectContract {
	return validy.Object(
		validy.String("email").Required().Format(validy.FormatEmail),
		validy.String("password").Required().Min(6).Max(128),
	).WithVersion("1.0.0").WithSample(map[string]any{
		"email":    "ana@acme.com",
		"password": "secret1",
	})
}

// RegisterContract validates the sign-up form. The password confirmation is
// a cross-field refinement: it only fires when both fields pass their own
// checks, so a mismatch reports exactly one error.
func RegisterContract() *validy.ObjectContract {
	return validy.Object(
		validy.String("name").Required().Min(2).Max(100),
		validy.String("email").Required().Format(validy.FormatEmail),
		validy.String("password").Required().Min(8).Max(128),
		validy.String("passwordConfirm").Required().Min(8).Max(128),
	).Refine("passwordConfirm", func(data map[string]any) bool {
		return data["password"] == data["passwordConfirm"]
	}, "passwords do not match").
		WithVersion("1.1.0").
		WithSample(map[string]any{
			"name":            "Ana Ivanova",
			"email":           "ana@acme.com",
			"password":        "Abc12345",
			"passwordConfirm": "Abc12345",
		})
}

// LeadCreateContract validates new-lead payloads. It is an open map: CRM
// integrations attach free-form metadata keys, which are preserved opaquely.
func LeadCreateContract() *validy.ObjectContract {
	return validy.Object(
		validy.String("name").Required().Min(2).Max(200),
		validy.String("email").Required().Format(validy.FormatEmail),
		validy.String("phone").Format(validy.FormatPhone),
		validy.String("source").Enum("web", "referral", "import", "campaign"),
		validy.String("stage").Enum("new", "contacted", "qualified", "won", "lost"),
		validy.Number("dealValue").Min(0),
		validy.Array("tags", validy.String("").Min(1).Max(40)).Max(20),
		validy.Nested("company", validy.Object(
			validy.String("name").Required().Max(200),
			validy.String("website").Format(validy.FormatURL),
		)),
	).Open().WithVersion("2.0.0").WithSample(map[string]any{
		"name":      "Boris Petrov",
		"email":     "boris@prospect.io",
		"source":    "web",
		"stage":     "new",
		"dealValue": 12500.0,
		"tags":      []any{"inbound", "enterprise"},
	})
}

// MessageSendContract validates outgoing conversation messages.
func MessageSendContract() *validy.ObjectContract {
	attachment := validy.Object(
		validy.String("url").Required().Format(validy.FormatURL),
		validy.String("name").Max(255),
		validy.Int("size").Min(0).Max(25*1024*1024),
	)
	return validy.Object(
		validy.String("conversationId").Required().Format(validy.FormatUUID),
		validy.String("body").Required().Min(1).Max(5000),
		validy.String("channel").Required().Enum("email", "sms", "whatsapp", "webchat"),
		validy.Array("attachments", validy.Nested("", attachment)).Max(10),
	).WithVersion("1.0.0").WithSample(map[string]any{
		"conversationId": "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		"body":           "Thanks for the call, recap attached.",
		"channel":        "email",
	})
}

// IntegrationConfigContract validates third-party integration settings.
// Provider-specific settings ride along as undeclared keys.
func IntegrationConfigContract() *validy.ObjectContract {
	return validy.Object(
		validy.String("provider").Required().Enum("salesforce", "hubspot", "slack", "mailchimp", "zapier"),
		validy.String("apiKey").Required().Min(16).Max(256),
		validy.String("webhookUrl").Format(validy.FormatURL),
		validy.Bool("enabled"),
		validy.Int("syncIntervalMinutes").Min(5).Max(1440),
	).Open().WithVersion("1.2.0").WithSample(map[string]any{
		"provider":            "hubspot",
		"apiKey":              "hs-0123456789abcdef",
		"enabled":             true,
		"syncIntervalMinutes": 30.0,
	})
}

// PlaybookCreateContract validates sales playbook definitions.
func PlaybookCreateContract() *validy.ObjectContract {
	step := validy.Object(
		validy.String("action").Required().Enum("email", "call", "task", "wait"),
		validy.Int("delayHours").Min(0).Max(720),
		validy.String("template").Max(120),
	)
	return validy.Object(
		validy.String("title").Required().Min(3).Max(120),
		validy.String("description").Max(2000),
		validy.Array("steps", validy.Nested("", step)).Required().Min(1).Max(50),
	).WithVersion("1.0.0").WithSample(map[string]any{
		"title": "Inbound follow-up",
		"steps": []any{
			map[string]any{"action": "email", "delayHours": 0.0, "template": "welcome"},
			map[string]any{"action": "call", "delayHours": 24.0},
		},
	})
}

// PlaceholderEmail flags emails that look like test or placeholder
// addresses. Advisory only; a placeholder address still validates.
func PlaceholderEmail(data any) []string {
	m, ok := data.(map[string]any)
	if !ok {
		return nil
	}
	email, ok := m["email"].(string)
	if !ok || email == "" {
		return nil
	}
	lower := strings.ToLower(email)
	switch {
	case strings.Contains(lower, "@example."),
		strings.HasPrefix(lower, "test@"),
		strings.HasPrefix(lower, "asdf"),
		strings.HasPrefix(lower, "foo@"):
		return []string{"email looks like a placeholder address"}
	}
	return nil
}

// defaultProviders is the built-in allow-list for EmailProviderValidator.
var defaultProviders = []string{
	"gmail.com", "outlook.com", "hotmail.com", "yahoo.com",
	"icloud.com", "protonmail.com", "fastmail.com",
}

// EmailProviderValidator returns a custom validator that checks a single
// email string against a provider allow-list. With no arguments it uses the
// built-in list of common consumer providers.
func EmailProviderValidator(allowed ...string) validy.ValidatorFunc {
	if len(allowed) == 0 {
		allowed = defaultProviders
	}
	set := make(map[string]struct{}, len(allowed))
	for _, domain := range allowed {
		set[strings.ToLower(domain)] = struct{}{}
	}
	return func(value any) validy.Result {
		email, ok := value.(string)
		if !ok {
			return validy.Fail(validy.FieldError{
				Field:    validy.FieldRoot,
				Code:     validy.CodeInvalidType,
				Message:  "expected string, got " + fmt.Sprintf("%T", value),
				Expected: "string",
			})
		}
		at := strings.LastIndex(email, "@")
		if at < 0 || at == len(email)-1 {
			return validy.Fail(validy.FieldError{
				Field:   validy.FieldRoot,
				Code:    validy.CodeInvalidFormat,
				Message: "does not match required format",
			})
		}
		domain := strings.ToLower(email[at+1:])
		if _, ok := set[domain]; !ok {
			return validy.Fail(validy.FieldError{
				Field:   validy.FieldRoot,
				Code:    validy.CodeCustom,
				Message: fmt.Sprintf("email provider %q is not supported", domain),
			})
		}
		return validy.OK(email)
	}
}
