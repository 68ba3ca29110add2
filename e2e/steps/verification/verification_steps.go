package verification

import (
	"context"
	"fmt"
	"net/url"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	POST(path string, body any) error
	GET(path string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	Remember(name, value string)
	Recall(name string) (string, error)
}

// RegisterSteps registers verification session step definitions.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &verificationSteps{tc: tc}
	ctx.Step(`^I initiate a verification with api key "([^"]*)"$`, steps.initiate)
	ctx.Step(`^an initiated session for api key "([^"]*)"$`, steps.initiatedSession)
	ctx.Step(`^I select the method "([^"]*)"$`, steps.selectMethod)
	ctx.Step(`^I complete the session successfully saving by "([^"]*)"$`, steps.completeAndSave)
	ctx.Step(`^I complete the session unsuccessfully$`, steps.completeFailed)
	ctx.Step(`^I validate the saved verification$`, steps.validateSaved)
	ctx.Step(`^I validate the hash "([^"]*)"$`, steps.validateHash)
	ctx.Step(`^I check the session status$`, steps.checkStatus)
}

type verificationSteps struct {
	tc TestContext
}

func (s *verificationSteps) initiate(_ context.Context, apiKey string) error {
	if err := s.tc.POST("/verification/initiate", map[string]string{"api_key": apiKey}); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() != 200 {
		return nil
	}
	return s.rememberField("session_id", "session_id")
}

func (s *verificationSteps) initiatedSession(ctx context.Context, apiKey string) error {
	if err := s.initiate(ctx, apiKey); err != nil {
		return err
	}
	if s.tc.GetLastResponseStatus() != 200 {
		return fmt.Errorf("initiate failed with status %d", s.tc.GetLastResponseStatus())
	}
	return nil
}

func (s *verificationSteps) selectMethod(_ context.Context, method string) error {
	id, err := s.tc.Recall("session_id")
	if err != nil {
		return err
	}
	return s.tc.POST("/verification/select-method", map[string]string{"session_id": id, "method": method})
}

func (s *verificationSteps) completeAndSave(_ context.Context, saveMethod string) error {
	id, err := s.tc.Recall("session_id")
	if err != nil {
		return err
	}
	if err := s.tc.POST("/verification/complete", map[string]any{
		"session_id":  id,
		"success":     true,
		"save_method": saveMethod,
	}); err != nil {
		return err
	}
	return s.rememberField("verification_hash", "verification_hash")
}

func (s *verificationSteps) completeFailed(_ context.Context) error {
	id, err := s.tc.Recall("session_id")
	if err != nil {
		return err
	}
	return s.tc.POST("/verification/complete", map[string]any{"session_id": id, "success": false})
}

func (s *verificationSteps) validateSaved(ctx context.Context) error {
	hash, err := s.tc.Recall("verification_hash")
	if err != nil {
		return err
	}
	return s.validateHash(ctx, hash)
}

func (s *verificationSteps) validateHash(_ context.Context, hash string) error {
	return s.tc.POST("/verification/validate", map[string]string{"verification_hash": hash})
}

func (s *verificationSteps) checkStatus(_ context.Context) error {
	id, err := s.tc.Recall("session_id")
	if err != nil {
		return err
	}
	return s.tc.GET("/verification/status?session_id=" + url.QueryEscape(id))
}

func (s *verificationSteps) rememberField(field, name string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	str, ok := v.(string)
	if !ok || str == "" {
		return fmt.Errorf("field %q is not a non-empty string: %v", field, v)
	}
	s.tc.Remember(name, str)
	return nil
}
