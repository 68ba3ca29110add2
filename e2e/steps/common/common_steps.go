package common

import (
	"context"
	"fmt"

	"github.com/cucumber/godog"
)

// TestContext interface defines the methods needed from the main test context
type TestContext interface {
	GET(path string) error
	GetResponseField(field string) (any, error)
	GetLastResponseStatus() int
	GetLastResponseBody() []byte
}

// RegisterSteps registers background and assertion steps shared by features.
func RegisterSteps(ctx *godog.ScenarioContext, tc TestContext) {
	steps := &commonSteps{tc: tc}
	ctx.Step(`^the passprove API is running$`, steps.apiIsRunning)
	ctx.Step(`^the response status should be (\d+)$`, steps.statusShouldBe)
	ctx.Step(`^the response field "([^"]*)" should equal "([^"]*)"$`, steps.fieldShouldEqual)
	ctx.Step(`^the response field "([^"]*)" should be (true|false)$`, steps.fieldShouldBeBool)
	ctx.Step(`^the response should contain "([^"]*)"$`, steps.responseShouldContain)
	ctx.Step(`^the response should not contain "([^"]*)"$`, steps.responseShouldNotContain)
	ctx.Step(`^the error should be "([^"]*)"$`, steps.errorShouldBe)
}

type commonSteps struct {
	tc TestContext
}

func (s *commonSteps) apiIsRunning(ctx context.Context) error {
	if err := s.tc.GET("/health"); err != nil {
		return err
	}
	return s.statusShouldBe(ctx, 200)
}

func (s *commonSteps) statusShouldBe(_ context.Context, status int) error {
	if got := s.tc.GetLastResponseStatus(); got != status {
		return fmt.Errorf("expected status %d, got %d: %s", status, got, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) fieldShouldEqual(_ context.Context, field, want string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	if got := fmt.Sprint(v); got != want {
		return fmt.Errorf("expected %s=%q, got %q", field, want, got)
	}
	return nil
}

func (s *commonSteps) fieldShouldBeBool(_ context.Context, field, want string) error {
	v, err := s.tc.GetResponseField(field)
	if err != nil {
		return err
	}
	b, ok := v.(bool)
	if !ok || fmt.Sprint(b) != want {
		return fmt.Errorf("expected %s=%s, got %v", field, want, v)
	}
	return nil
}

func (s *commonSteps) responseShouldContain(_ context.Context, field string) error {
	_, err := s.tc.GetResponseField(field)
	return err
}

func (s *commonSteps) responseShouldNotContain(_ context.Context, field string) error {
	if _, err := s.tc.GetResponseField(field); err == nil {
		return fmt.Errorf("expected no %q field: %s", field, s.tc.GetLastResponseBody())
	}
	return nil
}

func (s *commonSteps) errorShouldBe(ctx context.Context, message string) error {
	return s.fieldShouldEqual(ctx, "error", message)
}
