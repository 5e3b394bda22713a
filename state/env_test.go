package state

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"fontcolor/config"
)

func TestContextWithEnv(t *testing.T) {
	ctx := ContextWithEnv(context.Background())
	env := EnvFromContext(ctx)
	if env == nil {
		t.Fatal("EnvFromContext() returned nil")
	}
	if env.start.IsZero() {
		t.Error("Environment start time not set")
	}
	if env.Log != nil {
		t.Error("Logger should not be set before configuration is loaded")
	}
}

func TestEnvFromContext_Missing(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("Expected panic when env not in context")
		}
	}()
	EnvFromContext(context.Background())
}

func TestLocalEnv_Uptime(t *testing.T) {
	env := EnvFromContext(ContextWithEnv(context.Background()))

	time.Sleep(10 * time.Millisecond)
	if uptime := env.Uptime(); uptime < 10*time.Millisecond {
		t.Errorf("Uptime() = %v, expected at least 10ms", uptime)
	}
}

func TestLocalEnv_Strict(t *testing.T) {
	env := &LocalEnv{}
	if env.Strict() {
		t.Error("Strict() without configuration should be false")
	}
	env.Cfg = &config.Config{FontColor: config.FontColorConfig{Strict: true}}
	if !env.Strict() {
		t.Error("Strict() should follow configuration")
	}
}

func TestLocalEnv_RedirectAndRestore(t *testing.T) {
	env := &LocalEnv{
		Log: zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1))),
	}

	for i := range 3 {
		env.RedirectStdLog()
		if env.restoreStdLog == nil {
			t.Errorf("Iteration %d: restoreStdLog not set", i)
		}
		env.RestoreStdLog()
		if env.restoreStdLog != nil {
			t.Errorf("Iteration %d: restoreStdLog not cleared", i)
		}
	}
}

func TestLocalEnv_NilLogger(t *testing.T) {
	env := &LocalEnv{}

	// Should not panic
	env.RedirectStdLog()
	if env.restoreStdLog != nil {
		t.Error("Expected restoreStdLog to remain nil")
	}
	env.RestoreStdLog()
}
