package config

import (
	"os"
	"testing"
)

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_GET_ENV_VAR", "test_value")
	defer os.Unsetenv("TEST_GET_ENV_VAR")

	if got := GetEnv("TEST_GET_ENV_VAR", "default"); got != "test_value" {
		t.Errorf("GetEnv() = %v, want %v", got, "test_value")
	}

	if got := GetEnv("NON_EXISTING_VAR", "default_value"); got != "default_value" {
		t.Errorf("GetEnv() = %v, want %v", got, "default_value")
	}
}

func TestGetEnvironment_Default(t *testing.T) {
	os.Unsetenv("SHIFTFLOW_SERVER_ENVIRONMENT")
	if got := GetEnvironment(); got != EnvDevelopment {
		t.Errorf("GetEnvironment() = %v, want %v", got, EnvDevelopment)
	}
}

func TestIsProductionLike(t *testing.T) {
	os.Setenv("SHIFTFLOW_SERVER_ENVIRONMENT", "staging")
	defer os.Unsetenv("SHIFTFLOW_SERVER_ENVIRONMENT")

	if !IsProductionLike() {
		t.Error("IsProductionLike() = false for staging, want true")
	}
	if IsProduction() {
		t.Error("IsProduction() = true for staging, want false")
	}
}
