package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindUserConfig(t *testing.T) {
	t.Setenv("INPUT_EMULATOR_CONFIG", "/env.yaml")
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "equals form", args: []string{"status", "--config=/a.toml"}, want: "/a.toml"},
		{name: "separate value", args: []string{"--config", "/b.json", "status"}, want: "/b.json"},
		{name: "dangling flag", args: []string{"status", "--config"}, want: "/env.yaml"},
		{name: "env fallback", args: []string{"status"}, want: "/env.yaml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, findUserConfig(tt.args))
		})
	}
}

func TestDescription(t *testing.T) {
	assert.Contains(t, Description(), Version)
	assert.Contains(t, Description(), "uinput")
}
