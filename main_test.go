package main

import (
	"reflect"
	"testing"
)

func TestParseGlobalFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		rest    []string
		profile string
	}{
		{"no flags", []string{"ask", "hi"}, []string{"ask", "hi"}, ""},
		{"profile long form", []string{"--profile", "work", "config"}, []string{"config"}, "work"},
		{"profile short form", []string{"-P", "work", "config"}, []string{"config"}, "work"},
		{"profile equals form", []string{"--profile=work", "config"}, []string{"config"}, "work"},
		{"profile after command", []string{"ask", "hi", "--profile", "work"}, []string{"ask", "hi"}, "work"},
		{"profile missing value", []string{"config", "--profile"}, []string{"config"}, ""},
		{"empty", nil, nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			activeProfile = ""
			rest := parseGlobalFlags(tt.args)
			if !reflect.DeepEqual(rest, tt.rest) {
				t.Errorf("rest = %v, want %v", rest, tt.rest)
			}
			if activeProfile != tt.profile {
				t.Errorf("activeProfile = %q, want %q", activeProfile, tt.profile)
			}
		})
	}
}
