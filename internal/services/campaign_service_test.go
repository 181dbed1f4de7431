package services

import (
	"errors"
	"strings"
	"testing"
)

func validInput() CreateCampaignInput {
	return CreateCampaignInput{
		Name:        "Spring Launch",
		Brief:       "Launch the spring collection",
		BudgetCents: 500000,
		Platforms:   []string{"linkedin", "email"},
	}
}

func TestValidateCreate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*CreateCampaignInput)
		wantErr bool
	}{
		{"valid", func(in *CreateCampaignInput) {}, false},
		{"empty name", func(in *CreateCampaignInput) { in.Name = "  " }, true},
		{"long name", func(in *CreateCampaignInput) { in.Name = strings.Repeat("x", maxNameLen+1) }, true},
		{"empty brief", func(in *CreateCampaignInput) { in.Brief = "" }, true},
		{"zero budget", func(in *CreateCampaignInput) { in.BudgetCents = 0 }, true},
		{"negative budget", func(in *CreateCampaignInput) { in.BudgetCents = -100 }, true},
		{"no platforms", func(in *CreateCampaignInput) { in.Platforms = nil }, true},
		{"unknown platform", func(in *CreateCampaignInput) { in.Platforms = []string{"myspace"} }, true},
		{"duplicate platform", func(in *CreateCampaignInput) { in.Platforms = []string{"email", "Email"} }, true},
		{"mixed case platform ok", func(in *CreateCampaignInput) { in.Platforms = []string{"LinkedIn"} }, false},
		{"valid source url", func(in *CreateCampaignInput) {
			u := "https://acme.example"
			in.SourceURL = &u
		}, false},
		{"bad source url scheme", func(in *CreateCampaignInput) {
			u := "ftp://acme.example"
			in.SourceURL = &u
		}, true},
		{"source url no host", func(in *CreateCampaignInput) {
			u := "https://"
			in.SourceURL = &u
		}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)
			err := validateCreate(in)
			if tc.wantErr && err == nil {
				t.Errorf("expected error")
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tc.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("error should wrap ErrValidation, got %v", err)
			}
		})
	}
}
