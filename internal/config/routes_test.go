package config_test

import (
	"errors"
	"testing"

	"github.com/JaimeStill/route-shell/internal/config"
	"github.com/JaimeStill/route-shell/pkg/module"
)

func TestParseRoutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    config.RoutesConfig
		wantErr bool
	}{
		{
			name:  "single",
			input: "/=index",
			want:  config.RoutesConfig{{Prefix: "/", Module: "index"}},
		},
		{
			name:  "multiple with spaces",
			input: " /=index , /api = echo ",
			want: config.RoutesConfig{
				{Prefix: "/", Module: "index"},
				{Prefix: "/api", Module: "echo"},
			},
		},
		{name: "missing separator", input: "/index", wantErr: true},
		{name: "empty", input: " , ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := config.ParseRoutes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseRoutes() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if len(got) != len(tt.want) {
				t.Fatalf("ParseRoutes() = %+v, want %+v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("entry %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestRoutesConfig_Finalize(t *testing.T) {
	tests := []struct {
		name    string
		routes  config.RoutesConfig
		wantErr bool
	}{
		{name: "empty gets default", routes: nil},
		{
			name: "valid",
			routes: config.RoutesConfig{
				{Prefix: "/", Module: "index"},
				{Prefix: "/api/v1", Module: "echo"},
			},
		},
		{name: "missing slash", routes: config.RoutesConfig{{Prefix: "api", Module: "echo"}}, wantErr: true},
		{name: "trailing slash", routes: config.RoutesConfig{{Prefix: "/api/", Module: "echo"}}, wantErr: true},
		{name: "empty module", routes: config.RoutesConfig{{Prefix: "/api", Module: ""}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.routes
			err := r.Finalize()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Finalize() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && len(r) == 0 {
				t.Error("Finalize() left registry empty")
			}
		})
	}
}

func TestRoutesConfig_Duplicate(t *testing.T) {
	r := config.RoutesConfig{
		{Prefix: "/api", Module: "echo"},
		{Prefix: "/api", Module: "status"},
	}

	err := r.Finalize()
	if !errors.Is(err, module.ErrDuplicatePrefix) {
		t.Fatalf("Finalize() error = %v, want ErrDuplicatePrefix", err)
	}
}

func TestRoutesConfig_Merge(t *testing.T) {
	base := config.DefaultRoutes()

	base.Merge(nil)
	if len(base) != 1 {
		t.Fatalf("empty overlay changed registry: %+v", base)
	}

	base.Merge(config.RoutesConfig{{Prefix: "/x", Module: "echo"}})
	if len(base) != 1 || base[0].Prefix != "/x" {
		t.Errorf("Merge() = %+v, want overlay routes", base)
	}
}
