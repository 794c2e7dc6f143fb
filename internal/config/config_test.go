package config

import "testing"

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if server.Addr != ":8080" {
		t.Fatalf("unexpected addr %q", server.Addr)
	}
}

func TestLoadServerConfigForms(t *testing.T) {
	cases := map[string]string{
		"9000":           ":9000",
		":9000":          ":9000",
		"127.0.0.1:9000": "127.0.0.1:9000",
	}

	for input, want := range cases {
		t.Setenv("PORT", input)
		server, err := loadServerConfig()
		if err != nil {
			t.Fatalf("loadServerConfig(%q) err: %v", input, err)
		}
		if server.Addr != want {
			t.Fatalf("loadServerConfig(%q) = %q, want %q", input, server.Addr, want)
		}
	}
}

func TestLoadServerConfigRejectsSpaces(t *testing.T) {
	t.Setenv("PORT", "80 80")

	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestAIConfigEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  AIConfig
		want bool
	}{
		{"api key", AIConfig{Model: "m", APIKey: "k"}, true},
		{"ak/sk pair", AIConfig{Model: "m", AccessKey: "a", SecretKey: "s"}, true},
		{"missing model", AIConfig{APIKey: "k"}, false},
		{"partial pair", AIConfig{Model: "m", AccessKey: "a"}, false},
		{"empty", AIConfig{}, false},
	}

	for _, tc := range cases {
		if got := tc.cfg.Enabled(); got != tc.want {
			t.Fatalf("%s: Enabled() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestLoadRejectsInvalidNumbers(t *testing.T) {
	t.Setenv("ARK_TEMPERATURE", "hot")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for invalid ARK_TEMPERATURE")
	}
}
