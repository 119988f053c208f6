package pinned

import "testing"

func TestNewBackend(t *testing.T) {
	tests := []struct {
		name    string
		cfg     BackendConfig
		want    string
		wantErr bool
	}{
		{"default is remote", BackendConfig{BaseURL: "http://nav"}, "remote", false},
		{"remote alias", BackendConfig{Storage: "remote", BaseURL: "http://nav", Token: "t"}, "remote", false},
		{"local", BackendConfig{Storage: "localStorage", SlotDir: t.TempDir()}, "local", false},
		{"remote without url", BackendConfig{Storage: "preferences"}, "", true},
		{"local without dir", BackendConfig{Storage: "local"}, "", true},
		{"unknown storage", BackendConfig{Storage: "cookie"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := NewBackend(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewBackend error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			switch b.(type) {
			case *RemoteBackend:
				if tt.want != "remote" {
					t.Fatalf("got remote backend, want %s", tt.want)
				}
			case *LocalBackend:
				if tt.want != "local" {
					t.Fatalf("got local backend, want %s", tt.want)
				}
			default:
				t.Fatalf("unexpected backend %T", b)
			}
		})
	}
}
