package migrate

import (
	"errors"
	"testing"
)

func TestNewRequest_Normalizes(t *testing.T) {
	req, err := NewRequest("EZDLMTR1D3MHD", "Z00646902JW6C5QG3Q2NG", "D2MZ62FPVUGE8K.cloudfront.net", "WWW.Example.com")
	if err != nil {
		t.Fatal(err)
	}
	if req.Domain != "d2mz62fpvuge8k.cloudfront.net." {
		t.Errorf("domain not normalized: %q", req.Domain)
	}
	if req.Alias != "www.example.com." {
		t.Errorf("alias not normalized: %q", req.Alias)
	}
}

func TestNewRequest_EmptyFields(t *testing.T) {
	tests := []struct {
		name string
		args [4]string
	}{
		{"distribution-id", [4]string{"", "Z1", "d.cloudfront.net", "www.example.com"}},
		{"hosted-zone-id", [4]string{"E1", "", "d.cloudfront.net", "www.example.com"}},
		{"cloudfront-domain", [4]string{"E1", "Z1", "", "www.example.com"}},
		{"alias", [4]string{"E1", "Z1", "d.cloudfront.net", ""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRequest(tt.args[0], tt.args[1], tt.args[2], tt.args[3])
			var invalid *InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidParameterError, got %v", err)
			}
			if invalid.Param != tt.name {
				t.Errorf("expected parameter %q flagged, got %q", tt.name, invalid.Param)
			}
		})
	}
}

func TestNewRequest_MalformedNames(t *testing.T) {
	if _, err := NewRequest("E1", "Z1", "not a domain!", "www.example.com"); err == nil {
		t.Error("expected malformed cloudfront-domain to be rejected")
	}
	if _, err := NewRequest("E1", "Z1", "d.cloudfront.net", "bad_alias.example.com"); err == nil {
		t.Error("expected malformed alias to be rejected")
	}
}
