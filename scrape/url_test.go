package scrape

import (
	"net"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr string
	}{
		{"valid https", "https://www.allrecipes.com/recipe/123/", ""},
		{"http rejected", "http://www.allrecipes.com/recipe/123/", "only HTTPS"},
		{"ftp rejected", "ftp://example.com/file", "only HTTPS"},
		{"localhost", "https://localhost/recipe", "localhost"},
		{"loopback literal", "https://127.0.0.1/recipe", "localhost"},
		{"ipv6 loopback", "https://[::1]/recipe", "localhost"},
		{"local domain", "https://recipes.local/x", "local domain"},
		{"internal domain", "https://cache.internal/x", "local domain"},
		{"private ipv4", "https://192.168.1.10/recipe", "private IP"},
		{"rfc1918 ten net", "https://10.0.0.8/recipe", "private IP"},
		{"carrier grade nat", "https://100.64.1.1/recipe", "private IP"},
		{"public ip allowed", "https://8.8.8.8/recipe", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateURL(tt.url)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestIsPrivateIP(t *testing.T) {
	private := []string{
		"127.0.0.1", "10.0.0.1", "172.16.0.5", "192.168.0.1",
		"169.254.1.1", "100.64.1.1", "fc00::1", "fe80::1", "::1",
	}
	for _, s := range private {
		assert.True(t, IsPrivateIP(net.ParseIP(s)), s)
	}

	public := []string{"8.8.8.8", "1.1.1.1", "2001:4860:4860::8888"}
	for _, s := range public {
		assert.False(t, IsPrivateIP(net.ParseIP(s)), s)
	}
}
