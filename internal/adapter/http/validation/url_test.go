package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoURL(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{
			name: "valid https url",
			raw:  "https://example.com/video.mp4",
			want: "https://example.com/video.mp4",
		},
		{
			name: "valid http url",
			raw:  "http://cdn.example.com/v/123",
			want: "http://cdn.example.com/v/123",
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  "  https://example.com/video.mp4\t",
			want: "https://example.com/video.mp4",
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: ErrEmptyURL,
		},
		{
			name:    "whitespace only",
			raw:     "   ",
			wantErr: ErrEmptyURL,
		},
		{
			name:    "missing scheme",
			raw:     "example.com/video.mp4",
			wantErr: ErrBadScheme,
		},
		{
			name:    "unsupported scheme",
			raw:     "ftp://example.com/video.mp4",
			wantErr: ErrBadScheme,
		},
		{
			name:    "scheme without host",
			raw:     "https://",
			wantErr: ErrMalformedURL,
		},
		{
			name:    "control characters",
			raw:     "https://example.com/\x00video",
			wantErr: ErrMalformedURL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := VideoURL(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
