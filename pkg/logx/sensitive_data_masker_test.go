package logx_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gb_market/pkg/logx"
)

func TestSensitiveDataMaskerMask(t *testing.T) {
	rq := require.New(t)

	masker := logx.NewSensitiveDataMasker()

	testCases := []struct {
		name   string
		input  []byte
		output []byte
	}{
		{
			name:   "Password",
			input:  []byte(`{"hello":"world","password":"abc123"}`),
			output: []byte(`{"hello":"world","password":"[MASKED]"}`),
		},
		{
			name:   "Password capital letter",
			input:  []byte(`{"hello":"world","Password":"abc123"}`),
			output: []byte(`{"hello":"world","Password":"[MASKED]"}`),
		},
		{
			name:   "Access token",
			input:  []byte(`{"accessToken":"eyJhbGciOiJFUzI1NiIsInR5cC","refreshToken":"eyJhbGciOiJFUzI1NiIsInR5cCI6IkpXVCJ9"}`),
			output: []byte(`{"accessToken":"[MASKED]","refreshToken":"[MASKED]"}`),
		},
		{
			name:   "Bot token and email",
			input:  []byte(`{"notify": {"botToken": "123456:ABC-DEF", "email": "seller@market.io"}, "kind": "price_drops"}`),
			output: []byte(`{"notify": {"botToken": "[MASKED]", "email": "[MASKED]"}, "kind": "price_drops"}`),
		},
		{
			name:   "Bot API path",
			input:  []byte("POST /bot123456:AAH-x_9z/sendMessage HTTP/1.1\r\n"),
			output: []byte("POST /bot[MASKED]/sendMessage HTTP/1.1\r\n"),
		},
		{
			name:   "Widget payload untouched",
			input:  []byte(`{"kind":"flash_deals","id":"cs1a2b3c"}`),
			output: []byte(`{"kind":"flash_deals","id":"cs1a2b3c"}`),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(*testing.T) {
			output := masker.Mask(tc.input)

			rq.Equal(tc.output, output, "%s vs %s", tc.output, output)
		})
	}
}
