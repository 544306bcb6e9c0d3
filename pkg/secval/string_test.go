package secval_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/guardkit/pkg/secval"
)

func TestText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     string
		wantCode secval.Code
	}{
		{name: "plain text escaped", input: "a & b", want: "a &amp; b"},
		{name: "clean text unchanged", input: "monthly report", want: "monthly report"},
		{name: "script tag", input: "<script>alert(1)</script>", wantCode: secval.CodeDangerousContent},
		{name: "event handler", input: `<img onerror="x">`, wantCode: secval.CodeDangerousContent},
		{name: "sql union", input: "1 UNION SELECT * FROM users", wantCode: secval.CodeDangerousContent},
		{name: "multiline script", input: "hello\n<script\n>bad", wantCode: secval.CodeDangerousContent},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := secval.Text(tt.input)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, secval.AsFieldError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     string
		wantCode secval.Code
	}{
		{name: "simple", input: "Jean Dupont", want: "Jean Dupont"},
		{name: "accented", input: "Aïcha Traoré", want: "Aïcha Traoré"},
		{name: "apostrophe", input: "O'Brien", want: "O'Brien"},
		{name: "hyphenated", input: "Marie-Claire", want: "Marie-Claire"},
		{name: "too short", input: "A", wantCode: secval.CodeNameTooShort},
		{name: "too long", input: strings.Repeat("a", 51), wantCode: secval.CodeNameTooLong},
		{name: "digits rejected", input: "Jean2", wantCode: secval.CodeInvalidNameChars},
		{name: "angle bracket blocked", input: "Jean<script", wantCode: secval.CodeNameDangerousChars},
		{name: "semicolon blocked", input: "a;b", wantCode: secval.CodeNameDangerousChars},
		{name: "empty", input: "", wantCode: secval.CodeNameTooShort},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := secval.Name(tt.input)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, secval.AsFieldError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestName_NFCNormalization(t *testing.T) {
	t.Parallel()

	// "é" as 'e' + combining acute accent normalizes to the composed form.
	decomposed := "José"
	got, err := secval.Name(decomposed)
	require.NoError(t, err)
	assert.Equal(t, "José", got)
}

func TestUsername(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		want     string
		wantCode secval.Code
	}{
		{name: "simple", input: "jdupont", want: "jdupont"},
		{name: "with separators", input: "j_dupont-2", want: "j_dupont-2"},
		{name: "too short", input: "ab", wantCode: secval.CodeUsernameTooShort},
		{name: "too long", input: strings.Repeat("a", 31), wantCode: secval.CodeUsernameTooLong},
		{name: "invalid chars", input: "j.dupont", wantCode: secval.CodeInvalidUsernameChars},
		{name: "space rejected", input: "j dupont", wantCode: secval.CodeInvalidUsernameChars},
		{name: "starts with digit", input: "2pac", wantCode: secval.CodeUsernameStartsWithDigit},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := secval.Username(tt.input)
			if tt.wantCode != "" {
				require.Error(t, err)
				assert.Equal(t, tt.wantCode, secval.AsFieldError(err).Code)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
