package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendTokenFromContext(t *testing.T) {
	tests := []struct {
		name   string
		ctx    context.Context
		want   string
		wantOK bool
	}{
		{"unset", context.Background(), "", false},
		{"empty", WithBackendToken(context.Background(), ""), "", false},
		{"set", WithBackendToken(context.Background(), "tok"), "tok", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := BackendTokenFromContext(tt.ctx)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantOK, ok)
		})
	}
}
