package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArg(t *testing.T) {
	args := map[string]any{"formId": "  abc  ", "count": 3}
	assert.Equal(t, "abc", StringArg(args, "formId"))
	assert.Empty(t, StringArg(args, "count"))
	assert.Empty(t, StringArg(args, "missing"))
	assert.Empty(t, StringArg(nil, "formId"))
}

func TestIntArg(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    int
		wantErr bool
	}{
		{name: "absent", value: nil, want: 25},
		{name: "json number", value: float64(10), want: 10},
		{name: "int", value: 7, want: 7},
		{name: "int64", value: int64(8), want: 8},
		{name: "fraction", value: 2.5, wantErr: true},
		{name: "string", value: "10", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := map[string]any{}
			if tt.value != nil {
				args["maxResults"] = tt.value
			}
			got, err := IntArg(args, "maxResults", 25)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
