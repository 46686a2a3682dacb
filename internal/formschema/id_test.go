package formschema

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuestionID(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValid bool
		wantValue int64
	}{
		{name: "lowercase hex", input: "1a", wantValid: true, wantValue: 26},
		{name: "uppercase hex", input: "1A", wantValid: true, wantValue: 26},
		{name: "zero", input: "0", wantValid: true, wantValue: 0},
		{name: "forms style id", input: "7cb5c41a", wantValid: true, wantValue: 2092287002},
		{name: "max int64", input: "7fffffffffffffff", wantValid: true, wantValue: 9223372036854775807},
		{name: "overflow", input: "8000000000000000", wantValid: false},
		{name: "empty", input: "", wantValid: false},
		{name: "not hex", input: "xyz", wantValid: false},
		{name: "sign", input: "-1a", wantValid: false},
		{name: "prefix", input: "0x1a", wantValid: false},
		{name: "whitespace", input: " 1a", wantValid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := ParseQuestionID(tt.input)
			assert.Equal(t, tt.wantValid, id.Valid())
			assert.Equal(t, tt.wantValue, id.Int64())
		})
	}
}

func TestQuestionID_StableAcrossParses(t *testing.T) {
	assert.Equal(t, ParseQuestionID("00ff"), ParseQuestionID("ff"))
	assert.Equal(t, "255", ParseQuestionID("ff").String())
	assert.Equal(t, "", ParseQuestionID("nope").String())
}

func TestQuestionID_JSON(t *testing.T) {
	data, err := json.Marshal([]QuestionID{NewQuestionID(26), {}})
	require.NoError(t, err)
	assert.Equal(t, "[26,null]", string(data))

	var ids []QuestionID
	require.NoError(t, json.Unmarshal(data, &ids))
	require.Len(t, ids, 2)
	assert.Equal(t, NewQuestionID(26), ids[0])
	assert.False(t, ids[1].Valid())

	var bad QuestionID
	assert.Error(t, json.Unmarshal([]byte(`"1a"`), &bad))
}
