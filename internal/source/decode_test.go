package source

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reportapi/internal/model"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		data    string
		want    []model.RawRecord
		wantErr string
	}{
		{
			name: "json object",
			file: "fisa_10.json",
			data: `{"M_1_6": "CS", "M_1_8": "10"}`,
			want: []model.RawRecord{{"M_1_6": "CS", "M_1_8": "10"}},
		},
		{
			name: "json list keeps numbers exact",
			file: "batch.JSON",
			data: `[{"M_1_8": 10}, {"M_1_8": "11", "M_4_1": null}]`,
			want: []model.RawRecord{{"M_1_8": json.Number("10")}, {"M_1_8": "11", "M_4_1": nil}},
		},
		{
			name: "yaml object",
			file: "fisa.yaml",
			data: "M_1_6: CS\nM_1_8: \"12\"\n",
			want: []model.RawRecord{{"M_1_6": "CS", "M_1_8": "12"}},
		},
		{
			name: "yml list",
			file: "fise.yml",
			data: "- M_1_8: \"1\"\n- M_1_8: \"2\"\n",
			want: []model.RawRecord{{"M_1_8": "1"}, {"M_1_8": "2"}},
		},
		{name: "unsupported", file: "fisa.pkl", data: "x", wantErr: "unsupported record file format"},
		{name: "broken json", file: "a.json", data: `{"M_1_8":`, wantErr: "parse json a.json"},
		{name: "scalar top level", file: "a.json", data: `"text"`, wantErr: "want an object or a list of objects"},
		{name: "list of scalars", file: "a.yaml", data: "- 1\n- 2\n", wantErr: "item 0 is int"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.file, []byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSupported(t *testing.T) {
	assert.True(t, Supported("a.json"))
	assert.True(t, Supported("dir/a.YML"))
	assert.False(t, Supported("a.pkl"))
	assert.False(t, Supported("json"))
	assert.Equal(t, "application/yaml", ContentType("a.yaml"))
	assert.Equal(t, "application/octet-stream", ContentType("a.bin"))
}
