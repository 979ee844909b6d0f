// Copyright 2019 eBay Inc.
// Primary authors: Simon Fell, Diego Ongaro,
//                  Raymond Kroeker, and Sathish Kandasamy.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
// https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"encoding/json"
	"errors"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/ebay/kgraph/rdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Load(t *testing.T) {
	dir, err := ioutil.TempDir("", "config-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	t.Run("file not found", func(t *testing.T) {
		_, err = Load(filepath.Join(dir, "404.json"))
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), "404.json")
		}
	})

	t.Run("file contains garbage", func(t *testing.T) {
		err = ioutil.WriteFile(filepath.Join(dir, "garbage.json"), []byte("koala"), 0644)
		require.NoError(t, err)
		_, err = Load(filepath.Join(dir, "garbage.json"))
		if assert.Error(t, err) {
			assert.Regexp(t, `^error decoding JSON value in .*/garbage\.json: `, err.Error())
		}
	})

	t.Run("file contains null", func(t *testing.T) {
		err = ioutil.WriteFile(filepath.Join(dir, "null.json"), []byte("null"), 0644)
		require.NoError(t, err)
		_, err = Load(filepath.Join(dir, "null.json"))
		if assert.Error(t, err) {
			assert.Regexp(t, `^loading .*/null\.json resulted in nil config$`, err.Error())
		}
	})

	t.Run("unknown field", func(t *testing.T) {
		err = ioutil.WriteFile(filepath.Join(dir, "unknown.json"), []byte(`{
			"roflcopter": true
		}`), 0644)
		require.NoError(t, err)
		_, err = Load(filepath.Join(dir, "unknown.json"))
		if assert.Error(t, err) {
			assert.Regexp(t, `^error decoding JSON value in .*/unknown\.json: `, err.Error())
		}
	})

	t.Run("more", func(t *testing.T) {
		err = ioutil.WriteFile(filepath.Join(dir, "more.json"), []byte("{}{}"), 0644)
		require.NoError(t, err)
		_, err = Load(filepath.Join(dir, "more.json"))
		if assert.Error(t, err) {
			assert.Regexp(t, `^found unexpected data after config in .*/more\.json$`, err.Error())
		}
	})

	t.Run("invalid", func(t *testing.T) {
		err = ioutil.WriteFile(filepath.Join(dir, "invalid.json"), []byte(`{
			"export": {"rankDir": "sideways"}
		}`), 0644)
		require.NoError(t, err)
		_, err = Load(filepath.Join(dir, "invalid.json"))
		if assert.Error(t, err) {
			assert.Regexp(t, `^invalid config in .*/invalid\.json: rankDir must be one of `, err.Error())
		}
	})

	t.Run("ok", func(t *testing.T) {
		err = ioutil.WriteFile(filepath.Join(dir, "ok.json"), []byte(`{
			"prefixes": {"ps2": "http://example.org/ps2games#"},
			"export": {"graphName": "PS2Games", "labelPredicates": ["ps2:hasTitle"]}
		}`), 0644)
		require.NoError(t, err)
		cfg, err := Load(filepath.Join(dir, "ok.json"))
		if assert.NoError(t, err) {
			assert.Equal(t, "PS2Games", cfg.Export.GraphName)
			assert.Equal(t, []string{"ps2:hasTitle"}, cfg.Export.LabelPredicates)
			assert.Nil(t, cfg.API)
		}
	})

	t.Run("empty prefixes", func(t *testing.T) {
		err = ioutil.WriteFile(filepath.Join(dir, "empty.json"), []byte(`{}`), 0644)
		require.NoError(t, err)
		cfg, err := Load(filepath.Join(dir, "empty.json"))
		if assert.NoError(t, err) {
			assert.NotNil(t, cfg.Prefixes)
		}
	})
}

func Test_LoadYAML(t *testing.T) {
	dir, err := ioutil.TempDir("", "config-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	write := func(name, content string) string {
		filename := filepath.Join(dir, name)
		require.NoError(t, ioutil.WriteFile(filename, []byte(content), 0644))
		return filename
	}

	t.Run("ok", func(t *testing.T) {
		cfg, err := Load(write("ok.yaml", `
prefixes:
  ps2: http://example.org/ps2games#
vocabulary:
  typePredicate: rdf:type
export:
  typeColors:
    ps2:Game: "#FF6B6B"
api:
  httpAddress: localhost:8080
  maxRows: 100
`))
		require.NoError(t, err)
		assert.Equal(t, "http://example.org/ps2games#", cfg.Prefixes["ps2"])
		assert.Equal(t, "rdf:type", cfg.Vocabulary.TypePredicate)
		assert.Equal(t, map[string]string{"ps2:Game": "#FF6B6B"}, cfg.Export.TypeColors)
		assert.Equal(t, &API{HTTPAddress: "localhost:8080", MaxRows: 100}, cfg.API)
	})

	t.Run("yml extension", func(t *testing.T) {
		cfg, err := Load(write("short.yml", "log:\n  level: debug\n"))
		require.NoError(t, err)
		assert.Equal(t, &Log{Level: "debug"}, cfg.Log)
	})

	t.Run("unknown field", func(t *testing.T) {
		_, err := Load(write("unknown.yaml", "roflcopter: true\n"))
		if assert.Error(t, err) {
			assert.Regexp(t, `^error decoding YAML value in .*/unknown\.yaml: `, err.Error())
		}
	})

	t.Run("empty", func(t *testing.T) {
		_, err := Load(write("empty.yaml", ""))
		if assert.Error(t, err) {
			assert.Regexp(t, `^error decoding YAML value in .*/empty\.yaml: EOF$`, err.Error())
		}
	})

	t.Run("null", func(t *testing.T) {
		_, err := Load(write("null.yaml", "null\n"))
		if assert.Error(t, err) {
			assert.Regexp(t, `^loading .*/null\.yaml resulted in nil config$`, err.Error())
		}
	})

	t.Run("more", func(t *testing.T) {
		_, err := Load(write("more.yaml", "log: {level: info}\n---\nlog: {level: debug}\n"))
		if assert.Error(t, err) {
			assert.Regexp(t, `^found unexpected data after config in .*/more\.yaml$`, err.Error())
		}
	})

	t.Run("undeclared prefix", func(t *testing.T) {
		_, err := Load(write("undeclared.yaml", "export:\n  excludePredicates: [foo:bar]\n"))
		if assert.Error(t, err) {
			assert.Contains(t, err.Error(), `export exclude predicates: undeclared prefix "foo" in "foo:bar"`)
		}
	})
}

func Test_ExampleConfig(t *testing.T) {
	cfg, err := Load("../testdata/kgraph.yaml")
	require.NoError(t, err)
	assert.Equal(t, "http://example.org/ps2games#", cfg.Prefixes["ps2"])
	assert.Equal(t, "PS2Games", cfg.Export.GraphName)
	assert.Len(t, cfg.Export.TypeColors, 8)
	assert.Equal(t, "#666666", cfg.Export.EdgeColors["ps2:developedBy"])
}

func Test_Write(t *testing.T) {
	dir, err := ioutil.TempDir("", "config-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	// Happy path.
	err = Write(&KGraph{}, filepath.Join(dir, "ok.json"))
	assert.NoError(t, err)

	// Simulate an error from encoder.Encode().
	marshalJSONErr = errors.New("ants in pants")
	err = Write(&KGraph{Tracing: &Tracing{}}, filepath.Join(dir, "ants.json"))
	marshalJSONErr = nil
	if assert.Error(t, err) {
		assert.Regexp(t, `^failed to write .*/ants\.json: .*ants in pants`,
			err.Error())
	}

	// Errors from os.Create already include the filename.
	err = os.MkdirAll(filepath.Join(dir, "subdir"), 0755)
	require.NoError(t, err)
	err = Write(&KGraph{}, filepath.Join(dir, "subdir"))
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "subdir")
	}
}

func Test_WriteThenLoad(t *testing.T) {
	dir, err := ioutil.TempDir("", "config-test")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	cfg := Default()
	cfg.Prefixes["ps2"] = "http://example.org/ps2games#"
	cfg.Export.EdgeColors = map[string]string{"ps2:developedBy": "#666666"}
	for _, name := range []string{"cfg.json", "cfg.yaml"} {
		t.Run(name, func(t *testing.T) {
			filename := filepath.Join(dir, name)
			require.NoError(t, Write(cfg, filename))
			loaded, err := Load(filename)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func Test_IRI(t *testing.T) {
	cfg := Default()
	cfg.Prefixes["ps2"] = "http://example.org/ps2games#"
	tests := []struct {
		in     string
		exp    rdf.Node
		errMsg string
	}{
		{in: "ps2:Game", exp: rdf.IRI("http://example.org/ps2games#Game")},
		{in: "rdfs:subClassOf", exp: rdf.SubClassOf},
		{in: "<urn:isbn:123>", exp: rdf.IRI("urn:isbn:123")},
		{in: "http://example.org/x", exp: rdf.IRI("http://example.org/x")},
		{in: "Game", errMsg: `"Game" is not an IRI or prefixed name`},
		{in: "foo:Game", errMsg: `undeclared prefix "foo" in "foo:Game"`},
	}
	for _, test := range tests {
		t.Run(test.in, func(t *testing.T) {
			act, err := cfg.IRI(test.in)
			if test.errMsg != "" {
				assert.EqualError(t, err, test.errMsg)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, test.exp, act)
		})
	}
	nodes, err := cfg.IRIs([]string{"ps2:hasName", "ps2:hasTitle"})
	assert.NoError(t, err)
	assert.Len(t, nodes, 2)
	_, err = cfg.IRIs([]string{"ps2:hasName", "nope"})
	assert.Error(t, err)
}

func Test_Validate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())
	cfg.Log.Level = "chatty"
	assert.EqualError(t, cfg.Validate(), `unknown log level "chatty"`)
	cfg.Log.Level = "DEBUG"
	assert.NoError(t, cfg.Validate())
	cfg.Vocabulary.SubClassPredicate = "subClassOf"
	assert.EqualError(t, cfg.Validate(), `vocabulary: "subClassOf" is not an IRI or prefixed name`)
}

// Controls the returned error of Tracing.MarshalJSON.
var marshalJSONErr error

// This is a custom marshaller for Tracing (used only in unit tests). It
// normally encodes itself successfully, but if 'marshalJSONErr' is non-nil, it
// returns this error instead.
func (t Tracing) MarshalJSON() ([]byte, error) {
	if marshalJSONErr != nil {
		return nil, marshalJSONErr
	}
	return json.Marshal(struct {
		AgentHostPort string `json:"agentHostPort,omitempty"`
	}{
		AgentHostPort: t.AgentHostPort,
	})
}
