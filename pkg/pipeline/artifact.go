package pipeline

import (
	"encoding/json"

	eggio "github.com/matzehuels/pandaegg/pkg/io"
)

// artifact is the cached form of a pipeline run: the encoded file plus the
// export summary, so a cache hit reports the same result as a fresh run.
type artifact struct {
	Data    []byte   `json:"data"`
	Skipped []string `json:"skipped,omitempty"`
	Objects int      `json:"objects"`
	Groups  int      `json:"groups"`
	Pools   int      `json:"pools"`
}

func newArtifact(r *Result) artifact {
	return artifact{
		Data:    r.Data,
		Skipped: r.Skipped,
		Objects: r.Stats.Objects,
		Groups:  r.Stats.Groups,
		Pools:   r.Stats.Pools,
	}
}

func (a artifact) encode() ([]byte, error) {
	return json.Marshal(a)
}

// restore copies the cached summary into r.
func (a artifact) restore(r *Result) {
	r.Data = a.Data
	r.Skipped = a.Skipped
	r.Stats.Objects = a.Objects
	r.Stats.Groups = a.Groups
	r.Stats.Pools = a.Pools
	r.Stats.Bytes = len(a.Data)
}

// decodeArtifact parses a cached artifact and decodes its lines. It reports
// false for entries that cannot be read back, which callers treat as a miss.
func decodeArtifact(cached []byte, encoding string) (artifact, []string, bool) {
	var a artifact
	if err := json.Unmarshal(cached, &a); err != nil || a.Data == nil {
		return artifact{}, nil, false
	}
	lines, err := eggio.DecodeLines(a.Data, encoding)
	if err != nil {
		return artifact{}, nil, false
	}
	return a, lines, true
}
